package usecase_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crux/internal/fakeapi"
	routeout "crux/internal/modules/route/adapter/out"
	"crux/internal/modules/route/domain"
	"crux/internal/modules/route/dto"
	routein "crux/internal/modules/route/port/in"
	"crux/internal/modules/route/service"
	"crux/internal/modules/route/usecase"
	apperrors "crux/internal/platform/errors"
	"crux/internal/platform/httpapi"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 3), G: uint8(y * 5), B: 0x40, A: 0xff})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func setup(t *testing.T, preparer domain.Preparer) (*fakeapi.Server, routein.Usecase, string) {
	t.Helper()
	api := fakeapi.New(nil)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	client, err := httpapi.New(httpapi.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	dir := t.TempDir()
	svc := service.NewRouteService(preparer, routeout.NewHTTPRenderer(client), routeout.NewFileImageStore())
	uc := usecase.NewInteractor(svc, filepath.Join(dir, "scans"))
	return api, uc, dir
}

func TestGenerateWritesOverlay(t *testing.T) {
	api, uc, dir := setup(t, domain.DefaultPreparer())
	photo := filepath.Join(dir, "Wall 3 (left).png")
	writePNG(t, photo, 1500, 500)

	out, err := uc.Generate(context.Background(), dto.GenerateInput{ImagePath: photo})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "scans", "wall-3-left-route.png"), out.OutputPath)
	assert.Equal(t, 1216, out.Width)
	assert.Equal(t, 405, out.Height)
	require.Len(t, api.Uploads(), 1)
	assert.Equal(t, out.UploadBytes, len(api.Uploads()[0]))

	f, err := os.Open(out.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	_, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestGenerateTooLargeMakesNoRequest(t *testing.T) {
	p := domain.DefaultPreparer()
	p.MaxBytes = 16
	api, uc, dir := setup(t, p)
	photo := filepath.Join(dir, "wall.png")
	writePNG(t, photo, 64, 64)

	_, err := uc.Generate(context.Background(), dto.GenerateInput{ImagePath: photo})
	assert.ErrorIs(t, err, apperrors.ErrPayloadTooLarge)
	assert.Equal(t, httpapi.KindPayloadTooLarge, httpapi.Kind(err))
	assert.Zero(t, api.Calls(fakeapi.RouteGenerate))
}

func TestGenerateRejectsNonImageResponse(t *testing.T) {
	api, uc, dir := setup(t, domain.DefaultPreparer())
	api.Fail(fakeapi.RouteGenerate, fakeapi.Failure{Body: `{"ok":true}`})
	photo := filepath.Join(dir, "wall.png")
	writePNG(t, photo, 32, 32)

	_, err := uc.Generate(context.Background(), dto.GenerateInput{ImagePath: photo, OutputPath: filepath.Join(dir, "out.png")})
	require.True(t, errors.Is(err, service.ErrInvalidOverlay), "got %v", err)
	assert.EqualError(t, err, "invalid image returned by server")
	_, statErr := os.Stat(filepath.Join(dir, "out.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateSurfacesServerMessage(t *testing.T) {
	api, uc, dir := setup(t, domain.DefaultPreparer())
	api.Fail(fakeapi.RouteGenerate, fakeapi.Failure{Status: http.StatusRequestEntityTooLarge, Body: `{"detail":"Too large"}`})
	photo := filepath.Join(dir, "wall.png")
	writePNG(t, photo, 32, 32)

	_, err := uc.Generate(context.Background(), dto.GenerateInput{ImagePath: photo})
	var apiErr *httpapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Too large", apiErr.Message)
}

func TestGenerateInputErrors(t *testing.T) {
	_, uc, dir := setup(t, domain.DefaultPreparer())
	_, err := uc.Generate(context.Background(), dto.GenerateInput{ImagePath: " "})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = uc.Generate(context.Background(), dto.GenerateInput{ImagePath: filepath.Join(dir, "missing.jpg")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	notImage := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("hello"), 0o644))
	_, err = uc.Generate(context.Background(), dto.GenerateInput{ImagePath: notImage})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
