package domain

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"
	"testing"

	apperrors "crux/internal/platform/errors"
)

func gradient(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	return img
}

func noise(w, h int) image.Image {
	rng := rand.New(rand.NewSource(7))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

func TestResizeKeepsAspectAndNeverUpscales(t *testing.T) {
	t.Parallel()
	big := Resize(gradient(2432, 1000), 1216)
	if got := big.Bounds(); got.Dx() != 1216 || got.Dy() != 500 {
		t.Fatalf("unexpected size %v", got)
	}
	small := gradient(300, 200)
	if Resize(small, 1216) != small {
		t.Fatalf("narrow image must be returned untouched")
	}
}

func TestPrepareProducesDecodableJPEG(t *testing.T) {
	t.Parallel()
	data, err := DefaultPreparer().Prepare(gradient(1600, 900))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if len(data) > MaxUploadBytes {
		t.Fatalf("payload over ceiling: %d", len(data))
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 1216 || cfg.Height != 684 {
		t.Fatalf("unexpected dimensions %dx%d", cfg.Width, cfg.Height)
	}
}

func TestPrepareLowersQualityUntilItFits(t *testing.T) {
	t.Parallel()
	img := noise(200, 200)
	p := DefaultPreparer()
	first, err := encodeJPEG(img, p.InitialQuality)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	floor, err := encodeJPEG(img, p.MinQuality)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(floor) >= len(first) {
		t.Fatalf("expected lower quality to shrink noise")
	}

	p.MaxBytes = len(floor)
	data, err := p.Prepare(img)
	if err != nil {
		t.Fatalf("prepare at floor: %v", err)
	}
	if len(data) > p.MaxBytes {
		t.Fatalf("payload over ceiling: %d > %d", len(data), p.MaxBytes)
	}
}

func TestPrepareFailsBelowFloor(t *testing.T) {
	t.Parallel()
	p := DefaultPreparer()
	p.MaxBytes = 64
	_, err := p.Prepare(noise(200, 200))
	if !errors.Is(err, apperrors.ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestPrepareRejectsEmptyImage(t *testing.T) {
	t.Parallel()
	if _, err := DefaultPreparer().Prepare(image.NewRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
