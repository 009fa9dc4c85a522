package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"crux/internal/modules/route/domain"
	routeout "crux/internal/modules/route/port/out"
)

// ErrInvalidOverlay means the server answered with something that is not an image.
var ErrInvalidOverlay = errors.New("invalid image returned by server")

type Overlay struct {
	PNG         []byte
	UploadBytes int
	Width       int
	Height      int
}

type RouteService struct {
	preparer domain.Preparer
	renderer routeout.Renderer
	images   routeout.ImageStore
}

func NewRouteService(preparer domain.Preparer, renderer routeout.Renderer, images routeout.ImageStore) *RouteService {
	return &RouteService{preparer: preparer, renderer: renderer, images: images}
}

// Generate uploads the photo at imagePath and returns the rendered overlay
// as PNG. Oversized photos fail before any request is made.
func (s *RouteService) Generate(ctx context.Context, imagePath string) (Overlay, error) {
	img, err := s.images.Load(ctx, imagePath)
	if err != nil {
		return Overlay{}, err
	}
	upload, err := s.preparer.Prepare(img)
	if err != nil {
		return Overlay{}, err
	}
	raw, err := s.renderer.Render(ctx, upload)
	if err != nil {
		return Overlay{}, err
	}
	overlay, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Overlay{}, ErrInvalidOverlay
	}
	out := Overlay{
		PNG:         raw,
		UploadBytes: len(upload),
		Width:       overlay.Bounds().Dx(),
		Height:      overlay.Bounds().Dy(),
	}
	if format != "png" {
		var buf bytes.Buffer
		if err := png.Encode(&buf, overlay); err != nil {
			return Overlay{}, fmt.Errorf("encode overlay: %w", err)
		}
		out.PNG = buf.Bytes()
	}
	return out, nil
}

func (s *RouteService) Save(ctx context.Context, path string, overlay Overlay) (string, error) {
	return s.images.Save(ctx, path, overlay.PNG)
}
