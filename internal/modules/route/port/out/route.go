package out

import (
	"context"
	"image"
)

// Renderer draws a suggested route over an uploaded wall photo.
type Renderer interface {
	Render(ctx context.Context, jpeg []byte) ([]byte, error)
}

type ImageStore interface {
	Load(ctx context.Context, path string) (image.Image, error)
	// Save writes a PNG overlay, returning the path it was written to.
	Save(ctx context.Context, path string, png []byte) (string, error)
}
