package out

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	routeout "crux/internal/modules/route/port/out"
	apperrors "crux/internal/platform/errors"
)

type FileImageStore struct{}

func NewFileImageStore() routeout.ImageStore {
	return FileImageStore{}
}

func (FileImageStore) Load(_ context.Context, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
		}
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", apperrors.ErrInvalidInput, path, err)
	}
	return img, nil
}

func (FileImageStore) Save(_ context.Context, path string, png []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create overlay dir: %w", err)
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write overlay: %w", err)
	}
	return path, nil
}
