package domain

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"

	apperrors "crux/internal/platform/errors"
)

// Upload limits of /boulder/generate.
const (
	MaxUploadWidth = 1216
	MaxUploadBytes = 4 << 20
	UploadFilename = "wall.jpg"
	UploadMIMEType = "image/jpeg"
)

// Preparer shrinks a wall photo until it fits the upload ceiling. Quality is
// in percent so the step loop stays exact.
type Preparer struct {
	MaxWidth       int
	MaxBytes       int
	InitialQuality int
	MinQuality     int
	QualityStep    int
}

func DefaultPreparer() Preparer {
	return Preparer{
		MaxWidth:       MaxUploadWidth,
		MaxBytes:       MaxUploadBytes,
		InitialQuality: 85,
		MinQuality:     25,
		QualityStep:    10,
	}
}

// Prepare resizes img to MaxWidth (never upscaling) and JPEG-encodes it,
// lowering quality by QualityStep while the result exceeds MaxBytes and the
// quality is above MinQuality. It fails with ErrPayloadTooLarge when even the
// floor quality does not fit.
func (p Preparer) Prepare(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", apperrors.ErrInvalidInput)
	}
	scaled := Resize(img, p.MaxWidth)

	quality := p.InitialQuality
	data, err := encodeJPEG(scaled, quality)
	if err != nil {
		return nil, err
	}
	for len(data) > p.MaxBytes && quality > p.MinQuality {
		quality -= p.QualityStep
		if quality < 1 {
			quality = 1
		}
		if data, err = encodeJPEG(scaled, quality); err != nil {
			return nil, err
		}
	}
	if len(data) > p.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes at quality %d, limit %d", apperrors.ErrPayloadTooLarge, len(data), quality, p.MaxBytes)
	}
	return data, nil
}

// Resize scales img down to maxWidth keeping the aspect ratio. Images that
// are already narrow enough are returned as is.
func Resize(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	height := b.Dy() * maxWidth / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
