package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"crux/internal/modules/route/dto"
	routein "crux/internal/modules/route/port/in"
	"crux/internal/modules/route/service"
	apperrors "crux/internal/platform/errors"
	"crux/internal/platform/slug"
)

type Interactor struct {
	svc       *service.RouteService
	outputDir string
}

// NewInteractor writes overlays without an explicit output path to outputDir.
func NewInteractor(svc *service.RouteService, outputDir string) routein.Usecase {
	return &Interactor{svc: svc, outputDir: outputDir}
}

func (i *Interactor) Generate(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error) {
	imagePath := strings.TrimSpace(input.ImagePath)
	if imagePath == "" {
		return dto.GenerateOutput{}, fmt.Errorf("%w: image path is required", apperrors.ErrInvalidInput)
	}
	outputPath := strings.TrimSpace(input.OutputPath)
	if outputPath == "" {
		outputPath = filepath.Join(i.outputDir, slug.FromPath(imagePath)+"-route.png")
	}

	overlay, err := i.svc.Generate(ctx, imagePath)
	if err != nil {
		log.Warn().Err(err).Str("image", imagePath).Msg("route scan failed")
		return dto.GenerateOutput{}, err
	}
	written, err := i.svc.Save(ctx, outputPath, overlay)
	if err != nil {
		return dto.GenerateOutput{}, err
	}
	log.Info().Str("image", imagePath).Str("overlay", written).Int("upload_bytes", overlay.UploadBytes).Msg("route generated")
	return dto.GenerateOutput{
		OutputPath:  written,
		UploadBytes: overlay.UploadBytes,
		Width:       overlay.Width,
		Height:      overlay.Height,
	}, nil
}
