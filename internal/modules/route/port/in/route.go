package in

import (
	"context"

	"crux/internal/modules/route/dto"
)

type Usecase interface {
	Generate(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error)
}
