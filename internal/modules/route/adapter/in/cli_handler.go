package in

import (
	"context"

	routedto "crux/internal/modules/route/dto"
	routein "crux/internal/modules/route/port/in"
)

type CLIHandler struct {
	usecase routein.Usecase
}

func NewCLIHandler(usecase routein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Scan(ctx context.Context, imagePath, outputPath string) (routedto.GenerateOutput, error) {
	return h.usecase.Generate(ctx, routedto.GenerateInput{ImagePath: imagePath, OutputPath: outputPath})
}
