package in

import (
	"context"

	sessiondto "crux/internal/modules/session/dto"
	sessionin "crux/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) End(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return h.usecase.End(ctx)
}

func (h CLIHandler) Show(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return h.usecase.Refresh(ctx)
}

func (h CLIHandler) Current() sessiondto.SnapshotOutput {
	return h.usecase.Current()
}

func (h CLIHandler) Log(ctx context.Context, status string, attempts, durationSeconds int) (sessiondto.SnapshotOutput, error) {
	return h.usecase.LogClimb(ctx, sessiondto.LogClimbInput{Status: status, Attempts: attempts, DurationSeconds: durationSeconds})
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]sessiondto.HistoryEntryOutput, error) {
	return h.usecase.History(ctx, sessiondto.HistoryInput{Limit: limit})
}

func (h CLIHandler) Export(ctx context.Context, path string, limit int) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx, sessiondto.ExportInput{Path: path, Limit: limit})
}
