package in

import (
	"context"

	"crux/internal/modules/session/dto"
)

// Usecase acts on today's session of the signed-in user. Every call returns
// the snapshot the caller should display, which is unchanged on failure.
type Usecase interface {
	Start(ctx context.Context) (dto.SnapshotOutput, error)
	End(ctx context.Context) (dto.SnapshotOutput, error)
	Refresh(ctx context.Context) (dto.SnapshotOutput, error)
	LogClimb(ctx context.Context, input dto.LogClimbInput) (dto.SnapshotOutput, error)
	Current() dto.SnapshotOutput
	History(ctx context.Context, input dto.HistoryInput) ([]dto.HistoryEntryOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
