package out

import (
	"context"

	"crux/internal/modules/session/domain"
)

// SessionAPI is the backend's /sessions/today resource.
type SessionAPI interface {
	Start(ctx context.Context, userID string) (domain.Snapshot, error)
	End(ctx context.Context, userID string) (domain.Snapshot, error)
	Get(ctx context.Context, userID string) (domain.Snapshot, error)
	LogClimb(ctx context.Context, userID string, event domain.ClimbEvent) (domain.Snapshot, error)
}

type Journal interface {
	Append(ctx context.Context, entry domain.JournalEntry) error
	List(ctx context.Context, userID string, limit int) ([]domain.JournalEntry, error)
}

// Logbook writes journal pages into a user-owned document at path.
type Logbook interface {
	Update(ctx context.Context, path string, page domain.LogbookPage) error
}
