package domain

import (
	"fmt"
	"time"

	"crux/internal/contract"
	apperrors "crux/internal/platform/errors"
)

type State int

const (
	StateNoSession State = iota
	StateActive
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateNoSession:
		return "no-session"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Operation int

const (
	OpStart Operation = iota
	OpEnd
	OpGet
	OpLogClimb
)

func (o Operation) String() string {
	switch o {
	case OpStart:
		return "start"
	case OpEnd:
		return "end"
	case OpGet:
		return "get"
	case OpLogClimb:
		return "log-climb"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Snapshot is the server's view of today's counters. It is only ever
// replaced by a confirmed response, never derived locally.
type Snapshot struct {
	Climbs         int
	Sends          int
	ElapsedSeconds int
	IsActive       bool
}

func SnapshotFromContract(r contract.TodaySessionResponse) Snapshot {
	return Snapshot{Climbs: r.Climbs, Sends: r.Sends, ElapsedSeconds: r.ElapsedSeconds, IsActive: r.IsActive}
}

// NextState derives the state after a confirmed response to op. The server
// decides transitions; the client only mirrors them.
func NextState(prev State, op Operation, snap Snapshot) State {
	switch {
	case op == OpEnd:
		return StateEnded
	case snap.IsActive:
		return StateActive
	case prev == StateNoSession:
		return StateNoSession
	default:
		return StateEnded
	}
}

type ClimbEvent struct {
	Status          contract.ClimbStatus
	Attempts        int
	DurationSeconds int
}

func (e ClimbEvent) Validate() error {
	if !e.Status.Valid() {
		return fmt.Errorf("%w: unknown climb status %q", apperrors.ErrInvalidInput, string(e.Status))
	}
	if e.Attempts < 1 {
		return fmt.Errorf("%w: attempts must be at least 1, got %d", apperrors.ErrInvalidInput, e.Attempts)
	}
	if e.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration must be non-negative, got %d", apperrors.ErrInvalidInput, e.DurationSeconds)
	}
	return nil
}

func (e ClimbEvent) Contract() contract.ClimbEventRequest {
	return contract.ClimbEventRequest{Status: e.Status, Attempts: e.Attempts, DurationSeconds: e.DurationSeconds}
}

// JournalEntry is one confirmed climb event kept for local history.
type JournalEntry struct {
	ID       string
	UserID   string
	Event    ClimbEvent
	LoggedAt time.Time
	Climbs   int
	Sends    int
}
