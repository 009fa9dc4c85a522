package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"crux/internal/modules/session/domain"
	sessionout "crux/internal/modules/session/port/out"
	apperrors "crux/internal/platform/errors"
)

// ErrUserChanged reports a response that arrived after the manager switched
// to another user. The response is dropped.
var ErrUserChanged = errors.New("response belongs to a previous user")

// Manager holds today's session for one user at a time. The snapshot is only
// replaced by a confirmed response; any failure leaves it as it was.
type Manager struct {
	api sessionout.SessionAPI

	// busy guards StartSession and GetSession against re-entrant calls.
	busy atomic.Bool

	mu       sync.Mutex
	userID   string
	snapshot domain.Snapshot
	state    domain.State
}

func NewManager(api sessionout.SessionAPI) *Manager {
	return &Manager{api: api}
}

func (m *Manager) StartSession(ctx context.Context, userID string) (domain.Snapshot, error) {
	return m.guarded(ctx, userID, domain.OpStart, m.api.Start)
}

func (m *Manager) GetSession(ctx context.Context, userID string) (domain.Snapshot, error) {
	return m.guarded(ctx, userID, domain.OpGet, m.api.Get)
}

func (m *Manager) EndSession(ctx context.Context, userID string) (domain.Snapshot, error) {
	return m.run(ctx, userID, domain.OpEnd, m.api.End)
}

func (m *Manager) LogClimbEvent(ctx context.Context, userID string, event domain.ClimbEvent) (domain.Snapshot, error) {
	if err := event.Validate(); err != nil {
		return m.Snapshot(), err
	}
	return m.run(ctx, userID, domain.OpLogClimb, func(ctx context.Context, userID string) (domain.Snapshot, error) {
		return m.api.LogClimb(ctx, userID, event)
	})
}

// Snapshot returns a copy of the last confirmed snapshot.
func (m *Manager) Snapshot() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

func (m *Manager) State() domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// UserID is the user the current snapshot belongs to, or "".
func (m *Manager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID
}

// Reset forgets the user and the snapshot.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = ""
	m.snapshot = domain.Snapshot{}
	m.state = domain.StateNoSession
}

func (m *Manager) guarded(ctx context.Context, userID string, op domain.Operation, call func(context.Context, string) (domain.Snapshot, error)) (domain.Snapshot, error) {
	if !m.busy.CompareAndSwap(false, true) {
		return m.Snapshot(), apperrors.ErrSessionBusy
	}
	defer m.busy.Store(false)
	return m.run(ctx, userID, op, call)
}

func (m *Manager) run(ctx context.Context, userID string, op domain.Operation, call func(context.Context, string) (domain.Snapshot, error)) (domain.Snapshot, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return m.Snapshot(), fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	m.adopt(userID)

	next, err := call(ctx, userID)
	if err != nil {
		return m.Snapshot(), fmt.Errorf("%s session: %w", op, err)
	}
	if err := ctx.Err(); err != nil {
		return m.Snapshot(), fmt.Errorf("%s session: discard late response: %w", op, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.userID != userID {
		return m.snapshot, fmt.Errorf("%s session: %w", op, ErrUserChanged)
	}
	m.snapshot = next
	m.state = domain.NextState(m.state, op, next)
	return next, nil
}

// adopt switches the manager to userID, dropping another user's state.
func (m *Manager) adopt(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.userID == userID {
		return
	}
	m.userID = userID
	m.snapshot = domain.Snapshot{}
	m.state = domain.StateNoSession
}
