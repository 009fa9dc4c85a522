package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"crux/internal/contract"
	identityin "crux/internal/modules/identity/port/in"
	"crux/internal/modules/session/domain"
	sessiondto "crux/internal/modules/session/dto"
	sessionin "crux/internal/modules/session/port/in"
	sessionout "crux/internal/modules/session/port/out"
	"crux/internal/modules/session/service"
	"crux/internal/platform/clock"
	apperrors "crux/internal/platform/errors"
	"crux/internal/platform/id"
)

type Interactor struct {
	manager  *service.Manager
	identity identityin.Usecase
	journal  sessionout.Journal
	logbook  sessionout.Logbook
	clock    clock.Clock
	ids      id.Generator
}

// exportLimit bounds a logbook export when the caller gives no limit.
const exportLimit = 500

func NewInteractor(manager *service.Manager, identity identityin.Usecase, journal sessionout.Journal, logbook sessionout.Logbook, clk clock.Clock, ids id.Generator) sessionin.Usecase {
	return &Interactor{manager: manager, identity: identity, journal: journal, logbook: logbook, clock: clk, ids: ids}
}

func (i *Interactor) Start(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return i.apply(ctx, domain.OpStart, i.manager.StartSession)
}

func (i *Interactor) End(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return i.apply(ctx, domain.OpEnd, i.manager.EndSession)
}

func (i *Interactor) Refresh(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return i.apply(ctx, domain.OpGet, i.manager.GetSession)
}

func (i *Interactor) LogClimb(ctx context.Context, input sessiondto.LogClimbInput) (sessiondto.SnapshotOutput, error) {
	status, err := contract.ParseClimbStatus(input.Status)
	if err != nil {
		return i.Current(), fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	event := domain.ClimbEvent{Status: status, Attempts: input.Attempts, DurationSeconds: input.DurationSeconds}
	var userID string
	out, err := i.apply(ctx, domain.OpLogClimb, func(ctx context.Context, uid string) (domain.Snapshot, error) {
		userID = uid
		return i.manager.LogClimbEvent(ctx, uid, event)
	})
	if err != nil {
		return out, err
	}
	i.record(ctx, userID, event, out)
	return out, nil
}

func (i *Interactor) Current() sessiondto.SnapshotOutput {
	return toOutput(i.manager.Snapshot(), i.manager.State())
}

func (i *Interactor) History(ctx context.Context, input sessiondto.HistoryInput) ([]sessiondto.HistoryEntryOutput, error) {
	if i.journal == nil {
		return []sessiondto.HistoryEntryOutput{}, nil
	}
	userID, err := i.userID(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := i.journal.List(ctx, userID, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.HistoryEntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, sessiondto.HistoryEntryOutput{
			ID:              e.ID,
			Status:          string(e.Event.Status),
			Attempts:        e.Event.Attempts,
			DurationSeconds: e.Event.DurationSeconds,
			LoggedAt:        e.LoggedAt,
			Climbs:          e.Climbs,
			Sends:           e.Sends,
		})
	}
	return out, nil
}

// Export writes the journal of the signed-in user into the markdown logbook
// at input.Path.
func (i *Interactor) Export(ctx context.Context, input sessiondto.ExportInput) (sessiondto.ExportOutput, error) {
	path := strings.TrimSpace(input.Path)
	if path == "" {
		return sessiondto.ExportOutput{}, fmt.Errorf("%w: logbook path is required", apperrors.ErrInvalidInput)
	}
	if i.journal == nil || i.logbook == nil {
		return sessiondto.ExportOutput{}, fmt.Errorf("%w: logbook export is not configured", apperrors.ErrInvalidInput)
	}
	userID, err := i.userID(ctx)
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	limit := input.Limit
	if limit <= 0 {
		limit = exportLimit
	}
	entries, err := i.journal.List(ctx, userID, limit)
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	page := domain.NewLogbookPage(userID, i.clock.Now(), entries)
	if err := i.logbook.Update(ctx, path, page); err != nil {
		return sessiondto.ExportOutput{}, err
	}
	log.Info().Str("path", path).Int("entries", len(page.Entries)).Msg("logbook exported")
	return sessiondto.ExportOutput{Path: path, Entries: len(page.Entries), Sends: page.Sends()}, nil
}

func (i *Interactor) apply(ctx context.Context, op domain.Operation, call func(context.Context, string) (domain.Snapshot, error)) (sessiondto.SnapshotOutput, error) {
	userID, err := i.userID(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotLoggedIn) {
			i.manager.Reset()
		}
		return i.Current(), err
	}
	_, err = call(ctx, userID)
	out := i.Current()
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrSessionBusy):
		log.Debug().Str("op", op.String()).Msg("session request skipped, one is in flight")
	default:
		log.Warn().Err(err).Str("op", op.String()).Str("user_id", userID).Msg("session update failed, keeping last snapshot")
	}
	return out, err
}

// record appends a confirmed climb to the local journal. A journal failure
// does not undo the confirmed snapshot.
func (i *Interactor) record(ctx context.Context, userID string, event domain.ClimbEvent, out sessiondto.SnapshotOutput) {
	if i.journal == nil {
		return
	}
	entry := domain.JournalEntry{
		ID:       i.ids.New(),
		UserID:   userID,
		Event:    event,
		LoggedAt: i.clock.Now(),
		Climbs:   out.Climbs,
		Sends:    out.Sends,
	}
	if err := i.journal.Append(ctx, entry); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("append climb journal")
	}
}

func (i *Interactor) userID(ctx context.Context) (string, error) {
	if i.identity == nil {
		return "", apperrors.ErrNotLoggedIn
	}
	current, err := i.identity.Current(ctx)
	if err != nil {
		return "", err
	}
	return current.UserID, nil
}

func toOutput(s domain.Snapshot, state domain.State) sessiondto.SnapshotOutput {
	return sessiondto.SnapshotOutput{
		Climbs:         s.Climbs,
		Sends:          s.Sends,
		ElapsedSeconds: s.ElapsedSeconds,
		IsActive:       s.IsActive,
		State:          state.String(),
		Time:           domain.FormatDuration(s.ElapsedSeconds),
	}
}
