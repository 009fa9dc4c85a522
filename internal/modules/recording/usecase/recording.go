package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crux/internal/contract"
	"crux/internal/modules/recording/domain"
	recordingdto "crux/internal/modules/recording/dto"
	recordingin "crux/internal/modules/recording/port/in"
	sessiondto "crux/internal/modules/session/dto"
	sessionin "crux/internal/modules/session/port/in"
	apperrors "crux/internal/platform/errors"
)

type Interactor struct {
	session sessionin.Usecase

	mu       sync.Mutex
	recorder *domain.Recorder
}

func NewInteractor(session sessionin.Usecase) recordingin.Usecase {
	return &Interactor{session: session, recorder: domain.NewRecorder()}
}

func (i *Interactor) State() recordingdto.StateOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stateLocked()
}

func (i *Interactor) Toggle() recordingdto.StateOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.recorder.Toggle()
	return i.stateLocked()
}

// Cancel discards the recording in progress.
func (i *Interactor) Cancel() recordingdto.StateOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.recorder.Cancel()
	return i.stateLocked()
}

func (i *Interactor) Tick(generation int, d time.Duration) (recordingdto.StateOutput, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	applied := i.recorder.Tick(generation, d)
	return i.stateLocked(), applied
}

func (i *Interactor) RestartAttempt() recordingdto.StateOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.recorder.RestartAttempt()
	return i.stateLocked()
}

func (i *Interactor) Finish(status string) (recordingdto.EventOutput, error) {
	parsed, err := contract.ParseClimbStatus(status)
	if err != nil {
		return recordingdto.EventOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	event, err := i.recorder.Complete(parsed)
	if err != nil {
		return recordingdto.EventOutput{}, err
	}
	return recordingdto.EventOutput{
		Status:          string(event.Status),
		Attempts:        event.Attempts,
		DurationSeconds: event.DurationSeconds,
	}, nil
}

// Submit reports a finished climb to today's session.
func (i *Interactor) Submit(ctx context.Context, event recordingdto.EventOutput) (sessiondto.SnapshotOutput, error) {
	if i.session == nil {
		return sessiondto.SnapshotOutput{}, fmt.Errorf("session usecase is not configured")
	}
	return i.session.LogClimb(ctx, sessiondto.LogClimbInput{
		Status:          event.Status,
		Attempts:        event.Attempts,
		DurationSeconds: event.DurationSeconds,
	})
}

func (i *Interactor) stateLocked() recordingdto.StateOutput {
	return recordingdto.StateOutput{
		Running:     i.recorder.Running(),
		Elapsed:     i.recorder.Elapsed(),
		ElapsedText: domain.FormatElapsed(i.recorder.Elapsed()),
		Attempt:     i.recorder.Attempt(),
		Generation:  i.recorder.Generation(),
	}
}
