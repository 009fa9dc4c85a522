package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	recordingdto "crux/internal/modules/recording/dto"
	"crux/internal/modules/recording/usecase"
	sessiondto "crux/internal/modules/session/dto"
	apperrors "crux/internal/platform/errors"
)

type fakeSession struct {
	logged []sessiondto.LogClimbInput
	out    sessiondto.SnapshotOutput
	err    error
}

func (f *fakeSession) Start(context.Context) (sessiondto.SnapshotOutput, error)   { return f.out, nil }
func (f *fakeSession) End(context.Context) (sessiondto.SnapshotOutput, error)     { return f.out, nil }
func (f *fakeSession) Refresh(context.Context) (sessiondto.SnapshotOutput, error) { return f.out, nil }
func (f *fakeSession) Current() sessiondto.SnapshotOutput                         { return f.out }
func (f *fakeSession) History(context.Context, sessiondto.HistoryInput) ([]sessiondto.HistoryEntryOutput, error) {
	return nil, nil
}
func (f *fakeSession) Export(context.Context, sessiondto.ExportInput) (sessiondto.ExportOutput, error) {
	return sessiondto.ExportOutput{}, nil
}
func (f *fakeSession) LogClimb(_ context.Context, input sessiondto.LogClimbInput) (sessiondto.SnapshotOutput, error) {
	f.logged = append(f.logged, input)
	return f.out, f.err
}

func TestFinishAndSubmit(t *testing.T) {
	t.Parallel()
	session := &fakeSession{out: sessiondto.SnapshotOutput{Climbs: 1, Sends: 1, IsActive: true}}
	uc := usecase.NewInteractor(session)

	state := uc.Toggle()
	if !state.Running || state.Attempt != 1 {
		t.Fatalf("unexpected state after toggle: %+v", state)
	}
	restarted := uc.RestartAttempt()
	if _, ok := uc.Tick(state.Generation, time.Second); ok {
		t.Fatalf("tick from before the restart must be dropped")
	}
	for i := 0; i < 1255; i++ {
		if _, ok := uc.Tick(restarted.Generation, 100*time.Millisecond); !ok {
			t.Fatalf("tick %d dropped", i)
		}
	}
	if got := uc.State().ElapsedText; got != "02:05.5" {
		t.Fatalf("unexpected elapsed text %q", got)
	}

	event, err := uc.Finish("completed")
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	want := recordingdto.EventOutput{Status: "COMPLETED", Attempts: 2, DurationSeconds: 125}
	if event != want {
		t.Fatalf("got %+v want %+v", event, want)
	}
	if _, ok := uc.Tick(restarted.Generation, time.Second); ok {
		t.Fatalf("tick after finish must be dropped")
	}

	out, err := uc.Submit(context.Background(), event)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Climbs != 1 || len(session.logged) != 1 || session.logged[0].Attempts != 2 || session.logged[0].Status != "COMPLETED" {
		t.Fatalf("unexpected submission %+v -> %+v", session.logged, out)
	}
}

func TestFinishRejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(&fakeSession{})
	uc.Toggle()
	if _, err := uc.Finish("sent"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !uc.State().Running {
		t.Fatalf("recorder must keep running")
	}
}

func TestStopInvalidatesTicks(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(&fakeSession{})
	gen := uc.Toggle().Generation
	if uc.Toggle().Running {
		t.Fatalf("second toggle must stop the recorder")
	}
	if _, ok := uc.Tick(gen, time.Second); ok {
		t.Fatalf("tick after stop must be dropped")
	}
	if uc.State().Elapsed != 0 {
		t.Fatalf("elapsed must not advance")
	}
}

func TestCancelDiscardsRecording(t *testing.T) {
	t.Parallel()
	session := &fakeSession{}
	uc := usecase.NewInteractor(session)
	gen := uc.Toggle().Generation
	uc.Tick(gen, 3*time.Second)
	uc.RestartAttempt()

	state := uc.Cancel()
	if state.Running || state.Elapsed != 0 || state.Attempt != 1 {
		t.Fatalf("unexpected state after cancel: %+v", state)
	}
	if _, err := uc.Finish("COMPLETED"); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if len(session.logged) != 0 {
		t.Fatalf("cancel must not submit, got %+v", session.logged)
	}
}
