package in

import (
	"context"
	"time"

	recordingdto "crux/internal/modules/recording/dto"
	recordingin "crux/internal/modules/recording/port/in"
	sessiondto "crux/internal/modules/session/dto"
)

type TUIHandler struct {
	usecase recordingin.Usecase
}

func NewTUIHandler(usecase recordingin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) State() recordingdto.StateOutput  { return h.usecase.State() }
func (h TUIHandler) Toggle() recordingdto.StateOutput { return h.usecase.Toggle() }
func (h TUIHandler) Cancel() recordingdto.StateOutput { return h.usecase.Cancel() }

func (h TUIHandler) Tick(generation int, d time.Duration) (recordingdto.StateOutput, bool) {
	return h.usecase.Tick(generation, d)
}

func (h TUIHandler) RestartAttempt() recordingdto.StateOutput {
	return h.usecase.RestartAttempt()
}

func (h TUIHandler) Complete(status string) (recordingdto.EventOutput, error) {
	return h.usecase.Finish(status)
}

func (h TUIHandler) Submit(ctx context.Context, event recordingdto.EventOutput) (sessiondto.SnapshotOutput, error) {
	return h.usecase.Submit(ctx, event)
}
