package in

import (
	"context"
	"time"

	recordingdto "crux/internal/modules/recording/dto"
	sessiondto "crux/internal/modules/session/dto"
)

type Usecase interface {
	State() recordingdto.StateOutput
	Toggle() recordingdto.StateOutput
	Cancel() recordingdto.StateOutput
	Tick(generation int, d time.Duration) (recordingdto.StateOutput, bool)
	RestartAttempt() recordingdto.StateOutput
	Finish(status string) (recordingdto.EventOutput, error)
	Submit(ctx context.Context, event recordingdto.EventOutput) (sessiondto.SnapshotOutput, error)
}
