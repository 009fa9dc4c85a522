// Package domain models the record screen: a stopwatch with an attempt
// counter that turns into a climb event when the climb is completed.
package domain

import (
	"fmt"
	"time"

	"crux/internal/contract"
	apperrors "crux/internal/platform/errors"
)

// Event is what a completed recording reports to the session.
type Event struct {
	Status          contract.ClimbStatus
	Attempts        int
	DurationSeconds int
}

// Recorder is not safe for concurrent use; the UI loop owns it.
type Recorder struct {
	running bool
	elapsed time.Duration
	attempt int
	// generation changes whenever running ticks must be discarded.
	generation int
}

func NewRecorder() *Recorder {
	return &Recorder{attempt: 1}
}

func (r *Recorder) Running() bool          { return r.running }
func (r *Recorder) Elapsed() time.Duration { return r.elapsed }
func (r *Recorder) Attempt() int           { return r.attempt }
func (r *Recorder) Generation() int        { return r.generation }

// Start begins timing and returns the generation ticks must carry.
func (r *Recorder) Start() int {
	if !r.running {
		r.running = true
		r.generation++
	}
	return r.generation
}

// Stop pauses timing and invalidates outstanding ticks.
func (r *Recorder) Stop() {
	if r.running {
		r.running = false
		r.generation++
	}
}

func (r *Recorder) Toggle() {
	if r.running {
		r.Stop()
		return
	}
	r.Start()
}

// Tick adds d when generation is current and the recorder runs. It reports
// whether the tick was applied, so the caller knows to schedule the next one.
func (r *Recorder) Tick(generation int, d time.Duration) bool {
	if !r.running || generation != r.generation || d < 0 {
		return false
	}
	r.elapsed += d
	return true
}

// RestartAttempt counts a new attempt and zeroes the clock. A running
// recorder keeps running under a fresh generation, so the caller owns the
// only live tick loop and ticks issued before the restart are dropped.
func (r *Recorder) RestartAttempt() int {
	r.attempt++
	r.elapsed = 0
	if r.running {
		r.generation++
	}
	return r.generation
}

// Complete stops the recorder and builds the event to submit. The recorder
// resets for the next climb.
func (r *Recorder) Complete(status contract.ClimbStatus) (Event, error) {
	if !status.Valid() {
		return Event{}, fmt.Errorf("%w: unknown climb status %q", apperrors.ErrInvalidInput, string(status))
	}
	if !r.running && r.elapsed == 0 && r.attempt == 1 {
		return Event{}, fmt.Errorf("%w: nothing recorded", apperrors.ErrInvalidTransition)
	}
	r.Stop()
	event := Event{
		Status:          status,
		Attempts:        r.attempt,
		DurationSeconds: int(r.elapsed / time.Second),
	}
	r.elapsed = 0
	r.attempt = 1
	return event, nil
}

// Cancel drops the current recording without reporting it. Used on teardown.
func (r *Recorder) Cancel() {
	r.Stop()
	r.elapsed = 0
	r.attempt = 1
}

// FormatElapsed renders MM:SS.d, e.g. 02:05.3.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := int(d / (100 * time.Millisecond))
	minutes := tenths / 600
	seconds := (tenths / 10) % 60
	return fmt.Sprintf("%02d:%02d.%d", minutes, seconds, tenths%10)
}
