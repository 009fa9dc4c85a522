package domain

import (
	"errors"
	"testing"

	"crux/internal/contract"
	apperrors "crux/internal/platform/errors"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		seconds int
		want    string
	}{
		{-5, "0m"},
		{0, "0m"},
		{59, "0m"},
		{60, "1m"},
		{3599, "59m"},
		{3600, "1h 0m"},
		{4200, "1h 10m"},
		{7322, "2h 2m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestNextState(t *testing.T) {
	t.Parallel()
	active := Snapshot{IsActive: true}
	idle := Snapshot{}
	tests := []struct {
		name string
		prev State
		op   Operation
		snap Snapshot
		want State
	}{
		{"start activates", StateNoSession, OpStart, active, StateActive},
		{"climb keeps active", StateActive, OpLogClimb, active, StateActive},
		{"end is terminal", StateActive, OpEnd, idle, StateEnded},
		{"end confirmed even if flag lags", StateActive, OpEnd, active, StateEnded},
		{"get before any session", StateNoSession, OpGet, idle, StateNoSession},
		{"get after end", StateEnded, OpGet, idle, StateEnded},
		{"server reactivates after end", StateEnded, OpStart, active, StateActive},
		{"inactive read while active", StateActive, OpGet, idle, StateEnded},
	}
	for _, tt := range tests {
		if got := NextState(tt.prev, tt.op, tt.snap); got != tt.want {
			t.Fatalf("%s: got %s want %s", tt.name, got, tt.want)
		}
	}
}

func TestClimbEventValidate(t *testing.T) {
	t.Parallel()
	ok := ClimbEvent{Status: contract.ClimbStatusCompleted, Attempts: 3, DurationSeconds: 125}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}
	bad := []ClimbEvent{
		{Status: "DONE", Attempts: 1},
		{Status: contract.ClimbStatusFlash, Attempts: 0},
		{Status: contract.ClimbStatusFlash, Attempts: 1, DurationSeconds: -1},
	}
	for _, e := range bad {
		if err := e.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", e, err)
		}
	}
	if got := ok.Contract(); got.Status != contract.ClimbStatusCompleted || got.Attempts != 3 || got.DurationSeconds != 125 {
		t.Fatalf("unexpected contract %+v", got)
	}
}
