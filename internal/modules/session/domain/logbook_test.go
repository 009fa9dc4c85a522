package domain

import (
	"strings"
	"testing"
	"time"

	"crux/internal/contract"
)

func TestLogbookPageOrdersAndCountsSends(t *testing.T) {
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	page := NewLogbookPage("u1", base.Add(time.Hour), []JournalEntry{
		{ID: "b", Event: ClimbEvent{Status: contract.ClimbStatusProject, Attempts: 4, DurationSeconds: 95}, LoggedAt: base.Add(2 * time.Minute), Climbs: 2, Sends: 1},
		{ID: "a", Event: ClimbEvent{Status: contract.ClimbStatusFlash, Attempts: 1, DurationSeconds: 30}, LoggedAt: base, Climbs: 1, Sends: 1},
	})

	if page.Entries[0].ID != "a" || page.Entries[1].ID != "b" {
		t.Fatalf("entries not oldest first: %+v", page.Entries)
	}
	if page.Sends() != 1 {
		t.Fatalf("sends = %d, want 1", page.Sends())
	}

	lines := strings.Split(page.Table(), "\n")
	if len(lines) != 4 {
		t.Fatalf("table has %d lines: %q", len(lines), page.Table())
	}
	if lines[2] != "| 2026-05-01 09:00 | Flash | 1 | 30s | 1 | 1 |" {
		t.Fatalf("row = %q", lines[2])
	}
	if lines[3] != "| 2026-05-01 09:02 | Project | 4 | 1m 35s | 2 | 1 |" {
		t.Fatalf("row = %q", lines[3])
	}
}

func TestLogbookPageEmpty(t *testing.T) {
	page := NewLogbookPage("u1", time.Now(), nil)
	if page.Table() != "_No climbs logged yet._" {
		t.Fatalf("table = %q", page.Table())
	}
}
