package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// LogbookPage is the slice of the journal written to a markdown logbook.
type LogbookPage struct {
	UserID     string
	ExportedAt time.Time
	Entries    []JournalEntry
}

// NewLogbookPage orders entries oldest first.
func NewLogbookPage(userID string, exportedAt time.Time, entries []JournalEntry) LogbookPage {
	sorted := append([]JournalEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LoggedAt.Before(sorted[j].LoggedAt)
	})
	return LogbookPage{UserID: userID, ExportedAt: exportedAt, Entries: sorted}
}

func (p LogbookPage) Sends() int {
	n := 0
	for _, e := range p.Entries {
		if e.Event.Status.IsSend() {
			n++
		}
	}
	return n
}

// Table renders the entries as a markdown table.
func (p LogbookPage) Table() string {
	if len(p.Entries) == 0 {
		return "_No climbs logged yet._"
	}
	var b strings.Builder
	b.WriteString("| Logged | Status | Attempts | Duration | Session climbs | Session sends |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|\n")
	for _, e := range p.Entries {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %d | %d |\n",
			e.LoggedAt.UTC().Format("2006-01-02 15:04"),
			e.Event.Status.DisplayName(),
			e.Event.Attempts,
			formatClimbDuration(e.Event.DurationSeconds),
			e.Climbs,
			e.Sends,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatClimbDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
}
