package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"crux/internal/contract"
	"crux/internal/modules/session/domain"
	sessionout "crux/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

// loggedAtLayout has fixed-width fractions so rows sort by text.
const loggedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteJournal struct {
	db *sql.DB
}

var _ sessionout.Journal = (*SQLiteJournal)(nil)

func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	j := &SQLiteJournal{db: db}
	if err := j.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

func (j *SQLiteJournal) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS climb_journal (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL,
  attempts INTEGER NOT NULL,
  duration_seconds INTEGER NOT NULL,
  logged_at TEXT NOT NULL,
  climbs INTEGER NOT NULL,
  sends INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_climb_journal_user_logged ON climb_journal(user_id, logged_at);
`
	if _, err := j.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create climb_journal table: %w", err)
	}
	return nil
}

func (j *SQLiteJournal) Append(ctx context.Context, entry domain.JournalEntry) error {
	const stmt = `
INSERT INTO climb_journal (id, user_id, status, attempts, duration_seconds, logged_at, climbs, sends)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := j.db.ExecContext(ctx, stmt,
		entry.ID,
		entry.UserID,
		string(entry.Event.Status),
		entry.Event.Attempts,
		entry.Event.DurationSeconds,
		entry.LoggedAt.UTC().Format(loggedAtLayout),
		entry.Climbs,
		entry.Sends,
	)
	if err != nil {
		return fmt.Errorf("append climb journal: %w", err)
	}
	return nil
}

// List returns the newest entries first.
func (j *SQLiteJournal) List(ctx context.Context, userID string, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx, `
SELECT id, user_id, status, attempts, duration_seconds, logged_at, climbs, sends
FROM climb_journal
WHERE user_id = ?
ORDER BY logged_at DESC, id DESC
LIMIT ?;
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list climb journal: %w", err)
	}
	defer rows.Close()

	out := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		var (
			entry    domain.JournalEntry
			status   string
			loggedAt string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &status, &entry.Event.Attempts, &entry.Event.DurationSeconds, &loggedAt, &entry.Climbs, &entry.Sends); err != nil {
			return nil, fmt.Errorf("scan climb journal: %w", err)
		}
		entry.Event.Status = contract.ClimbStatus(status)
		entry.LoggedAt, err = time.Parse(loggedAtLayout, loggedAt)
		if err != nil {
			return nil, fmt.Errorf("parse logged_at %q: %w", loggedAt, err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate climb journal: %w", err)
	}
	return out, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
