package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"crux/internal/modules/session/domain"
	sessionout "crux/internal/modules/session/port/out"
	"crux/internal/platform/markdown"
)

const logbookBlock = "climbs"

// MarkdownLogbook keeps the journal in a generated block of a markdown note,
// so hand-written text around it survives every export.
type MarkdownLogbook struct{}

var _ sessionout.Logbook = MarkdownLogbook{}

func NewMarkdownLogbook() MarkdownLogbook {
	return MarkdownLogbook{}
}

func (MarkdownLogbook) Update(_ context.Context, path string, page domain.LogbookPage) error {
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read logbook: %w", err)
	}
	if len(content) == 0 {
		content = []byte("# Climbing logbook\n")
	}
	note, err := markdown.Parse(string(content))
	if err != nil {
		return fmt.Errorf("parse logbook %s: %w", path, err)
	}
	note.Set("crux_user", page.UserID)
	note.Set("crux_exported_at", page.ExportedAt.UTC().Format(time.RFC3339))
	note.Set("climbs_logged", len(page.Entries))
	note.Set("sends_logged", page.Sends())
	note.SetBlock(logbookBlock, page.Table())

	rendered, err := note.Render()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create logbook dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write logbook: %w", err)
	}
	return nil
}
