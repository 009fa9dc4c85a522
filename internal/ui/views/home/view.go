package home

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "crux/internal/modules/session/dto"
	"crux/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the slice of the session use-case the Home tab needs. Every call
// returns the snapshot to display, which is unchanged when the call failed.
type Port interface {
	Start(ctx context.Context) (sessiondto.SnapshotOutput, error)
	End(ctx context.Context) (sessiondto.SnapshotOutput, error)
	Show(ctx context.Context) (sessiondto.SnapshotOutput, error)
	Current() sessiondto.SnapshotOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// SnapshotMsg carries the result of a session call this view started.
type SnapshotMsg struct {
	Snapshot sessiondto.SnapshotOutput
	Err      error
}

// SessionChangedMsg carries a snapshot confirmed by another tab, e.g. after a
// climb is submitted. It does not settle any of this view's own calls.
type SessionChangedMsg struct {
	Snapshot sessiondto.SnapshotOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	ctx       context.Context
	port      Port
	spinner   spinner.Model
	snapshot  sessiondto.SnapshotOutput
	hasLoaded bool
	pending   int
	width     int
	height    int
}

func New(ctx context.Context, port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	m := Model{ctx: ctx, port: port, spinner: sp}
	if port != nil {
		m.snapshot = port.Current()
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Load starts today's session the first time the tab is shown and refreshes
// it on every later visit.
func (m Model) Load() (Model, tea.Cmd) {
	if m.port == nil {
		return m, nil
	}
	if !m.hasLoaded {
		m.hasLoaded = true
		return m.run(m.port.Start)
	}
	return m.run(m.port.Show)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case SnapshotMsg:
		if m.pending > 0 {
			m.pending--
		}
		// Failures carry the unchanged snapshot, so it is always safe to apply.
		m.snapshot = msg.Snapshot

	case SessionChangedMsg:
		m.snapshot = msg.Snapshot

	case spinner.TickMsg:
		if m.pending > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		if m.port == nil {
			return m, nil
		}
		switch msg.String() {
		case "r":
			return m.run(m.port.Show)
		case "e":
			return m.run(m.port.End)
		}
	}
	return m, nil
}

// Refresh re-reads today's session.
func (m Model) Refresh() (Model, tea.Cmd) {
	if m.port == nil {
		return m, nil
	}
	return m.run(m.port.Show)
}

func (m Model) StartSession() (Model, tea.Cmd) {
	if m.port == nil {
		return m, nil
	}
	return m.run(m.port.Start)
}

func (m Model) EndSession() (Model, tea.Cmd) {
	if m.port == nil {
		return m, nil
	}
	return m.run(m.port.End)
}

func (m Model) Loaded() bool { return m.hasLoaded }

// Loading reports whether a call started by this view is still in flight.
func (m Model) Loading() bool { return m.pending > 0 }

func (m Model) Snapshot() sessiondto.SnapshotOutput { return m.snapshot }

func (m Model) View() string {
	title := theme.Title.Render("Today's Session")
	state := theme.Muted.Render(m.snapshot.State)
	if m.snapshot.IsActive {
		state = theme.Hot.Render("● active")
	}
	if m.pending > 0 {
		state += " " + m.spinner.View()
	}

	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Climbs", strconv.Itoa(m.snapshot.Climbs)),
		tile("Time", m.snapshot.Time),
		tile("Sends", strconv.Itoa(m.snapshot.Sends)),
	)
	hint := theme.Muted.Render("r: refresh  e: end session")
	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  %s", title, state),
		"",
		tiles,
		"",
		hint,
	)
}

// ─── private ─────────────────────────────────────────────────────────────────

func tile(label, value string) string {
	if value == "" {
		value = "0m"
	}
	body := theme.Big.Render(value) + "\n" + theme.Muted.Render(label)
	return theme.Tile.Width(14).Render(body)
}

func (m Model) run(call func(context.Context) (sessiondto.SnapshotOutput, error)) (Model, tea.Cmd) {
	m.pending++
	ctx := m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := call(ctx)
		return SnapshotMsg{Snapshot: out, Err: err}
	})
}
