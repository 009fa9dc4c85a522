package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"crux/internal/contract"
	recordingdto "crux/internal/modules/recording/dto"
	sessiondto "crux/internal/modules/session/dto"
	"crux/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	State() recordingdto.StateOutput
	Toggle() recordingdto.StateOutput
	Cancel() recordingdto.StateOutput
	Tick(generation int, d time.Duration) (recordingdto.StateOutput, bool)
	RestartAttempt() recordingdto.StateOutput
	Complete(status string) (recordingdto.EventOutput, error)
	Submit(ctx context.Context, event recordingdto.EventOutput) (sessiondto.SnapshotOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// TickMsg advances the stopwatch. Stopping, restarting or cancelling issues a
// new generation and ticks from an older one are dropped, so at most one tick
// loop is live at a time.
type TickMsg struct {
	Generation int
	Interval   time.Duration
}

// SubmittedMsg reports the outcome of sending a finished climb.
type SubmittedMsg struct {
	Event    recordingdto.EventOutput
	Snapshot sessiondto.SnapshotOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	ctx      context.Context
	port     Port
	interval time.Duration
	state    recordingdto.StateOutput
	status   int
	last     *SubmittedMsg
	err      error
	width    int
}

func New(ctx context.Context, port Port, interval time.Duration) Model {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	m := Model{ctx: ctx, port: port, interval: interval, status: statusIndex(contract.ClimbStatusCompleted)}
	if port != nil {
		m.state = port.State()
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case TickMsg:
		if m.port == nil {
			return m, nil
		}
		state, ok := m.port.Tick(msg.Generation, msg.Interval)
		if !ok {
			return m, nil
		}
		m.state = state
		return m, m.tick()

	case SubmittedMsg:
		m.last = &msg
		return m, nil

	case tea.KeyMsg:
		if m.port == nil {
			return m, nil
		}
		switch key := msg.String(); key {
		case " ":
			return m.Toggle()
		case "x":
			return m.Restart()
		case "c":
			return m.Complete("")
		case "1", "2", "3", "4", "5":
			m.status = int(key[0] - '1')
		}
	}
	return m, nil
}

// Toggle starts or stops the stopwatch.
func (m Model) Toggle() (Model, tea.Cmd) {
	if m.port == nil {
		return m, nil
	}
	m.err = nil
	m.state = m.port.Toggle()
	if m.state.Running {
		return m, m.tick()
	}
	return m, nil
}

// Restart begins the next attempt from zero. While running, the recorder moves
// to a new generation: the pending tick dies and the returned one takes over.
func (m Model) Restart() (Model, tea.Cmd) {
	if m.port == nil {
		return m, nil
	}
	m.err = nil
	m.state = m.port.RestartAttempt()
	if m.state.Running {
		return m, m.tick()
	}
	return m, nil
}

// Complete finishes the climb with status, or with the selected status when
// status is empty, and submits it in the background.
func (m Model) Complete(status string) (Model, tea.Cmd) {
	if m.port == nil {
		return m, nil
	}
	if status == "" {
		status = string(contract.ClimbStatuses()[m.status])
	}
	event, err := m.port.Complete(status)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.state = m.port.State()
	port := m.port
	ctx := m.ctx
	return m, func() tea.Msg {
		snapshot, err := port.Submit(ctx, event)
		return SubmittedMsg{Event: event, Snapshot: snapshot, Err: err}
	}
}

// Cancel halts the stopwatch and drops the unsent recording; pending ticks
// become stale.
func (m Model) Cancel() Model {
	if m.port != nil {
		m.state = m.port.Cancel()
	}
	return m
}

func (m Model) State() recordingdto.StateOutput { return m.state }

func (m Model) View() string {
	title := theme.Title.Render("Record Climb")
	clock := theme.Big.Render(m.state.ElapsedText)
	if m.state.Running {
		clock = theme.Hot.Render("● ") + clock
	}
	attempt := theme.Muted.Render(fmt.Sprintf("attempt %d", m.state.Attempt))

	var statuses []string
	for i, s := range contract.ClimbStatuses() {
		label := fmt.Sprintf("%d %s", i+1, s.DisplayName())
		style := lipgloss.NewStyle().Foreground(theme.Accent(s.Color()))
		if i == m.status {
			style = style.Bold(true).Underline(true)
		}
		statuses = append(statuses, style.Render(label))
	}

	lines := []string{
		title,
		"",
		theme.Tile.Render(clock + "\n" + attempt),
		"",
		strings.Join(statuses, "  "),
	}
	if m.err != nil {
		lines = append(lines, "", theme.Alert.Render(m.err.Error()))
	}
	if m.last != nil {
		lines = append(lines, "", m.lastView())
	}
	lines = append(lines, "", theme.Muted.Render("space: start/stop  x: restart attempt  1-5: status  c: complete"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) tick() tea.Cmd {
	gen := m.state.Generation
	interval := m.interval
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{Generation: gen, Interval: interval}
	})
}

func (m Model) lastView() string {
	ev := m.last.Event
	summary := fmt.Sprintf("last: %s in %d attempt(s), %ds", strings.ToLower(ev.Status), ev.Attempts, ev.DurationSeconds)
	if m.last.Err != nil {
		return theme.Muted.Render(summary + " (not saved)")
	}
	return theme.Muted.Render(summary)
}

func statusIndex(status contract.ClimbStatus) int {
	for i, s := range contract.ClimbStatuses() {
		if s == status {
			return i
		}
	}
	return 0
}
