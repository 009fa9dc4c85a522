package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"crux/internal/ui/components"
	"crux/internal/ui/theme"
	homeview "crux/internal/ui/views/home"
	recordview "crux/internal/ui/views/record"
	scanview "crux/internal/ui/views/scan"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Sub-view ports are defined in their own packages; the root model only
// forwards them.

type (
	SessionPort   = homeview.Port
	RecordingPort = recordview.Port
	ScanPort      = scanview.Port
)

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabHome tabID = iota
	tabRecord
	tabScan
	tabCount
)

var tabLabels = [tabCount]string{
	"Home", "Record", "Scan",
}

// ─── async messages ───────────────────────────────────────────────────────────

type loadMsg struct{}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Refresh  key.Binding
	End      key.Binding
	Toggle   key.Binding
	Restart  key.Binding
	Complete key.Binding
	Upload   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh session")),
		End:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/stop timer")),
		Restart:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "restart attempt")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete climb")),
		Upload:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upload photo")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Refresh, k.End},
		{k.Toggle, k.Restart, k.Complete},
		{k.Upload},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay,
// and the command palette. Every request runs under ctx, which is cancelled
// on quit so late responses never reach a torn-down screen.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	homeView   homeview.Model
	recordView recordview.Model
	scanView   scanview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(parent context.Context, session SessionPort, recording RecordingPort, scan ScanPort, tick time.Duration) Model {
	ctx, cancel := context.WithCancel(parent)
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		homeView:   homeview.New(ctx, session),
		recordView: recordview.New(ctx, recording, tick),
		scanView:   scanview.New(ctx, scan),
		activeTab:  tabHome,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return loadMsg{} }
}

// Context is cancelled once the model quits.
func (m Model) Context() context.Context { return m.ctx }

// Close cancels in-flight requests. It is safe to call more than once.
func (m Model) Close() { m.cancel() }

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case loadMsg:
		var cmd tea.Cmd
		m.homeView, cmd = m.homeView.Load()
		return m, cmd

	case homeview.SnapshotMsg:
		// Failed session calls are silent; the last confirmed snapshot stays.
		if msg.Err == nil {
			m.status = "session " + msg.Snapshot.State
		}
		var cmd tea.Cmd
		m.homeView, cmd = m.homeView.Update(msg)
		return m, cmd

	// A submitted climb carries the server snapshot for the Home tab.
	case recordview.SubmittedMsg:
		if msg.Err != nil {
			m.status = "climb not saved"
		} else {
			m.status = fmt.Sprintf("climb saved: %d climbs, %d sends", msg.Snapshot.Climbs, msg.Snapshot.Sends)
		}
		var cmd tea.Cmd
		m.recordView, cmd = m.recordView.Update(msg)
		cmds = append(cmds, cmd)
		if msg.Err == nil {
			m.homeView, cmd = m.homeView.Update(homeview.SessionChangedMsg{Snapshot: msg.Snapshot})
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case recordview.TickMsg:
		var cmd tea.Cmd
		m.recordView, cmd = m.recordView.Update(msg)
		return m, cmd

	case scanview.ScannedMsg:
		if msg.Err != nil {
			m.status = "scan failed"
		} else {
			m.status = "overlay saved"
		}
		var cmd tea.Cmd
		m.scanView, cmd = m.scanView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, m.focusActive()

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		// Yield to the scan path input while it is being edited.
		if m.activeTab == tabScan && m.scanView.Editing() && !isGlobalWhileEditing(msg) {
			break
		}

		switch msg.String() {
		case "q":
			return m.quit()
		case "tab":
			return m.switchTab((m.activeTab + 1) % tabCount)
		case "shift+tab":
			return m.switchTab((m.activeTab + tabCount - 1) % tabCount)
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			m.scanView.Blur()
			return m, m.palette.Open()
		case "esc":
			if m.scanView.Editing() {
				m.scanView.Blur()
				return m, nil
			}
		case "i":
			if m.activeTab == tabScan {
				return m, m.scanView.Focus()
			}
		}
	}

	// Remaining messages go to the active tab; spinner ticks reach every view
	// so background work keeps animating.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		var tabCmd tea.Cmd
		switch m.activeTab {
		case tabHome:
			m.homeView, tabCmd = m.homeView.Update(msg)
		case tabRecord:
			m.recordView, tabCmd = m.recordView.Update(msg)
		case tabScan:
			m.scanView, tabCmd = m.scanView.Update(msg)
		}
		return m, tabCmd
	}

	var cmd tea.Cmd
	m.homeView, cmd = m.homeView.Update(msg)
	cmds = append(cmds, cmd)
	m.recordView, cmd = m.recordView.Update(msg)
	cmds = append(cmds, cmd)
	m.scanView, cmd = m.scanView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Padding(1, 2).Render(m.activeView())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabHome:
		return m.homeView.View()
	case tabRecord:
		return m.recordView.View()
	case tabScan:
		return m.scanView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "crux  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	snap := m.homeView.Snapshot()
	if snap.IsActive {
		left = theme.Hot.Render(fmt.Sprintf("● %s", snap.Time)) + "  " + left
	}
	if rec := m.recordView.State(); rec.Running {
		left = theme.Hot.Render("◉ "+rec.ElapsedText) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, m.focusActive()
	}
	parts := strings.Fields(input)
	var cmd tea.Cmd

	switch parts[0] {
	case "session:start":
		m.activeTab = tabHome
		m.homeView, cmd = m.homeView.StartSession()
		return m, cmd

	case "session:end":
		m.activeTab = tabHome
		m.homeView, cmd = m.homeView.EndSession()
		return m, cmd

	case "session:refresh":
		m.activeTab = tabHome
		m.homeView, cmd = m.homeView.Refresh()
		return m, cmd

	case "record:toggle":
		m.activeTab = tabRecord
		m.recordView, cmd = m.recordView.Toggle()
		return m, cmd

	case "record:restart":
		m.activeTab = tabRecord
		m.recordView, cmd = m.recordView.Restart()
		return m, cmd

	case "record:complete":
		m.activeTab = tabRecord
		status := ""
		if len(parts) >= 2 {
			status = parts[1]
		}
		m.recordView, cmd = m.recordView.Complete(status)
		return m, cmd

	case "scan":
		if len(parts) < 2 {
			m.status = "usage: scan <path>"
			return m, nil
		}
		m.activeTab = tabScan
		m.scanView, cmd = m.scanView.Submit(strings.TrimSpace(strings.TrimPrefix(input, parts[0])))
		return m, cmd

	case "tab":
		if len(parts) < 2 {
			m.status = "usage: tab <home|record|scan>"
			return m, nil
		}
		for i, label := range tabLabels {
			if strings.EqualFold(label, parts[1]) {
				return m.switchTab(tabID(i))
			}
		}
		m.status = "unknown tab: " + parts[1]

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.recordView = m.recordView.Cancel()
	m.cancel()
	return m, tea.Quit
}

func (m Model) switchTab(tab tabID) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	m.scanView.Blur()
	if tab == tabHome {
		var cmd tea.Cmd
		m.homeView, cmd = m.homeView.Load()
		return m, cmd
	}
	return m, m.focusActive()
}

func (m *Model) focusActive() tea.Cmd {
	if m.activeTab == tabScan {
		return m.scanView.Focus()
	}
	return nil
}

// isGlobalWhileEditing lists the keys that keep working while the scan path
// input has focus.
func isGlobalWhileEditing(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "tab", "shift+tab", "esc":
		return true
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.homeView, _ = m.homeView.Update(sz)
	m.recordView, _ = m.recordView.Update(sz)
	m.scanView, _ = m.scanView.Update(sz)
}
