package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	routedto "crux/internal/modules/route/dto"
	"crux/internal/platform/httpapi"
	"crux/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Scan(ctx context.Context, imagePath, outputPath string) (routedto.GenerateOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ScannedMsg struct {
	Output routedto.GenerateOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	ctx     context.Context
	port    Port
	input   textinput.Model
	spinner spinner.Model
	loading bool
	alert   string
	result  *routedto.GenerateOutput
	width   int
}

func New(ctx context.Context, port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "path to a wall photo (jpeg or png)"
	ti.CharLimit = 1024

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{ctx: ctx, port: port, input: ti, spinner: sp}
}

func (m Model) Init() tea.Cmd { return nil }

// Focus gives keyboard focus to the path input.
func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

func (m *Model) Blur() { m.input.Blur() }

// Editing reports whether keys should go to the path input rather than the
// global key map.
func (m Model) Editing() bool { return m.input.Focused() && m.alert == "" }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-8, 20)

	case ScannedMsg:
		m.loading = false
		if msg.Err != nil {
			m.alert = alertText(msg.Err)
			m.result = nil
			return m, nil
		}
		out := msg.Output
		m.result = &out
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.alert != "" {
			switch msg.String() {
			case "enter", "esc":
				m.alert = ""
			}
			return m, nil
		}
		if msg.String() == "enter" {
			return m.Submit(m.input.Value())
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Submit uploads the image at path unless a scan is already running.
func (m Model) Submit(path string) (Model, tea.Cmd) {
	path = strings.TrimSpace(path)
	if m.port == nil || m.loading {
		return m, nil
	}
	if path == "" {
		m.alert = "Enter the path of a wall photo first."
		return m, nil
	}
	m.input.SetValue(path)
	m.loading = true
	m.alert = ""
	m.result = nil
	port := m.port
	ctx := m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := port.Scan(ctx, path, "")
		return ScannedMsg{Output: out, Err: err}
	})
}

func (m Model) View() string {
	lines := []string{
		theme.Title.Render("Scan Route"),
		"",
		m.input.View(),
	}
	switch {
	case m.loading:
		lines = append(lines, "", m.spinner.View()+" generating route overlay…")
	case m.alert != "":
		lines = append(lines, "", theme.Alert.Render(m.alert+"\n\n"+theme.Muted.Render("enter/esc: dismiss")))
	case m.result != nil:
		lines = append(lines, "",
			theme.Hot.Render("Route overlay saved"),
			m.result.OutputPath,
			theme.Muted.Render(fmt.Sprintf("%dx%d, uploaded %d KiB", m.result.Width, m.result.Height, m.result.UploadBytes/1024)),
		)
	}
	lines = append(lines, "", theme.Muted.Render("enter: upload  tab: switch view"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// ─── private ─────────────────────────────────────────────────────────────────

func alertText(err error) string {
	switch httpapi.Kind(err) {
	case httpapi.KindPayloadTooLarge:
		return "Image is too large to upload, even after compression."
	case httpapi.KindNetwork:
		return "Could not reach the server: " + err.Error()
	case httpapi.KindDecoding:
		return "The server sent an unexpected response."
	case httpapi.KindAPI:
		var apiErr *httpapi.APIError
		if errors.As(err, &apiErr) {
			return fmt.Sprintf("Server error (%d): %s", apiErr.Status, apiErr.Message)
		}
	}
	return "Scan failed: " + err.Error()
}
