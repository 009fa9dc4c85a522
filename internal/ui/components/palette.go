package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"crux/internal/contract"
	"crux/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

const maxSuggestions = 6

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	usageStyle = lipgloss.NewStyle().Foreground(theme.Text)
	helpStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Command describes one palette entry. The app's executePalette switch must
// handle every Name.
type Command struct {
	Name string
	Args string
	Help string
	// Values lists the accepted first argument, if the set is closed.
	Values []string
}

func (c Command) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// Commands returns the palette's command table.
func Commands() []Command {
	statuses := make([]string, 0, len(contract.ClimbStatuses()))
	for _, s := range contract.ClimbStatuses() {
		statuses = append(statuses, strings.ToLower(string(s)))
	}
	return []Command{
		{Name: "session:start", Help: "start today's session"},
		{Name: "session:end", Help: "end today's session"},
		{Name: "session:refresh", Help: "re-read today's counters"},
		{Name: "record:toggle", Help: "start or pause the stopwatch"},
		{Name: "record:restart", Help: "count a new attempt from zero"},
		{Name: "record:complete", Args: "<status>", Help: "log the climb", Values: statuses},
		{Name: "scan", Args: "<image> [out]", Help: "draw a route on a wall photo"},
		{Name: "tab", Args: "<home|record|scan>", Help: "switch screen", Values: []string{"home", "record", "scan"}},
	}
}

// Suggestion is one line under the palette input.
type Suggestion struct {
	// Completion replaces the input when the user presses tab.
	Completion string
	Label      string
	Help       string
}

// Suggest lists what can follow input. While the command word is being typed
// it matches command names anywhere (so "end" finds session:end); once a
// command with a closed argument set is chosen it lists matching values.
func Suggest(input string) []Suggestion {
	input = strings.ToLower(strings.TrimLeft(input, " "))
	name, arg, hasArg := strings.Cut(input, " ")

	var out []Suggestion
	for _, c := range Commands() {
		if hasArg {
			if c.Name != name {
				continue
			}
			for _, v := range c.Values {
				if strings.HasPrefix(v, strings.TrimSpace(arg)) {
					out = append(out, Suggestion{Completion: c.Name + " " + v, Label: c.Name + " " + v, Help: c.Help})
				}
			}
			if len(c.Values) == 0 {
				out = append(out, Suggestion{Completion: input, Label: c.Usage(), Help: c.Help})
			}
			continue
		}
		if name == "" || strings.Contains(c.Name, name) {
			completion := c.Name
			if c.Args != "" {
				completion += " "
			}
			out = append(out, Suggestion{Completion: completion, Label: c.Usage(), Help: c.Help})
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "session:start, record:complete flash, scan wall.jpg…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p Palette) Value() string { return p.input.Value() }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			// Complete to the first suggestion.
			if s := Suggest(p.input.Value()); len(s) > 0 {
				p.input.SetValue(s[0].Completion)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Crux") + helpStyle.Render("  tab completes, enter runs") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")

	suggestions := Suggest(p.input.Value())
	if len(suggestions) > 0 {
		width := 0
		for _, s := range suggestions {
			width = max(width, len(s.Label))
		}
		sb.WriteString("\n")
		for _, s := range suggestions {
			label := usageStyle.Render("  " + s.Label + strings.Repeat(" ", width-len(s.Label)))
			sb.WriteString(label + "  " + helpStyle.Render(s.Help) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
