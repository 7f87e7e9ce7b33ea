package picker

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/truefrontier/openrouter-launch/internal/catalog"
	"github.com/truefrontier/openrouter-launch/internal/ui"
)

// ErrCancelled is returned when the user leaves the picker without choosing.
var ErrCancelled = errors.New("no model selected")

// VisibleRows is how many models are listed at once.
const VisibleRows = 15

const idWidth = 40

var (
	rowStyle      = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().Foreground(ui.Primary).Bold(true)
	matchStyle    = lipgloss.NewStyle().Foreground(ui.Secondary).Bold(true)
)

// Model is the bubbletea model of the model picker.
type Model struct {
	catalog catalog.Catalog
	aliases AliasLookup
	input   textinput.Model
	results []Match
	cursor  int
	offset  int

	chosen    string
	cancelled bool
}

// New creates a picker over cat. aliases may be nil.
func New(cat catalog.Catalog, aliases AliasLookup) Model {
	input := textinput.New()
	input.Placeholder = "Type to filter..."
	input.Prompt = "Select a model › "
	input.Focus()

	return Model{
		catalog: cat,
		aliases: aliases,
		input:   input,
		results: Filter("", cat, aliases),
	}
}

// Init initializes the picker.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "esc", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit

	case "enter":
		if len(m.results) == 0 {
			return m, nil
		}
		m.chosen = m.results[m.cursor].Model.ID
		return m, tea.Quit

	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		m.scroll()
		return m, nil

	case "down", "ctrl+n":
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		m.scroll()
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.results = Filter(m.input.Value(), m.catalog, m.aliases)
		m.cursor = 0
		m.offset = 0
	}
	return m, cmd
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+VisibleRows {
		m.offset = m.cursor - VisibleRows + 1
	}
}

// View renders the picker.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(ui.Dim.Render("↑↓ Navigate • Type to filter • Enter to select • Esc to cancel"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		b.WriteString(ui.Dim.Render("  No matching models"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+VisibleRows, len(m.results))
	for i := m.offset; i < end; i++ {
		r := m.results[i]
		id := highlight(r.Model.ID, r.MatchedChars)
		pad := strings.Repeat(" ", max(1, idWidth-len(r.Model.ID)))
		line := id + pad + ui.Dim.Render(r.Model.Pricing())
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("❯ ") + line)
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(ui.Dim.Render(fmt.Sprintf("\n  %d/%d models", len(m.results), len(m.catalog))))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the selected identifier, empty if none.
func (m Model) Chosen() string { return m.chosen }

// Cancelled reports whether the user pressed Esc or Ctrl+C.
func (m Model) Cancelled() bool { return m.cancelled }

// Run shows the picker on stderr and returns the chosen identifier.
func Run(cat catalog.Catalog, aliases AliasLookup) (string, error) {
	if len(cat) == 0 {
		return "", fmt.Errorf("no models available")
	}

	p := tea.NewProgram(New(cat, aliases), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running picker: %w", err)
	}

	m := final.(Model)
	if m.cancelled || m.chosen == "" {
		return "", ErrCancelled
	}
	return m.chosen, nil
}

// highlight styles the matched characters of s.
func highlight(s string, indices []int) string {
	if len(indices) == 0 {
		return s
	}
	matched := make(map[int]bool, len(indices))
	for _, i := range indices {
		matched[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
