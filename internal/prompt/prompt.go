package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/truefrontier/openrouter-launch/internal/ui"
)

// ErrAborted is returned when the user presses Ctrl+C or Esc.
var ErrAborted = errors.New("prompt aborted")

// passwordModel reads a secret without echoing it.
type passwordModel struct {
	label   string
	input   textinput.Model
	done    bool
	aborted bool
}

func newPassword(label string) passwordModel {
	in := textinput.New()
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.Prompt = ""
	in.Focus()
	return passwordModel{label: label, input: in}
}

func (m passwordModel) Init() tea.Cmd { return textinput.Blink }

func (m passwordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m passwordModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return ui.Highlight.Render("? ") + ui.Bold.Render(m.label) + " " + m.input.View() + "\n"
}

// confirmModel asks a yes/no question.
type confirmModel struct {
	label    string
	answer   bool
	answered bool
	aborted  bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(k.String()) {
	case "y":
		m.answer, m.answered = true, true
		return m, tea.Quit
	case "n":
		m.answer, m.answered = false, true
		return m, tea.Quit
	case "enter":
		m.answered = true
		return m, tea.Quit
	case "esc", "ctrl+c":
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	hint := "(y/N)"
	if m.answer {
		hint = "(Y/n)"
	}
	if m.answered {
		choice := "no"
		if m.answer {
			choice = "yes"
		}
		return ui.Highlight.Render("? ") + ui.Bold.Render(m.label) + " " + ui.Dim.Render(choice) + "\n"
	}
	return ui.Highlight.Render("? ") + ui.Bold.Render(m.label) + " " + ui.Dim.Render(hint) + " "
}

// Password asks for a secret on stderr.
func Password(label string) (string, error) {
	final, err := tea.NewProgram(newPassword(label), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	m := final.(passwordModel)
	if m.aborted {
		return "", ErrAborted
	}
	return strings.TrimSpace(m.input.Value()), nil
}

// Confirm asks a yes/no question; Enter picks def.
func Confirm(label string, def bool) (bool, error) {
	final, err := tea.NewProgram(confirmModel{label: label, answer: def}, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return false, fmt.Errorf("reading input: %w", err)
	}
	m := final.(confirmModel)
	if m.aborted {
		return false, ErrAborted
	}
	return m.answer, nil
}
