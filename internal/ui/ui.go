package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#06B6D4") // Cyan
	Success   = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Info      = lipgloss.Color("#3B82F6") // Blue

	TextMuted = lipgloss.AdaptiveColor{Light: "#737373", Dark: "#737373"}
)

// Styles
var (
	InfoTag    = lipgloss.NewStyle().Foreground(Info).Bold(true)
	ErrorTag   = lipgloss.NewStyle().Foreground(Error).Bold(true)
	WarnTag    = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	SuccessTag = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Dim        = lipgloss.NewStyle().Foreground(TextMuted)
	Bold       = lipgloss.NewStyle().Bold(true)
	Highlight  = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	Title      = lipgloss.NewStyle().Foreground(Primary).Bold(true)
)

// Out receives all user-facing messages. Stdout is left to the launched
// tool and to machine-readable command output.
var Out io.Writer = os.Stderr

func Infof(format string, args ...any) {
	fmt.Fprintln(Out, InfoTag.Render("[INFO]"), fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	fmt.Fprintln(Out, ErrorTag.Render("[ERROR]"), fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	fmt.Fprintln(Out, WarnTag.Render("[WARN]"), fmt.Sprintf(format, args...))
}

func Successf(format string, args ...any) {
	fmt.Fprintln(Out, SuccessTag.Render("✓"), fmt.Sprintf(format, args...))
}

// Println writes a plain line.
func Println(a ...any) {
	fmt.Fprintln(Out, a...)
}
