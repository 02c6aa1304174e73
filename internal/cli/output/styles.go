package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Header  lipgloss.Style
	Key     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles builds styles bound to a lipgloss renderer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Key:     r.NewStyle().Bold(true),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Info:    r.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// FormatHeader renders a header for the given mode.
func FormatHeader(text string, mode Mode) string {
	if mode == ModeMarkdown {
		return "## " + text
	}
	return text
}

// FormatKeyValue renders a key/value line for the given mode.
func FormatKeyValue(key, value string, mode Mode) string {
	if mode == ModeMarkdown {
		return fmt.Sprintf("- **%s:** %s", key, value)
	}
	return fmt.Sprintf("%s: %s", key, value)
}
