package session

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared with the rest of the CLI.
var (
	headerColor   = lipgloss.Color("#F780FF") // Bright pink
	questionColor = lipgloss.Color("#8BE9FD") // Cyan
	answerColor   = lipgloss.Color("#E9E9F4") // Light purple/white
	contextColor  = lipgloss.Color("#6272A4") // Muted purple
	errorColor    = lipgloss.Color("#FF5555") // Red
	successColor  = lipgloss.Color("#50FA7B") // Green
)

// Styles renders each kind of console message.
type Styles struct {
	Header   lipgloss.Style
	Prompt   lipgloss.Style
	Question lipgloss.Style
	Answer   lipgloss.Style
	Progress lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
}

// NewStyles binds the palette to w so that color is only emitted when w is
// a terminal that supports it.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Header:   r.NewStyle().Foreground(headerColor).Bold(true),
		Prompt:   r.NewStyle().Foreground(questionColor).Bold(true),
		Question: r.NewStyle().Foreground(questionColor).Italic(true),
		Answer:   r.NewStyle().Foreground(answerColor),
		Progress: r.NewStyle().Foreground(contextColor).Italic(true),
		Error:    r.NewStyle().Foreground(errorColor).Bold(true),
		Success:  r.NewStyle().Foreground(successColor),
	}
}
