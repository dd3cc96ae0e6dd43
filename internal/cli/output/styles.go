package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles for text output. Without color every
// style renders its input unchanged.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

// NewStyles creates styles bound to w.
func NewStyles(w io.Writer, color bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	if color {
		lr.SetColorProfile(termenv.ANSI)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Error:   lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("3")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("2")),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    lr.NewStyle().Bold(true),
	}
}

// colorEnabled reports whether a terminal writer should get colors, honoring
// NO_COLOR and CLICOLOR=0.
func colorEnabled(w io.Writer, isTTY bool) bool {
	return isTTY && !termenv.NewOutput(w).EnvNoColor()
}
