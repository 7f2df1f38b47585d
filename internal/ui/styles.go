// Package ui styles diagnostics printed by the command line.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the renderers for command output.
type Styles struct {
	Error lipgloss.Style
	Info  lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when color is false.
func NewStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()

		return &Styles{Error: plain, Info: plain}
	}

	return &Styles{
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Info:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// ColorEnabled resolves a color mode of "auto", "always" or "never" for w.
// In auto mode color is used only on a terminal and when NO_COLOR is unset.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Errorf prints a styled error line.
func (s *Styles) Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, s.Error.Render("error:"), fmt.Sprintf(format, args...))
}

// Infof prints a styled informational line.
func (s *Styles) Infof(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, s.Info.Render(fmt.Sprintf(format, args...)))
}
