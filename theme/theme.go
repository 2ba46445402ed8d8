// Package theme paints printed formulas and sequents for a terminal.
package theme

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/uben0/prove/prop"
)

// Mode tells when escape codes are emitted.
type Mode int

const (
	Auto   Mode = iota // Only when writing to a terminal
	Always             // Even when the output is redirected
	Never
)

var modeNames = [...]string{Auto: "auto", Always: "always", Never: "never"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses "auto", "always" or "never".
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if s == name {
			return Mode(m), nil
		}
	}
	return Auto, fmt.Errorf("invalid color mode %q, expected auto, always or never", s)
}

// A Theme maps span classes to terminal styles.
// It implements render.Painter.
type Theme struct {
	renderer *lipgloss.Renderer
	styles   map[prop.Class]lipgloss.Style
	emphasis lipgloss.Style
}

// New returns the default theme drawing with the given renderer.
func New(r *lipgloss.Renderer) *Theme {
	return &Theme{
		renderer: r,
		styles: map[prop.Class]lipgloss.Style{
			prop.Paren:     r.NewStyle().Faint(true),
			prop.Name:      r.NewStyle().Foreground(lipgloss.Color("39")),
			prop.Operator:  r.NewStyle().Foreground(lipgloss.Color("214")),
			prop.Constant:  r.NewStyle().Foreground(lipgloss.Color("196")),
			prop.Turnstile: r.NewStyle().Bold(true),
			prop.Comma:     r.NewStyle().Bold(true),
		},
		emphasis: r.NewStyle().Bold(true).Underline(true),
	}
}

// For returns the theme for a given output.
func For(w io.Writer, mode Mode) *Theme {
	switch mode {
	case Never:
		return None()
	case Auto:
		if !isTerminal(w) {
			return None()
		}
		return New(lipgloss.NewRenderer(w))
	}
	r := lipgloss.NewRenderer(w)
	if r.ColorProfile() == termenv.Ascii {
		r.SetColorProfile(termenv.ANSI256)
	}
	return New(r)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// None returns a theme that never emits escape codes.
func None() *Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return &Theme{renderer: r}
}

// Colored is true iff t emits escape codes.
func (t *Theme) Colored() bool {
	return t.renderer.ColorProfile() != termenv.Ascii
}

// Renderer returns the lipgloss renderer t draws with, for styling the rest of the screen consistently.
func (t *Theme) Renderer() *lipgloss.Renderer { return t.renderer }

// Paint returns the text with escape codes according to t.
func (t *Theme) Paint(text prop.Text) string {
	if !t.Colored() {
		return text.String()
	}
	var sb strings.Builder
	for _, span := range text {
		st, ok := t.styles[span.Class]
		if !ok {
			st = t.renderer.NewStyle()
		}
		if span.Emphasis {
			st = st.Inherit(t.emphasis)
		}
		sb.WriteString(st.Render(span.Text))
	}
	return sb.String()
}
