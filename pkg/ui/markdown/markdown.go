// Package markdown renders bot replies for the terminal, either as styled
// markdown or as plain text wrapped to the terminal width.
package markdown

import (
	"os"
	"strings"

	// Packages
	glamour "github.com/charmbracelet/glamour"
	wordwrap "github.com/muesli/reflow/wordwrap"
	termenv "github.com/muesli/termenv"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Renderer renders markdown to a fixed width
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	StyleDark    = "dark"
	StyleLight   = "light"
	StyleNoTTY   = "notty"
	defaultWidth = 80
	maxWidth     = 120
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a renderer with the given glamour style. A width of zero uses
// the terminal width.
func New(style string, width int) (*Renderer, error) {
	if width <= 0 {
		width = Width()
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Style returns the glamour style which suits the terminal on stdout
func Style() string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return StyleNoTTY
	} else if !termenv.HasDarkBackground() {
		return StyleLight
	}
	return StyleDark
}

// Width returns the width of the terminal on stdout, capped for
// readability, or a default when stdout is not a terminal
func Width() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return min(w, maxWidth)
	}
	return defaultWidth
}

// Render returns the markdown rendered for the terminal
func (r *Renderer) Render(text string) (string, error) {
	out, err := r.renderer.Render(text)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// Wrap returns plain text word-wrapped to the renderer width
func (r *Renderer) Wrap(text string) string {
	return Wrap(text, r.width)
}

// Wrap returns plain text word-wrapped to width columns
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}
