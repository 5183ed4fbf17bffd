// Package table renders rows of resources (agents, conversations, messages)
// as a terminal table using lipgloss.
package table

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TableData is implemented by anything which can be rendered as a table
type TableData interface {
	// Header returns the column header labels.
	Header() []string

	// Len returns the number of rows.
	Len() int

	// Row returns the cell values for row i, or nil to skip the row.
	Row(i int) []any
}

// Bold marks a cell to be highlighted, for example the current conversation
type Bold struct{ Value any }

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	timeFormat = "2006-01-02 15:04"
	empty      = "-"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle   = lipgloss.NewStyle()
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render returns the table as a string. When stdout is a terminal narrower
// than the table, columns are wrapped to fit.
func Render(data TableData) string {
	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	return RenderWidth(data, width)
}

// RenderWidth returns the table as a string, constrained to width columns
// if width is greater than zero
func RenderWidth(data TableData, width int) string {
	t := lgtable.New().
		Headers(data.Header()...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i := range data.Len() {
		if row := data.Row(i); row != nil {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = FormatCell(v)
			}
			t.Row(cells...)
		}
	}

	result := t.Render()
	if width > 0 && widest(result) > width {
		result = t.Width(width).Render()
	}
	return result
}

// Write renders the table followed by a summary line
func Write(w io.Writer, data TableData, noun string) error {
	if data.Len() > 0 {
		if _, err := fmt.Fprintln(w, Render(data)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, Summary(data.Len(), noun))
	return err
}

// Summary returns a line such as "3 agents" or "1 agent"
func Summary(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

///////////////////////////////////////////////////////////////////////////////
// CELLS

// Truncate shortens s to max runes, collapsing newlines and appending "…"
// if truncated
func Truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// FormatCell converts a value to a display string for a table cell
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return empty
	case Bold:
		return boldStyle.Render(FormatCell(val.Value))
	case string:
		if val == "" {
			return empty
		}
		return val
	case *string:
		if val == nil {
			return empty
		}
		return FormatCell(*val)
	case time.Time:
		if val.IsZero() {
			return empty
		}
		return val.Local().Format(timeFormat)
	case *time.Time:
		if val == nil {
			return empty
		}
		return FormatCell(*val)
	case int:
		if val == 0 {
			return empty
		}
		return fmt.Sprint(val)
	case []string:
		if len(val) == 0 {
			return empty
		}
		return strings.Join(val, ", ")
	default:
		if s := fmt.Sprint(val); s != "" {
			return s
		}
		return empty
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// widest returns the width in runes of the longest line
func widest(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		n = max(n, lipgloss.Width(line))
	}
	return n
}
