package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Alignment specifies column text alignment.
type Alignment int

const (
	AlignLeft  Alignment = iota // pad on the right
	AlignRight                  // pad on the left
)

// Column is a table column with a fixed width.
type Column struct {
	Name  string
	Width int
	Align Alignment
}

// Table renders fixed-width rows under a styled header. Cell values may
// already carry ANSI styling.
type Table struct {
	columns []Column
	rows    [][]string
	header  lipgloss.Style
	rule    lipgloss.Style
}

// NewTable returns a table drawing its header with header and the rule
// under it with rule.
func NewTable(header, rule lipgloss.Style, columns ...Column) *Table {
	return &Table{columns: columns, header: header, rule: rule}
}

// AddRow appends a row, padding missing cells.
func (t *Table) AddRow(values ...string) *Table {
	for len(values) < len(t.columns) {
		values = append(values, "")
	}
	t.rows = append(t.rows, values)
	return t
}

// Render returns the formatted table.
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}
	var sb strings.Builder

	width := len(t.columns) - 1
	for i, col := range t.columns {
		width += col.Width
		sb.WriteString(pad(t.header.Render(col.Name), col.Width, col.Align))
		if i < len(t.columns)-1 {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('\n')
	sb.WriteString(t.rule.Render(strings.Repeat("─", width)))
	sb.WriteByte('\n')

	for _, row := range t.rows {
		for i, col := range t.columns {
			sb.WriteString(pad(row[i], col.Width, col.Align))
			if i < len(t.columns)-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// pad pads s to width display cells, ignoring ANSI sequences. Longer
// values are kept whole.
func pad(s string, width int, align Alignment) string {
	n := width - lipgloss.Width(s)
	if n <= 0 {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}
