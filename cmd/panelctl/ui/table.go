package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"panelctl/internal/schema"
)

// Table renders a list of value maps through column descriptors. Cell order
// follows the column order, not the map; missing keys render empty. An
// optional cursor highlights the selected row.
type Table struct {
	Title   string
	Columns []schema.Column
	Rows    []schema.Values

	// Cursor is the selected row index, or -1 for no selection.
	Cursor int
}

// NewTable creates a table over the given columns with no selection.
func NewTable(title string, columns []schema.Column) *Table {
	return &Table{Title: title, Columns: columns, Cursor: -1}
}

// SetRows replaces the table contents and clamps the cursor.
func (t *Table) SetRows(rows []schema.Values) {
	t.Rows = rows
	if t.Cursor >= len(rows) {
		t.Cursor = len(rows) - 1
	}
}

// MoveCursor shifts the selection by delta, clamped to the row range.
func (t *Table) MoveCursor(delta int) {
	if len(t.Rows) == 0 {
		t.Cursor = -1
		return
	}
	t.Cursor += delta
	if t.Cursor < 0 {
		t.Cursor = 0
	}
	if t.Cursor >= len(t.Rows) {
		t.Cursor = len(t.Rows) - 1
	}
}

// SelectedRow returns the row under the cursor, or nil.
func (t *Table) SelectedRow() schema.Values {
	if t.Cursor < 0 || t.Cursor >= len(t.Rows) {
		return nil
	}
	return t.Rows[t.Cursor]
}

// CellsFor projects one row through the column accessors.
func (t *Table) CellsFor(row schema.Values) []string {
	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cells[i] = schema.DisplayString(row[col.Accessor])
	}
	return cells
}

// View renders the table using the provided styles.
func (t *Table) View(styles Styles) string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	if len(t.Rows) == 0 {
		sb.WriteString(styles.Muted.Render("(no records)"))
		sb.WriteString("\n")
		return sb.String()
	}

	// Column widths: max of header and every cell.
	colWidths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		colWidths[i] = lipgloss.Width(col.Header)
	}
	cells := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = t.CellsFor(row)
		for i, cell := range cells[r] {
			if w := lipgloss.Width(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}
	// Padding is part of the rendered width.
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	selectedStyle := styles.Selected.Padding(0, 1)
	sepStyle := styles.Muted

	for i, col := range t.Columns {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(col.Header))
		if i < len(t.Columns)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Columns) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for r, rowCells := range cells {
		style := rowStyle
		if r == t.Cursor {
			style = selectedStyle
		}
		for i, cell := range rowCells {
			sb.WriteString(style.Width(colWidths[i]).Render(cell))
			if i < len(rowCells)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
