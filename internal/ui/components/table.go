// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/morganforge/banktui/internal/ui/styles"
	"github.com/morganforge/banktui/internal/util"
)

// Column describes one table column.
type Column struct {
	Title string
	Width int
}

// Table renders rows of fixed-width cells with a selectable cursor.
// Cell text is truncated display-width-aware, so CJK names and emoji in
// customer records cannot break the layout.
type Table struct {
	theme *styles.Theme

	Columns []Column
	Rows    [][]string

	cursor int
}

// NewTable creates an empty table.
func NewTable(theme *styles.Theme, columns []Column) Table {
	return Table{theme: theme, Columns: columns}
}

// SetRows replaces the rows and clamps the cursor.
func (t *Table) SetRows(rows [][]string) {
	t.Rows = rows
	if t.cursor >= len(rows) {
		t.cursor = len(rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// Cursor returns the selected row index, -1 when empty.
func (t Table) Cursor() int {
	if len(t.Rows) == 0 {
		return -1
	}
	return t.cursor
}

// SelectedRow returns the selected row, nil when empty.
func (t Table) SelectedRow() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[t.cursor]
}

// MoveUp moves the cursor up one row.
func (t *Table) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
}

// MoveDown moves the cursor down one row.
func (t *Table) MoveDown() {
	if t.cursor < len(t.Rows)-1 {
		t.cursor++
	}
}

// renderCells lays out one row's cells at the configured widths.
func (t Table) renderCells(cells []string) string {
	var sb strings.Builder
	for i, col := range t.Columns {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		sb.WriteString(util.PadWidth(util.TruncateWidth(text, col.Width), col.Width))
		if i < len(t.Columns)-1 {
			sb.WriteString("  ")
		}
	}
	return sb.String()
}

// View renders the header plus all rows.
func (t Table) View() string {
	var lines []string

	titles := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		titles[i] = col.Title
	}
	lines = append(lines, t.theme.TableHeader.Render(t.renderCells(titles)))

	for i, row := range t.Rows {
		style := t.theme.TableRow
		if i == t.cursor {
			style = t.theme.TableSelected
		} else if i%2 == 1 {
			style = t.theme.TableRowAlt
		}
		lines = append(lines, style.Render(t.renderCells(row)))
	}

	if len(t.Rows) == 0 {
		lines = append(lines, t.theme.ShortcutDesc.Render("  (no records)"))
	}
	return strings.Join(lines, "\n")
}
