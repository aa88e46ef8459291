// Package sheet models one spreadsheet sheet as a header row of display
// labels over a grid of cell values, and provides the excelize-backed
// workbook handle used to read documents and to write values back into an
// existing workbook without regenerating it.
//
// Table coordinates are zero-based and exclude the header: row 0 is the
// first row below the labels, column 0 is column A.
package sheet

// Table is an in-memory copy of one sheet.
type Table struct {
	// Name is the sheet name the table was read from
	Name string

	// Labels are the header cells, in column order
	Labels []string

	// Rows are the cells below the header; rows may be shorter than Labels
	Rows [][]Value
}

// NewTable builds a table from a header and text rows.
func NewTable(name string, labels []string, rows ...[]string) *Table {
	t := &Table{Name: name, Labels: append([]string(nil), labels...)}
	for _, r := range rows {
		row := make([]Value, len(r))
		for i, s := range r {
			row[i] = Text(s)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of rows below the header.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Width returns the number of labelled columns.
func (t *Table) Width() int {
	return len(t.Labels)
}

// At returns the cell at (row, col), or Empty outside the stored grid.
func (t *Table) At(row, col int) Value {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return Empty
	}
	return t.Rows[row][col]
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		Name:   t.Name,
		Labels: append([]string(nil), t.Labels...),
		Rows:   make([][]Value, len(t.Rows)),
	}
	for i, r := range t.Rows {
		c.Rows[i] = append([]Value(nil), r...)
	}
	return c
}

// Write is a single cell assignment in table coordinates.
type Write struct {
	Row   int
	Col   int
	Value Value
}

// Apply performs the writes on the table, growing rows as needed.
func (t *Table) Apply(writes []Write) {
	for _, w := range writes {
		for len(t.Rows) <= w.Row {
			t.Rows = append(t.Rows, nil)
		}
		row := t.Rows[w.Row]
		for len(row) <= w.Col {
			row = append(row, Empty)
		}
		if w.Value.IsEmpty() {
			row[w.Col] = Empty
		} else {
			row[w.Col] = w.Value
		}
		t.Rows[w.Row] = row
	}
}
