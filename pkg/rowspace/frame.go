// Package rowspace manages the row space of a template while it is being
// populated.
//
// A Frame is a working copy of the template addressed by semantic column
// name. Rows before the instruction offset are read-only. Regions cover the
// data rows [offset, offset+n); the frame grows to fit them and never
// shrinks. Writes computes the sparse cell assignments that turn the
// original sheet into the frame, which is how results reach the workbook.
package rowspace

import (
	"github.com/agentstation/massfill/pkg/columns"
	"github.com/agentstation/massfill/pkg/errors"
	"github.com/agentstation/massfill/pkg/sheet"
)

// Frame is a working copy of a template sheet.
type Frame struct {
	name   string
	index  *columns.Index
	width  int            // schema columns, from the template header
	extra  map[string]int // scratch columns appended after the schema
	rows   [][]sheet.Value
	offset int
}

// NewFrame copies t into a frame whose data region starts at offset.
func NewFrame(t *sheet.Table, offset int) (*Frame, error) {
	if offset < 0 {
		return nil, &errors.ValidationError{Field: "offset", Value: offset, Message: "cannot be negative"}
	}
	f := &Frame{
		name:   t.Name,
		index:  columns.NewIndex(t.Labels),
		width:  t.Width(),
		extra:  make(map[string]int),
		rows:   make([][]sheet.Value, t.Len()),
		offset: offset,
	}
	for r := range t.Rows {
		f.rows[r] = make([]sheet.Value, f.width)
		for c := 0; c < f.width; c++ {
			f.rows[r][c] = t.At(r, c)
		}
	}
	return f, nil
}

// Index returns the column index of the template schema.
func (f *Frame) Index() *columns.Index { return f.index }

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// Offset returns the first data row.
func (f *Frame) Offset() int { return f.offset }

// At returns the cell at (row, name), or Empty when the column is unknown.
func (f *Frame) At(row int, name string) sheet.Value {
	c, ok := f.column(name)
	if !ok || row < 0 || row >= len(f.rows) || c >= len(f.rows[row]) {
		return sheet.Empty
	}
	return f.rows[row][c]
}

// column resolves a schema or scratch column.
func (f *Frame) column(name string) (int, bool) {
	if c, ok := f.index.Lookup(name); ok {
		return c, true
	}
	c, ok := f.extra[name]
	return c, ok
}

// ensureColumn resolves name, appending a scratch column when unknown.
func (f *Frame) ensureColumn(name string) int {
	if c, ok := f.column(name); ok {
		return c
	}
	c := f.width + len(f.extra)
	f.extra[name] = c
	return c
}

// Ensure grows the frame to at least offset+n rows and returns the region
// of the n data rows.
func (f *Frame) Ensure(n int) Region {
	if n < 0 {
		n = 0
	}
	for len(f.rows) < f.offset+n {
		f.rows = append(f.rows, make([]sheet.Value, f.width))
	}
	return Region{frame: f, start: f.offset, n: n}
}

// Table returns the frame reindexed to the template schema, scratch
// columns dropped and the original display labels reattached by position.
func (f *Frame) Table() *sheet.Table {
	t := &sheet.Table{Name: f.name, Labels: f.index.Labels(), Rows: make([][]sheet.Value, len(f.rows))}
	for r, row := range f.rows {
		out := make([]sheet.Value, f.width)
		copy(out, row)
		for c, v := range out {
			if v.IsEmpty() {
				out[c] = sheet.Empty
			}
		}
		t.Rows[r] = out
	}
	return t
}

// Writes returns the cell assignments that turn orig into the frame,
// restricted to schema columns and to rows at or after the offset.
// Not-a-number values are written as empty cells.
func (f *Frame) Writes(orig *sheet.Table) []sheet.Write {
	var writes []sheet.Write
	for r := f.offset; r < len(f.rows); r++ {
		for c := 0; c < f.width; c++ {
			v := sheet.Empty
			if c < len(f.rows[r]) {
				v = f.rows[r][c]
			}
			if v.Equal(orig.At(r, c)) {
				continue
			}
			if v.IsEmpty() {
				v = sheet.Empty
			}
			writes = append(writes, sheet.Write{Row: r, Col: c, Value: v})
		}
	}
	return writes
}
