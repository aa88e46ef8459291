package rowspace

import "github.com/agentstation/massfill/pkg/sheet"

// Region is the data rows [start, start+n) of a frame. Region row i is frame
// row start+i.
type Region struct {
	frame *Frame
	start int
	n     int
}

// Len returns the number of rows in the region.
func (r Region) Len() int { return r.n }

// Start returns the frame row of region row 0.
func (r Region) Start() int { return r.start }

// Has reports whether the template schema has the named column.
func (r Region) Has(name string) bool { return r.frame.index.Has(name) }

// Get returns the cell of region row i.
func (r Region) Get(i int, name string) sheet.Value {
	if i < 0 || i >= r.n {
		return sheet.Empty
	}
	return r.frame.At(r.start+i, name)
}

// Set assigns the cell of region row i. Unknown columns become scratch
// columns, readable through Get but never written back. Out-of-range rows
// are ignored.
func (r Region) Set(i int, name string, v sheet.Value) {
	if i < 0 || i >= r.n {
		return
	}
	c := r.frame.ensureColumn(name)
	row := r.frame.rows[r.start+i]
	for len(row) <= c {
		row = append(row, sheet.Empty)
	}
	row[c] = v
	r.frame.rows[r.start+i] = row
}

// Fill assigns v to every row of the region.
func (r Region) Fill(name string, v sheet.Value) {
	for i := 0; i < r.n; i++ {
		r.Set(i, name, v)
	}
}

// Map replaces every cell of the named column with fn of its value.
func (r Region) Map(name string, fn func(sheet.Value) sheet.Value) {
	for i := 0; i < r.n; i++ {
		r.Set(i, name, fn(r.Get(i, name)))
	}
}
