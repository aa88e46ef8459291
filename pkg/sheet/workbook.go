package sheet

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/massfill/pkg/errors"
)

// ErrSheetNotFound is returned when a workbook has no sheet of the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is an open xlsx document. Writes go through the original
// document so styles, data validations and merged cells anchored to the
// written positions are left as they were.
type Workbook struct {
	path string
	file *excelize.File
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	return &Workbook{path: path, file: f}, nil
}

// Path returns the file the workbook was opened from, if any.
func (w *Workbook) Path() string {
	return w.path
}

// Sheets returns the sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

// HasSheet reports whether the workbook contains the named sheet.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Table reads the named sheet. The first row becomes the labels.
func (w *Workbook) Table(name string) (*Table, error) {
	if !w.HasSheet(name) {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}

	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WrapIO("read", w.path, err)
	}

	t := &Table{Name: name}
	if len(rows) == 0 {
		return t, nil
	}
	t.Labels = append([]string(nil), rows[0]...)
	t.Rows = make([][]Value, 0, len(rows)-1)
	for j, r := range rows[1:] {
		row := make([]Value, len(r))
		for i, s := range r {
			if s == "" {
				continue
			}
			if row[i], err = w.value(name, i, j+1, s); err != nil {
				return nil, err
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// value types a raw cell by its stored type. Only numeric cells become
// numbers; shared, inline and formula strings stay text as written.
func (w *Workbook) value(name string, col, row int, raw string) (Value, error) {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return Empty, fmt.Errorf("cell (%d,%d): %w", row, col, err)
	}
	typ, err := w.file.GetCellType(name, cell)
	if err != nil {
		return Empty, errors.WrapIO("read", w.path, err)
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(f), nil
		}
	}
	return Text(raw), nil
}

// Apply stores each write's value into the named sheet. Empty values and
// the not-a-number placeholder clear the cell.
func (w *Workbook) Apply(name string, writes []Write) error {
	if !w.HasSheet(name) {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}
	for _, wr := range writes {
		cell, err := excelize.CoordinatesToCellName(wr.Col+1, wr.Row+2)
		if err != nil {
			return fmt.Errorf("cell (%d,%d): %w", wr.Row, wr.Col, err)
		}
		if err := w.file.SetCellValue(name, cell, wr.Value.Cell()); err != nil {
			return fmt.Errorf("set %s!%s: %w", name, cell, err)
		}
	}
	return nil
}

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return errors.WrapIO("save", path, err)
	}
	return nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// NewWorkbook creates a workbook holding one sheet per table, labels in
// row 1. The default sheet is renamed to the first table's name.
func NewWorkbook(tables ...*Table) (*Workbook, error) {
	f := excelize.NewFile()
	for i, t := range tables {
		if i == 0 {
			if first := f.GetSheetName(0); first != t.Name {
				if err := f.SetSheetName(first, t.Name); err != nil {
					return nil, err
				}
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return nil, err
		}
		if len(t.Labels) > 0 {
			labels := make([]any, len(t.Labels))
			for j, l := range t.Labels {
				labels[j] = l
			}
			if err := f.SetSheetRow(t.Name, "A1", &labels); err != nil {
				return nil, err
			}
		}
		wb := &Workbook{file: f}
		var writes []Write
		for r, row := range t.Rows {
			for c, v := range row {
				if !v.IsEmpty() {
					writes = append(writes, Write{Row: r, Col: c, Value: v})
				}
			}
		}
		if err := wb.Apply(t.Name, writes); err != nil {
			return nil, err
		}
	}
	return &Workbook{file: f}, nil
}
