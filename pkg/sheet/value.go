package sheet

import (
	"math"
	"strconv"
	"strings"
)

type kind uint8

const (
	kindEmpty kind = iota
	kindText
	kindNumber
)

// Value is a single cell value: empty, text, or number.
// The zero Value is empty.
type Value struct {
	kind kind
	text string
	num  float64
}

// Empty is the empty cell.
var Empty = Value{}

// Text returns a text value. An empty string is the empty cell.
func Text(s string) Value {
	if s == "" {
		return Empty
	}
	return Value{kind: kindText, text: s}
}

// Number returns a numeric value. NaN is kept as the not-a-number
// placeholder and written as an empty cell.
func Number(f float64) Value {
	return Value{kind: kindNumber, num: f}
}

// NaN returns the not-a-number placeholder.
func NaN() Value {
	return Number(math.NaN())
}

// IsEmpty reports whether v is the empty cell or the not-a-number placeholder.
func (v Value) IsEmpty() bool {
	return v.kind == kindEmpty || (v.kind == kindNumber && math.IsNaN(v.num))
}

// IsNumber reports whether v holds a number (NaN excluded).
func (v Value) IsNumber() bool {
	return v.kind == kindNumber && !math.IsNaN(v.num)
}

// String returns the text of v. Numbers are formatted without exponent and
// without trailing zeros; empty cells and NaN format as "".
func (v Value) String() string {
	switch {
	case v.IsEmpty():
		return ""
	case v.kind == kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return v.text
	}
}

// Float returns v as a number. Text is parsed after trimming; it reports
// false for empty cells, NaN and non-numeric text.
func (v Value) Float() (float64, bool) {
	switch {
	case v.IsEmpty():
		return 0, false
	case v.kind == kindNumber:
		return v.num, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Equal reports whether two values would produce the same cell.
func (v Value) Equal(o Value) bool {
	if v.IsEmpty() || o.IsEmpty() {
		return v.IsEmpty() && o.IsEmpty()
	}
	if v.kind != o.kind {
		return false
	}
	if v.kind == kindNumber {
		return v.num == o.num
	}
	return v.text == o.text
}

// Cell returns the value to store in a workbook cell: nil for empty cells and
// NaN, float64 for numbers, the text unchanged otherwise.
func (v Value) Cell() any {
	switch {
	case v.IsEmpty():
		return nil
	case v.kind == kindNumber:
		return v.num
	}
	return v.text
}
