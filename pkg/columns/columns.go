// Package columns maps the display labels of an exported sheet to stable
// semantic names and locates the columns the engine reads and writes.
//
// Exported templates carry a positional suffix on every label
// ("ps_price|0|1"). NormalizeLabel strips it; the original labels stay on the
// Index so they can be reattached by position before write-back.
package columns

import (
	"regexp"
	"strings"

	"github.com/agentstation/massfill/pkg/errors"
)

var labelSuffix = regexp.MustCompile(`\|\d+\|\d+$`)

// NormalizeLabel removes a trailing "|<int>|<int>" suffix, then surrounding
// whitespace, from a column label. The suffix must end the raw label, so
// "ps_stock|1|2 " keeps it.
func NormalizeLabel(label string) string {
	return strings.TrimSpace(labelSuffix.ReplaceAllString(label, ""))
}

// Normalize applies NormalizeLabel to every label, keeping order.
func Normalize(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = NormalizeLabel(l)
	}
	return out
}

// Index addresses the columns of one sheet by semantic name.
// When two labels normalize to the same name the leftmost column wins.
type Index struct {
	labels []string
	names  []string
	pos    map[string]int
}

// NewIndex builds an index over labels.
func NewIndex(labels []string) *Index {
	ix := &Index{
		labels: append([]string(nil), labels...),
		names:  Normalize(labels),
		pos:    make(map[string]int, len(labels)),
	}
	for i, n := range ix.names {
		if n == "" {
			continue
		}
		if _, ok := ix.pos[n]; !ok {
			ix.pos[n] = i
		}
	}
	return ix
}

// Len returns the number of columns.
func (ix *Index) Len() int { return len(ix.names) }

// Labels returns a copy of the original display labels.
func (ix *Index) Labels() []string { return append([]string(nil), ix.labels...) }

// Names returns a copy of the semantic names, in column order.
func (ix *Index) Names() []string { return append([]string(nil), ix.names...) }

// Name returns the semantic name of column i.
func (ix *Index) Name(i int) string { return ix.names[i] }

// Label returns the display label of column i.
func (ix *Index) Label(i int) string { return ix.labels[i] }

// Lookup returns the position of the named column.
func (ix *Index) Lookup(name string) (int, bool) {
	i, ok := ix.pos[name]
	return i, ok
}

// Has reports whether the named column exists.
func (ix *Index) Has(name string) bool {
	_, ok := ix.pos[name]
	return ok
}

// Require returns the positions of the named columns, or a
// MalformedSourceError naming the first one that is missing.
func (ix *Index) Require(document, sheet string, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, n := range names {
		p, ok := ix.pos[n]
		if !ok {
			return nil, errors.NewMissingSourceColumn(document, sheet, n)
		}
		out[i] = p
	}
	return out, nil
}
