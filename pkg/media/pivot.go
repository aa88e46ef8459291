// Package media reshapes the wide option-slot layout of a media document into
// a long relation of (product id, variation name, image) records, and
// collects per-product cover and gallery images.
package media

import (
	"context"
	"slices"
	"strings"

	"github.com/agentstation/massfill/pkg/columns"
	"github.com/agentstation/massfill/pkg/constants"
	"github.com/agentstation/massfill/pkg/keys"
	"github.com/agentstation/massfill/pkg/logging"
	"github.com/agentstation/massfill/pkg/sheet"
)

// Document is the name media errors and logs refer to.
const Document = constants.DocMedia

// Record is one variation image.
type Record struct {
	ProductID     keys.ID   `json:"product_id" yaml:"product_id"`
	VariationName keys.Name `json:"variation_name" yaml:"variation_name"`
	Image         string    `json:"variation_image" yaml:"variation_image"`
}

// Key returns the record's join key.
func (r Record) Key() keys.Key {
	return keys.Key{ProductID: r.ProductID, VariationName: r.VariationName}
}

func compareRecords(a, b Record) int {
	if c := a.Key().Compare(b.Key()); c != 0 {
		return c
	}
	return strings.Compare(a.Image, b.Image)
}

// Stats counts what happened while pivoting.
type Stats struct {
	Slots      int `json:"slots" yaml:"slots"`
	Extracted  int `json:"extracted" yaml:"extracted"`
	NonNumeric int `json:"non_numeric" yaml:"non_numeric"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
}

// Relation is the deduplicated media relation: at most one record per key,
// sorted by key.
type Relation struct {
	records    []Record
	byKey      map[keys.Key]int
	candidates map[keys.ID][]keys.Name
	stats      Stats
}

// Pivot extracts one record per (row, eligible slot) of the media table,
// keeps those with a product id, a variation name and an image, drops
// non-numeric product ids, and resolves duplicate keys by sorting on
// (product id, variation name, image) and keeping the first.
//
// The result does not depend on the row order of t.
func Pivot(ctx context.Context, t *sheet.Table) (*Relation, error) {
	log := logging.FromContext(logging.WithDocument(ctx, Document))

	ix := columns.NewIndex(t.Labels)
	pos, err := ix.Require(Document, t.Name, constants.ColProductID)
	if err != nil {
		return nil, err
	}
	idCol := pos[0]
	slots := columns.DiscoverSlots(ix)

	var (
		all   []Record
		stats = Stats{Slots: len(slots)}
	)
	for _, slot := range slots {
		for r := range t.Rows {
			key, ok := keys.NewKey(t.At(r, idCol).String(), t.At(r, slot.NameCol).String())
			if !ok {
				continue
			}
			image := strings.TrimSpace(t.At(r, slot.ImageCol).String())
			if image == "" {
				continue
			}
			stats.Extracted++
			if !key.ProductID.IsNumeric() {
				stats.NonNumeric++
				continue
			}
			all = append(all, Record{ProductID: key.ProductID, VariationName: key.VariationName, Image: image})
		}
	}

	rel := newRelation(all)
	rel.stats.Slots = stats.Slots
	rel.stats.Extracted = stats.Extracted
	rel.stats.NonNumeric = stats.NonNumeric

	log.Debug().
		Int("slots", stats.Slots).
		Int("extracted", stats.Extracted).
		Int("non_numeric", stats.NonNumeric).
		Int("duplicates", rel.stats.Duplicates).
		Int("records", rel.Len()).
		Msg("Pivoted media slots")
	return rel, nil
}

// NewRelation builds a relation from records with the duplicate resolution
// of Pivot. Unlike Pivot it does not drop non-numeric product ids; callers
// pass records that are already filtered.
func NewRelation(records []Record) *Relation {
	return newRelation(slices.Clone(records))
}

func newRelation(all []Record) *Relation {
	slices.SortFunc(all, compareRecords)

	rel := &Relation{
		byKey:      make(map[keys.Key]int, len(all)),
		candidates: make(map[keys.ID][]keys.Name),
	}
	for _, rec := range all {
		k := rec.Key()
		if _, dup := rel.byKey[k]; dup {
			rel.stats.Duplicates++
			continue
		}
		rel.byKey[k] = len(rel.records)
		rel.records = append(rel.records, rec)
		// sorted by key, so names arrive sorted and distinct
		rel.candidates[rec.ProductID] = append(rel.candidates[rec.ProductID], rec.VariationName)
	}
	return rel
}

// Len returns the number of records.
func (r *Relation) Len() int { return len(r.records) }

// Records returns a copy of the records in key order.
func (r *Relation) Records() []Record { return slices.Clone(r.records) }

// Image returns the image resolved for key.
func (r *Relation) Image(key keys.Key) (string, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return "", false
	}
	return r.records[i].Image, true
}

// Candidates returns the sorted distinct variation names recorded for a
// product.
func (r *Relation) Candidates(id keys.ID) []keys.Name {
	return slices.Clone(r.candidates[id])
}

// Stats returns the pivot counters.
func (r *Relation) Stats() Stats { return r.stats }
