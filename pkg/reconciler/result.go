package reconciler

import (
	"time"

	"github.com/agentstation/massfill/pkg/keys"
)

// Observation is one raw spelling of a variation seen in the sales document.
type Observation struct {
	ProductName   string `json:"product_name" yaml:"product_name"`
	VariationName string `json:"variation_name_sales_raw" yaml:"variation_name_sales_raw"`
}

// Pair is one distinct sales variation key joined against the media relation.
type Pair struct {
	Key          keys.Key
	Image        string
	Matched      bool
	Observations []Observation
}

// Result represents the outcome of a reconciliation.
type Result struct {
	// Pairs are the distinct sales keys in first-seen order
	Pairs []Pair

	// DataRows is the number of sales rows in the data region
	DataRows int

	// Metadata
	Metadata ResultMetadata

	// Warnings are data-quality notes; they never abort a run
	Warnings []string

	images       map[keys.Key]string
	descriptions map[keys.ID]string
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Stats     ResultStatistics
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	// AbsentKeys counts data rows whose id or variation name is blank
	AbsentKeys int

	// Matched counts pairs that resolved to an image
	Matched int

	// Total counts distinct pairs
	Total int

	// Descriptions counts products with a description entry
	Descriptions int
}

// MatchRate returns matched / total, or 0 when there are no pairs.
func (r *Result) MatchRate() float64 {
	if r.Metadata.Stats.Total == 0 {
		return 0
	}
	return float64(r.Metadata.Stats.Matched) / float64(r.Metadata.Stats.Total)
}

// Unmatched returns the pairs without an image, in first-seen order.
func (r *Result) Unmatched() []Pair {
	var out []Pair
	for _, p := range r.Pairs {
		if !p.Matched {
			out = append(out, p)
		}
	}
	return out
}

// Image returns the image joined to a sales key. Keys that are not part of
// the sales variations never resolve.
func (r *Result) Image(k keys.Key) (string, bool) {
	img, ok := r.images[k]
	return img, ok
}

// ImageFor canonicalizes a raw template id and variation name and returns
// the joined image.
func (r *Result) ImageFor(rawID, rawName string) (string, bool) {
	k, ok := keys.NewKey(rawID, rawName)
	if !ok {
		return "", false
	}
	return r.Image(k)
}

// Description returns the description of a product.
func (r *Result) Description(id keys.ID) (string, bool) {
	d, ok := r.descriptions[id]
	return d, ok
}

// DescriptionFor canonicalizes a raw template id and returns its description.
func (r *Result) DescriptionFor(rawID string) (string, bool) {
	id, ok := keys.CanonicalID(rawID)
	if !ok {
		return "", false
	}
	return r.Description(id)
}

// HasWarnings returns true if there are warnings.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
