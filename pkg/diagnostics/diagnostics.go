// Package diagnostics reports how well sales variations matched media: the
// match rate, the unmatched keys with the names media offered for the same
// product, and the full media catalog.
//
// Reports are advisory. The populated template never depends on them.
package diagnostics

import (
	"sort"
	"strings"

	"github.com/agentstation/massfill/pkg/keys"
	"github.com/agentstation/massfill/pkg/media"
	"github.com/agentstation/massfill/pkg/reconciler"
)

// CandidateSeparator joins the media candidate names of an unmatched entry.
const CandidateSeparator = " | "

// Entry is one row of the unmatched report.
type Entry struct {
	ProductID          string `json:"product_id" yaml:"product_id"`
	ProductName        string `json:"product_name" yaml:"product_name"`
	VariationNameRaw   string `json:"variation_name_sales_raw" yaml:"variation_name_sales_raw"`
	VariationNameClean string `json:"variation_name_clean" yaml:"variation_name_clean"`
	MediaCandidates    string `json:"media_candidates" yaml:"media_candidates"`
}

// Report is the diagnostics of one run.
type Report struct {
	Matched   int            `json:"matched" yaml:"matched"`
	Total     int            `json:"total" yaml:"total"`
	MatchRate float64        `json:"match_rate" yaml:"match_rate"`
	Unmatched []Entry        `json:"unmatched" yaml:"unmatched"`
	Catalog   []media.Record `json:"-" yaml:"-"`
}

// Build assembles the report of a reconciliation. Each unmatched key yields
// one entry per distinct raw spelling seen in the sales document.
func Build(res *reconciler.Result, rel *media.Relation) *Report {
	r := &Report{
		Matched:   res.Metadata.Stats.Matched,
		Total:     res.Metadata.Stats.Total,
		MatchRate: res.MatchRate(),
		Catalog:   rel.Records(),
	}
	for _, p := range res.Unmatched() {
		candidates := joinNames(rel.Candidates(p.Key.ProductID))
		for _, obs := range p.Observations {
			r.Unmatched = append(r.Unmatched, Entry{
				ProductID:          string(p.Key.ProductID),
				ProductName:        obs.ProductName,
				VariationNameRaw:   obs.VariationName,
				VariationNameClean: string(p.Key.VariationName),
				MediaCandidates:    candidates,
			})
		}
	}
	return r
}

func joinNames(names []keys.Name) string {
	s := make([]string, len(names))
	for i, n := range names {
		s[i] = string(n)
	}
	sort.Strings(s)
	return strings.Join(s, CandidateSeparator)
}

// UnmatchedProducts returns the distinct product ids with at least one
// unmatched variation, sorted.
func (r *Report) UnmatchedProducts() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range r.Unmatched {
		if !seen[e.ProductID] {
			seen[e.ProductID] = true
			out = append(out, e.ProductID)
		}
	}
	sort.Strings(out)
	return out
}
