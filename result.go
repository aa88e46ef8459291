package massfill

import (
	"time"

	"github.com/agentstation/massfill/pkg/diagnostics"
	"github.com/agentstation/massfill/pkg/media"
	"github.com/agentstation/massfill/pkg/reconciler"
	"github.com/agentstation/massfill/pkg/sheet"
)

// Result is the outcome of a run.
type Result struct {
	// Template is the populated template, labels as uploaded
	Template *sheet.Table

	// Writes turn the uploaded template into Template; no write targets a
	// row before the template offset
	Writes []sheet.Write

	// DataRows is the number of populated rows
	DataRows int

	// ProductImageRows counts rows that received cover or gallery images
	ProductImageRows int

	Reconciliation *reconciler.Result
	Media          media.Stats
	Report         *diagnostics.Report
	Warnings       []string
	Duration       time.Duration
}

// MatchRate returns the fraction of sales variation keys that resolved to
// an image.
func (r *Result) MatchRate() float64 {
	return r.Report.MatchRate
}

// Summary is the printable digest of a run.
type Summary struct {
	DataRows          int         `json:"data_rows" yaml:"data_rows"`
	Writes            int         `json:"writes" yaml:"writes"`
	Matched           int         `json:"matched" yaml:"matched"`
	Total             int         `json:"total" yaml:"total"`
	MatchRate         float64     `json:"match_rate" yaml:"match_rate"`
	Unmatched         int         `json:"unmatched" yaml:"unmatched"`
	UnmatchedProducts []string    `json:"unmatched_products,omitempty" yaml:"unmatched_products,omitempty"`
	AbsentKeys        int         `json:"absent_keys" yaml:"absent_keys"`
	ProductImageRows  int         `json:"product_image_rows" yaml:"product_image_rows"`
	Media             media.Stats `json:"media" yaml:"media"`
	MediaRecords      int         `json:"media_records" yaml:"media_records"`
	Warnings          []string    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Outputs           []string    `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// Summary returns the digest of the run.
func (r *Result) Summary() Summary {
	return Summary{
		DataRows:          r.DataRows,
		Writes:            len(r.Writes),
		Matched:           r.Report.Matched,
		Total:             r.Report.Total,
		MatchRate:         r.Report.MatchRate,
		Unmatched:         len(r.Report.Unmatched),
		UnmatchedProducts: r.Report.UnmatchedProducts(),
		AbsentKeys:        r.Reconciliation.Metadata.Stats.AbsentKeys,
		ProductImageRows:  r.ProductImageRows,
		Media:             r.Media,
		MediaRecords:      len(r.Report.Catalog),
		Warnings:          r.Warnings,
	}
}
