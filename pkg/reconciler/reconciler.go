// Package reconciler joins the sales variations of a run against the pivoted
// media relation and the product descriptions of the basic document.
//
// Joins are made on canonical keys only. The media side is unique per key
// after pivoting and descriptions are reduced to one entry per product, so
// a join attaches at most one image and one description to any row.
package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/massfill/pkg/columns"
	"github.com/agentstation/massfill/pkg/constants"
	"github.com/agentstation/massfill/pkg/errors"
	"github.com/agentstation/massfill/pkg/keys"
	"github.com/agentstation/massfill/pkg/logging"
	"github.com/agentstation/massfill/pkg/media"
	"github.com/agentstation/massfill/pkg/sheet"
)

// Reconciler is the main interface for reconciling sales variations.
type Reconciler interface {
	// Reconcile joins the sales variations against media and descriptions.
	Reconcile(ctx context.Context, in Input) (*Result, error)
}

// Input holds the documents a reconciliation reads.
type Input struct {
	// Sales is the sales document; rows before the source offset are instructions
	Sales *sheet.Table

	// Basic provides product descriptions; nil skips the description join
	Basic *sheet.Table

	// Media is the pivoted media relation
	Media *media.Relation
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	sourceOffset int
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{sourceOffset: options.sourceOffset}, nil
}

// reconcileContext holds shared state for reconciliation.
type reconcileContext struct {
	logger    *zerolog.Logger
	startTime time.Time
	result    *Result
}

// Reconcile performs reconciliation with clean step-by-step flow.
func (r *reconciler) Reconcile(ctx context.Context, in Input) (*Result, error) {
	// Step 1: Initialize context and validate
	rctx, err := r.initialize(ctx, in)
	if err != nil {
		return nil, err
	}

	// Step 2: Collect distinct sales keys
	if err := r.variations(rctx, in.Sales); err != nil {
		return nil, err
	}

	// Step 3: Join keys against media
	r.joinImages(rctx, in.Media)

	// Step 4: Collect one description per product
	if err := r.descriptions(rctx, in.Basic); err != nil {
		return nil, err
	}

	// Step 5: Finalize metadata
	return r.finish(rctx), nil
}

// initialize sets up reconciliation context.
func (r *reconciler) initialize(ctx context.Context, in Input) (*reconcileContext, error) {
	if in.Sales == nil {
		return nil, &errors.ValidationError{Field: "sales", Message: "cannot be nil"}
	}
	if in.Media == nil {
		return nil, &errors.ValidationError{Field: "media", Message: "cannot be nil"}
	}
	return &reconcileContext{
		logger:    logging.FromContext(logging.WithStage(ctx, "reconcile")),
		startTime: time.Now(),
		result: &Result{
			images:       make(map[keys.Key]string),
			descriptions: make(map[keys.ID]string),
		},
	}, nil
}

// variations builds the distinct canonical keys of the sales data region,
// keeping the raw spellings each key was seen with.
func (r *reconciler) variations(rctx *reconcileContext, sales *sheet.Table) error {
	ix := columns.NewIndex(sales.Labels)
	pos, err := ix.Require(constants.DocSales, sales.Name, constants.ColProductID, constants.ColVariationName)
	if err != nil {
		return err
	}
	idCol, nameCol := pos[0], pos[1]
	productCol, hasProduct := ix.Lookup(constants.ColProductName)

	res := rctx.result
	if sales.Len() < r.sourceOffset {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%s has %d rows, fewer than its %d instruction rows; no data rows", constants.DocSales, sales.Len(), r.sourceOffset))
		rctx.logger.Warn().
			Int("rows", sales.Len()).
			Int("instruction_rows", r.sourceOffset).
			Msg("Sales document has no data region")
		return nil
	}
	res.DataRows = sales.Len() - r.sourceOffset

	index := make(map[keys.Key]int)
	for row := r.sourceOffset; row < sales.Len(); row++ {
		rawName := sales.At(row, nameCol).String()
		k, ok := keys.NewKey(sales.At(row, idCol).String(), rawName)
		if !ok {
			res.Metadata.Stats.AbsentKeys++
			continue
		}
		obs := Observation{VariationName: rawName}
		if hasProduct {
			obs.ProductName = sales.At(row, productCol).String()
		}

		i, seen := index[k]
		if !seen {
			index[k] = len(res.Pairs)
			res.Pairs = append(res.Pairs, Pair{Key: k, Observations: []Observation{obs}})
			continue
		}
		if !containsObservation(res.Pairs[i].Observations, obs) {
			res.Pairs[i].Observations = append(res.Pairs[i].Observations, obs)
		}
	}

	rctx.logger.Debug().
		Int("data_rows", res.DataRows).
		Int("keys", len(res.Pairs)).
		Int("absent_keys", res.Metadata.Stats.AbsentKeys).
		Msg("Collected sales variations")
	return nil
}

func containsObservation(list []Observation, o Observation) bool {
	for _, x := range list {
		if x == o {
			return true
		}
	}
	return false
}

// joinImages left-joins every pair against the media relation.
func (r *reconciler) joinImages(rctx *reconcileContext, rel *media.Relation) {
	res := rctx.result
	for i := range res.Pairs {
		p := &res.Pairs[i]
		img, ok := rel.Image(p.Key)
		if ok && img != "" {
			p.Image, p.Matched = img, true
			res.images[p.Key] = img
			res.Metadata.Stats.Matched++
		}
	}
	res.Metadata.Stats.Total = len(res.Pairs)
}

// descriptions reduces the basic document to one description per product.
// The first row of a product wins.
func (r *reconciler) descriptions(rctx *reconcileContext, basic *sheet.Table) error {
	if basic == nil {
		return nil
	}
	ix := columns.NewIndex(basic.Labels)
	pos, err := ix.Require(constants.DocBasic, basic.Name, constants.ColProductID, constants.ColProductDescription)
	if err != nil {
		return err
	}
	idCol, descCol := pos[0], pos[1]

	res := rctx.result
	duplicates := 0
	for row := range basic.Rows {
		id, ok := keys.CanonicalID(basic.At(row, idCol).String())
		if !ok {
			continue
		}
		if _, seen := res.descriptions[id]; seen {
			duplicates++
			continue
		}
		res.descriptions[id] = basic.At(row, descCol).String()
	}
	res.Metadata.Stats.Descriptions = len(res.descriptions)

	rctx.logger.Debug().
		Int("products", len(res.descriptions)).
		Int("duplicates", duplicates).
		Msg("Collected product descriptions")
	return nil
}

// finish stamps timing and logs the summary.
func (r *reconciler) finish(rctx *reconcileContext) *Result {
	res := rctx.result
	res.Metadata.StartTime = rctx.startTime
	res.Metadata.EndTime = time.Now()
	res.Metadata.Duration = res.Metadata.EndTime.Sub(rctx.startTime)

	rctx.logger.Debug().
		Int("matched", res.Metadata.Stats.Matched).
		Int("total", res.Metadata.Stats.Total).
		Float64("match_rate", res.MatchRate()).
		Dur("duration", res.Metadata.Duration).
		Msg("Reconciled sales variations")
	return res
}
