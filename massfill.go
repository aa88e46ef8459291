// Package massfill populates a marketplace mass-upload template from the
// basic, sales, media and shipment exports of a shop.
//
// A run copies the sales rows into the template's data region, joins each
// row to its variation image and product description on canonical keys,
// and reports the keys that found no image. The template's instruction rows
// are never written, and results reach the workbook as sparse cell writes
// so its formatting and data validations survive.
package massfill

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/massfill/pkg/columns"
	"github.com/agentstation/massfill/pkg/constants"
	"github.com/agentstation/massfill/pkg/diagnostics"
	"github.com/agentstation/massfill/pkg/errors"
	"github.com/agentstation/massfill/pkg/keys"
	"github.com/agentstation/massfill/pkg/logging"
	"github.com/agentstation/massfill/pkg/media"
	"github.com/agentstation/massfill/pkg/reconciler"
	"github.com/agentstation/massfill/pkg/rowspace"
	"github.com/agentstation/massfill/pkg/sheet"
)

// Engine populates templates.
type Engine interface {
	// Run populates docs.Template and returns the writes and diagnostics.
	// Structural problems abort the run; data-quality issues only show up
	// in the result's diagnostics.
	Run(ctx context.Context, docs Documents) (*Result, error)
}

// Documents are the sheets of one run.
type Documents struct {
	Basic    *sheet.Table // optional; without it descriptions are left as they are
	Sales    *sheet.Table
	Media    *sheet.Table
	Shipment *sheet.Table // required when the template has a weight column
	Template *sheet.Table
}

// salesCopy maps sales columns to the template columns they fill, row by row.
var salesCopy = []struct{ from, to string }{
	{constants.ColProductID, constants.TplIntegrationNo},
	{constants.ColVariationID, constants.TplVariationID},
	{constants.ColProductName, constants.TplProductName},
	{constants.ColVariationSKU, constants.TplSKU},
	{constants.ColVariationPrice, constants.TplPrice},
	{constants.ColVariationStock, constants.TplStock},
	{constants.ColVariationName, constants.TplOptionName},
}

// engine is the default implementation of Engine.
type engine struct {
	config *config
}

// New creates an Engine with the given options.
func New(opts ...Option) (Engine, error) {
	c := defaultConfig()
	if err := c.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	return &engine{config: c}, nil
}

// run holds the state of a single Run.
type run struct {
	cfg    *config
	docs   Documents
	logger *zerolog.Logger
	frame  *rowspace.Frame
	region rowspace.Region
	joined *reconciler.Result
	rel    *media.Relation
	result *Result
}

// Run populates the template with clean step-by-step flow.
func (e *engine) Run(ctx context.Context, docs Documents) (*Result, error) {
	started := time.Now()

	// Step 1: Validate documents and locate the destination column
	r, imageCol, err := e.initialize(ctx, docs)
	if err != nil {
		return nil, err
	}

	// Step 2: Pivot media into one image per variation key
	if r.rel, err = media.Pivot(ctx, docs.Media); err != nil {
		return nil, err
	}

	// Step 3: Join sales variations against media and descriptions
	rec, err := reconciler.New(reconciler.WithSourceOffset(e.config.sourceOffset))
	if err != nil {
		return nil, err
	}
	r.joined, err = rec.Reconcile(ctx, reconciler.Input{Sales: docs.Sales, Basic: docs.Basic, Media: r.rel})
	if err != nil {
		return nil, err
	}

	// Step 4: Extend the template to fit the data rows
	r.region = r.frame.Ensure(r.joined.DataRows)

	// Step 5: Copy row-aligned sales and shipment values
	r.copySales()
	if err := r.copyShipment(); err != nil {
		return nil, err
	}
	r.fillConstants()
	r.convertPrices()

	// Step 6: Join template rows to images, descriptions and product media
	r.joinImages(imageCol)
	r.joinDescriptions()
	r.joinProductImages(ctx)

	// Step 7: Compute writes and diagnostics
	return r.finish(started), nil
}

// initialize validates the documents and prepares the frame. The image
// destination is located before any work so a wrong template fails fast.
func (e *engine) initialize(ctx context.Context, docs Documents) (*run, string, error) {
	for _, d := range []struct {
		name  string
		table *sheet.Table
	}{
		{constants.DocSales, docs.Sales},
		{constants.DocMedia, docs.Media},
		{constants.DocTemplate, docs.Template},
	} {
		if d.table == nil {
			return nil, "", errors.NewMalformedSource(d.name, "", "document not provided")
		}
	}

	frame, err := rowspace.NewFrame(docs.Template, e.config.templateOffset)
	if err != nil {
		return nil, "", err
	}
	ix := frame.Index()
	col, err := columns.LocateImageColumn(ix)
	if err != nil {
		return nil, "", err
	}

	salesIx := columns.NewIndex(docs.Sales.Labels)
	for _, m := range salesCopy {
		if !salesIx.Has(m.from) {
			return nil, "", errors.NewMissingSourceColumn(constants.DocSales, docs.Sales.Name, m.from)
		}
	}

	logger := logging.FromContext(ctx)
	logger.Debug().
		Int("template_rows", docs.Template.Len()).
		Int("template_columns", docs.Template.Width()).
		Int("sales_rows", docs.Sales.Len()).
		Str("image_column", ix.Label(col)).
		Msg("Starting run")

	return &run{
		cfg:    e.config,
		docs:   docs,
		logger: logger,
		frame:  frame,
		result: &Result{},
	}, ix.Name(col), nil
}

// copySales copies sales row Ks+i into region row i.
func (r *run) copySales() {
	ix := columns.NewIndex(r.docs.Sales.Labels)
	for _, m := range salesCopy {
		from, _ := ix.Lookup(m.from)
		for i := 0; i < r.region.Len(); i++ {
			r.region.Set(i, m.to, r.docs.Sales.At(r.cfg.sourceOffset+i, from))
		}
	}
}

// copyShipment copies weights when the template has a weight column. The
// shipment document must then cover the same data rows as sales.
func (r *run) copyShipment() error {
	if !r.region.Has(constants.TplWeight) {
		return nil
	}
	ship := r.docs.Shipment
	if ship == nil {
		return errors.NewMalformedSource(constants.DocShipment, "", "document not provided")
	}
	pos, err := columns.NewIndex(ship.Labels).Require(constants.DocShipment, ship.Name, constants.ColProductWeight)
	if err != nil {
		return err
	}
	if rows := max(0, ship.Len()-r.cfg.sourceOffset); rows != r.region.Len() {
		return errors.NewMalformedSource(constants.DocShipment, ship.Name,
			fmt.Sprintf("has %d data rows, sales has %d", rows, r.region.Len()))
	}
	for i := 0; i < r.region.Len(); i++ {
		r.region.Set(i, constants.TplWeight, ship.At(r.cfg.sourceOffset+i, pos[0]))
	}
	return nil
}

// fillConstants writes the configured constant values into columns the
// template has.
func (r *run) fillConstants() {
	names := make([]string, 0, len(r.cfg.fixedValues))
	for name := range r.cfg.fixedValues {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if r.region.Has(name) {
			r.region.Fill(name, sheet.Text(r.cfg.fixedValues[name]))
		}
	}
}

// convertPrices multiplies every data-region price by the factor. Prices
// that do not parse become the not-a-number placeholder.
func (r *run) convertPrices() {
	if !r.cfg.convertPrice || !r.region.Has(constants.TplPrice) {
		return
	}
	factor := r.cfg.priceFactor
	r.region.Map(constants.TplPrice, func(v sheet.Value) sheet.Value {
		f, ok := v.Float()
		if !ok {
			return sheet.NaN()
		}
		return sheet.Number(roundPrice(f * factor))
	})
	r.logger.Debug().Float64("factor", factor).Msg("Converted prices")
}

func roundPrice(f float64) float64 {
	scale := math.Pow10(constants.PriceDecimals)
	return math.Round(f*scale) / scale
}

// joinImages sets the image column of every data row from its own key.
// Rows without a match get an empty cell.
func (r *run) joinImages(imageCol string) {
	for i := 0; i < r.region.Len(); i++ {
		img, ok := r.joined.ImageFor(
			r.region.Get(i, constants.TplIntegrationNo).String(),
			r.region.Get(i, constants.TplOptionName).String(),
		)
		if ok {
			r.region.Set(i, imageCol, sheet.Text(img))
		} else {
			r.region.Set(i, imageCol, sheet.Empty)
		}
	}
}

// joinDescriptions sets the product description of every data row.
func (r *run) joinDescriptions() {
	if r.docs.Basic == nil || !r.region.Has(constants.TplProductDescription) {
		return
	}
	for i := 0; i < r.region.Len(); i++ {
		d, _ := r.joined.DescriptionFor(r.region.Get(i, constants.TplIntegrationNo).String())
		r.region.Set(i, constants.TplProductDescription, sheet.Text(d))
	}
}

// joinProductImages fills cover and gallery columns from the media
// document. Rows of products without images keep their cells.
func (r *run) joinProductImages(ctx context.Context) {
	tpl := columns.TemplateGallery(r.frame.Index())
	if !tpl.Any() {
		return
	}
	images := media.ProductImages(ctx, r.docs.Media)
	if len(images) == 0 {
		return
	}

	ix := r.frame.Index()
	for i := 0; i < r.region.Len(); i++ {
		id, ok := keys.CanonicalID(r.region.Get(i, constants.TplIntegrationNo).String())
		if !ok {
			continue
		}
		im, ok := images[id]
		if !ok {
			continue
		}
		if tpl.Cover >= 0 {
			r.region.Set(i, ix.Name(tpl.Cover), sheet.Text(im.Cover))
		}
		for k, c := range tpl.Images {
			if c >= 0 {
				r.region.Set(i, ix.Name(c), sheet.Text(im.Gallery[k]))
			}
		}
		r.result.ProductImageRows++
	}
}

// finish computes the writes and diagnostics and logs the run summary.
func (r *run) finish(started time.Time) *Result {
	res := r.result
	res.Template = r.frame.Table()
	res.Writes = r.frame.Writes(r.docs.Template)
	res.DataRows = r.region.Len()
	res.Reconciliation = r.joined
	res.Media = r.rel.Stats()
	res.Report = diagnostics.Build(r.joined, r.rel)
	res.Warnings = append(res.Warnings, r.joined.Warnings...)
	res.Duration = time.Since(started)

	r.logger.Info().
		Int("data_rows", res.DataRows).
		Int("writes", len(res.Writes)).
		Int("matched", res.Report.Matched).
		Int("total", res.Report.Total).
		Float64("match_rate", res.Report.MatchRate).
		Dur("duration", res.Duration).
		Msg("Populated template")
	return res
}
