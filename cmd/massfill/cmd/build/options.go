package build

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/massfill"
	"github.com/agentstation/massfill/internal/cmd/application"
	"github.com/agentstation/massfill/pkg/errors"
	"github.com/agentstation/massfill/pkg/save"
)

// Flags holds the build command flags.
type Flags struct {
	Paths          massfill.Paths
	TemplateSheet  string
	OutDir         string
	ConvertPrice   bool
	PriceFactor    float64
	SourceOffset   int
	TemplateOffset int
	Markdown       bool
	Summary        string
}

func addBuildFlags(cmd *cobra.Command) *Flags {
	d := application.DefaultSettings()
	f := &Flags{}
	fs := cmd.Flags()
	fs.StringVar(&f.Paths.Basic, "basic", "", "basic info export (xlsx)")
	fs.StringVar(&f.Paths.Sales, "sales", "", "sales info export (xlsx)")
	fs.StringVar(&f.Paths.Media, "media", "", "media info export (xlsx)")
	fs.StringVar(&f.Paths.Shipment, "shipment", "", "shipment info export (xlsx), required when the template has a weight column")
	fs.StringVar(&f.Paths.Template, "template", "", "mass-upload template (xlsx)")
	fs.StringVar(&f.TemplateSheet, "template-sheet", d.Sheets.Template, "template sheet name")
	fs.StringVar(&f.OutDir, "out-dir", d.OutputDir, "output directory")
	fs.BoolVar(&f.ConvertPrice, "convert-price", false, "multiply prices by --price-factor")
	fs.Float64Var(&f.PriceFactor, "price-factor", d.PriceFactor, "price conversion factor")
	fs.IntVar(&f.SourceOffset, "source-offset", d.SourceOffset, "instruction rows below the header of sales and shipment exports")
	fs.IntVar(&f.TemplateOffset, "template-offset", d.TemplateOffset, "instruction rows below the header of the template")
	fs.BoolVar(&f.Markdown, "markdown", false, "also write diagnostics.md")
	fs.StringVar(&f.Summary, "summary", "", "also write the run summary: json or yaml")

	for _, name := range []string{"basic", "sales", "media", "template"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return f
}

// Resolve returns the settings of this build: explicit flags override
// the configured settings.
func (f *Flags) Resolve(cmd *cobra.Command, s application.Settings) Request {
	changed := cmd.Flags().Changed
	if changed("template-sheet") {
		s.Sheets.Template = f.TemplateSheet
	}
	if changed("out-dir") {
		s.OutputDir = f.OutDir
	}
	if changed("convert-price") {
		s.ConvertPrice = f.ConvertPrice
	}
	if changed("price-factor") {
		s.PriceFactor = f.PriceFactor
	}
	if changed("source-offset") {
		s.SourceOffset = f.SourceOffset
	}
	if changed("template-offset") {
		s.TemplateOffset = f.TemplateOffset
	}
	return Request{Paths: f.Paths, Settings: s, Markdown: f.Markdown, Summary: f.Summary}
}

// Request is a fully resolved build.
type Request struct {
	Paths    massfill.Paths
	Settings application.Settings
	Markdown bool
	Summary  string
}

// EngineOptions converts settings to engine options.
func EngineOptions(s application.Settings) []massfill.Option {
	opts := []massfill.Option{
		massfill.WithSourceOffset(s.SourceOffset),
		massfill.WithTemplateOffset(s.TemplateOffset),
		massfill.WithFixedValues(s.FixedValues),
	}
	if s.ConvertPrice {
		opts = append(opts, massfill.WithPriceConversion(s.PriceFactor))
	}
	return opts
}

// SaveOptions converts the output settings of r to save options.
func SaveOptions(r Request) ([]save.Option, error) {
	opts := []save.Option{
		save.WithDir(r.Settings.OutputDir),
		save.WithMarkdown(r.Markdown),
	}
	if r.Summary != "" {
		format, ok := save.ParseFormat(r.Summary)
		if !ok {
			return nil, errors.NewValidationError("summary", r.Summary, "must be json or yaml")
		}
		opts = append(opts, save.WithSummary(format))
	}
	return opts, nil
}
