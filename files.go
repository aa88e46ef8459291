package massfill

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/massfill/pkg/constants"
	"github.com/agentstation/massfill/pkg/errors"
	"github.com/agentstation/massfill/pkg/logging"
	"github.com/agentstation/massfill/pkg/save"
	"github.com/agentstation/massfill/pkg/sheet"
)

// Paths locates the xlsx files of a run. Shipment may be empty when the
// template has no weight column.
type Paths struct {
	Basic    string
	Sales    string
	Media    string
	Shipment string
	Template string
}

// Sheets names the sheet read from each file. Empty names fall back to
// DefaultSheets.
type Sheets struct {
	Basic    string
	Sales    string
	Media    string
	Shipment string
	Template string
}

// DefaultSheets returns the sheet names of the stock exports and template.
func DefaultSheets() Sheets {
	return Sheets{
		Basic:    constants.DefaultSourceSheet,
		Sales:    constants.DefaultSourceSheet,
		Media:    constants.DefaultSourceSheet,
		Shipment: constants.DefaultSourceSheet,
		Template: constants.DefaultTemplateSheet,
	}
}

func (s Sheets) withDefaults() Sheets {
	d := DefaultSheets()
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Sheets{
		Basic:    pick(s.Basic, d.Basic),
		Sales:    pick(s.Sales, d.Sales),
		Media:    pick(s.Media, d.Media),
		Shipment: pick(s.Shipment, d.Shipment),
		Template: pick(s.Template, d.Template),
	}
}

// Workspace holds the loaded documents and the open template workbook that
// results are written back into.
type Workspace struct {
	Documents

	template      *sheet.Workbook
	templateSheet string
}

// Load reads the source sheets and opens the template. Missing files are
// I/O errors; missing sheets are malformed sources.
func Load(ctx context.Context, paths Paths, sheets Sheets) (*Workspace, error) {
	sheets = sheets.withDefaults()
	logger := logging.FromContext(ctx)

	ws := &Workspace{templateSheet: sheets.Template}
	var err error
	for _, src := range []struct {
		doc, path, sheet string
		dst              **sheet.Table
		optional         bool
	}{
		{constants.DocBasic, paths.Basic, sheets.Basic, &ws.Basic, false},
		{constants.DocSales, paths.Sales, sheets.Sales, &ws.Sales, false},
		{constants.DocMedia, paths.Media, sheets.Media, &ws.Media, false},
		{constants.DocShipment, paths.Shipment, sheets.Shipment, &ws.Shipment, true},
	} {
		if src.path == "" {
			if src.optional {
				continue
			}
			return nil, errors.NewMalformedSource(src.doc, "", "no file given")
		}
		if *src.dst, err = readSheet(src.doc, src.path, src.sheet); err != nil {
			return nil, err
		}
		logger.Debug().
			Str("document", src.doc).
			Str("path", src.path).
			Int("rows", (*src.dst).Len()).
			Msg("Loaded document")
	}

	if paths.Template == "" {
		return nil, errors.NewMalformedSource(constants.DocTemplate, "", "no file given")
	}
	wb, err := sheet.Open(paths.Template)
	if err != nil {
		return nil, err
	}
	if ws.Template, err = tableOf(wb, constants.DocTemplate, sheets.Template); err != nil {
		_ = wb.Close()
		return nil, err
	}
	ws.template = wb
	return ws, nil
}

func readSheet(doc, path, name string) (*sheet.Table, error) {
	wb, err := sheet.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()
	return tableOf(wb, doc, name)
}

func tableOf(wb *sheet.Workbook, doc, name string) (*sheet.Table, error) {
	t, err := wb.Table(name)
	if stderrors.Is(err, sheet.ErrSheetNotFound) {
		return nil, errors.NewMalformedSource(doc, name, "sheet not found")
	}
	return t, err
}

// Close releases the template workbook.
func (w *Workspace) Close() error {
	if w.template == nil {
		return nil
	}
	return w.template.Close()
}

// Save writes the populated template and the reports of res into the
// output directory and returns the written paths. The template is the
// uploaded workbook with res.Writes applied in place.
func (w *Workspace) Save(ctx context.Context, res *Result, opts ...save.Option) ([]string, error) {
	if w.template == nil {
		return nil, &errors.ValidationError{Field: "template", Message: "workspace has no open template"}
	}
	o := save.Defaults().Apply(opts...)
	dir := o.Dir()
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}

	var written []string
	done := func(path string) {
		written = append(written, path)
		if o.Progress() != nil {
			_, _ = fmt.Fprintf(o.Progress(), "wrote %s\n", path)
		}
	}

	if err := w.template.Apply(w.templateSheet, res.Writes); err != nil {
		return nil, err
	}
	xlsx := filepath.Join(dir, constants.OutputWorkbook)
	if err := w.template.SaveAs(xlsx); err != nil {
		return nil, err
	}
	done(xlsx)

	files := []struct {
		name  string
		write func(io.Writer) error
		skip  bool
	}{
		{constants.UnmatchedReport, res.Report.WriteUnmatchedCSV, false},
		{constants.MediaCatalogReport, res.Report.WriteCatalogCSV, false},
		{constants.MarkdownReport, res.Report.WriteMarkdown, !o.Markdown()},
	}
	for _, f := range files {
		if f.skip {
			continue
		}
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return nil, err
		}
		done(path)
	}

	if format := o.Summary(); format != save.FormatNone {
		path := filepath.Join(dir, save.SummaryFile(format))
		summary := res.Summary()
		summary.Outputs = append([]string(nil), written...)
		if err := writeFile(path, func(out io.Writer) error { return encodeSummary(out, format, summary) }); err != nil {
			return nil, err
		}
		done(path)
	}

	logging.FromContext(ctx).Info().
		Str("dir", dir).
		Int("files", len(written)).
		Msg("Saved outputs")
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func encodeSummary(w io.Writer, format save.Format, s Summary) error {
	switch format {
	case save.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case save.FormatYAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unsupported summary format %s", format)
}
