package diagnostics

import (
	"encoding/csv"
	"fmt"
	"io"

	md "github.com/nao1215/markdown"
)

// utf8BOM lets spreadsheet applications detect the encoding of the CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// UnmatchedHeader is the header row of the unmatched report.
var UnmatchedHeader = []string{"product_id", "product_name", "variation_name_sales_raw", "variation_name_clean", "media_candidates"}

// CatalogHeader is the header row of the media catalog.
var CatalogHeader = []string{"product_id", "variation_name", "variation_image"}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteUnmatchedCSV writes the unmatched report as UTF-8 CSV with a BOM.
func (r *Report) WriteUnmatchedCSV(w io.Writer) error {
	rows := make([][]string, len(r.Unmatched))
	for i, e := range r.Unmatched {
		rows[i] = []string{e.ProductID, e.ProductName, e.VariationNameRaw, e.VariationNameClean, e.MediaCandidates}
	}
	return writeCSV(w, UnmatchedHeader, rows)
}

// WriteCatalogCSV writes the media catalog as UTF-8 CSV with a BOM.
func (r *Report) WriteCatalogCSV(w io.Writer) error {
	rows := make([][]string, len(r.Catalog))
	for i, rec := range r.Catalog {
		rows[i] = []string{string(rec.ProductID), string(rec.VariationName), rec.Image}
	}
	return writeCSV(w, CatalogHeader, rows)
}

// maxMarkdownRows bounds the unmatched table of the markdown summary; the
// CSV report stays complete.
const maxMarkdownRows = 50

// WriteMarkdown writes a human-readable summary of the report.
func (r *Report) WriteMarkdown(w io.Writer) error {
	doc := md.NewMarkdown(w)
	doc.H1("Variation image diagnostics").LF()

	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Matched", fmt.Sprint(r.Matched)},
			{"Total", fmt.Sprint(r.Total)},
			{"Match rate", fmt.Sprintf("%.1f%%", r.MatchRate*100)},
			{"Catalog records", fmt.Sprint(len(r.Catalog))},
		},
	}).LF()

	if len(r.Unmatched) == 0 {
		doc.PlainText("Every sales variation resolved to an image.").LF()
		return doc.Build()
	}

	doc.H2("Unmatched variations").LF()
	rows := make([][]string, 0, min(len(r.Unmatched), maxMarkdownRows))
	for _, e := range r.Unmatched {
		if len(rows) == maxMarkdownRows {
			break
		}
		rows = append(rows, []string{e.ProductID, e.ProductName, e.VariationNameClean, e.MediaCandidates})
	}
	doc.Table(md.TableSet{
		Header: []string{"Product ID", "Product name", "Variation", "Media candidates"},
		Rows:   rows,
	}).LF()
	if extra := len(r.Unmatched) - len(rows); extra > 0 {
		doc.PlainText(fmt.Sprintf("%d more rows in the CSV report.", extra)).LF()
	}
	return doc.Build()
}
