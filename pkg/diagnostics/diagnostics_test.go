package diagnostics_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/massfill/pkg/diagnostics"
	"github.com/agentstation/massfill/pkg/media"
	"github.com/agentstation/massfill/pkg/reconciler"
	"github.com/agentstation/massfill/pkg/sheet"
)

func build(t *testing.T) (*diagnostics.Report, *media.Relation) {
	t.Helper()
	rel := media.NewRelation([]media.Record{
		{ProductID: "100", VariationName: "Red", Image: "https://img/red.jpg"},
		{ProductID: "100", VariationName: "Blue", Image: "https://img/blue.jpg"},
		{ProductID: "200", VariationName: "Black", Image: "https://img/black.jpg"},
	})
	sales := sheet.NewTable("Sheet1",
		[]string{"et_title_product_id", "et_title_product_name", "et_title_variation_name"},
		[]string{"100", "Shirt", "Red"},
		[]string{"100", "Shirt", "Green "},
		[]string{"100", "Shirt v2", "Green"},
		[]string{"300", "Sock", "White"},
	)
	r, err := reconciler.New(reconciler.WithSourceOffset(0))
	require.NoError(t, err)
	res, err := r.Reconcile(context.Background(), reconciler.Input{Sales: sales, Media: rel})
	require.NoError(t, err)
	return diagnostics.Build(res, rel), rel
}

func TestBuild(t *testing.T) {
	rep, _ := build(t)

	assert.Equal(t, 1, rep.Matched)
	assert.Equal(t, 3, rep.Total)
	assert.InDelta(t, 1.0/3.0, rep.MatchRate, 1e-9)
	assert.Len(t, rep.Catalog, 3)

	assert.Equal(t, []diagnostics.Entry{
		{ProductID: "100", ProductName: "Shirt", VariationNameRaw: "Green ", VariationNameClean: "Green", MediaCandidates: "Blue | Red"},
		{ProductID: "100", ProductName: "Shirt v2", VariationNameRaw: "Green", VariationNameClean: "Green", MediaCandidates: "Blue | Red"},
		{ProductID: "300", ProductName: "Sock", VariationNameRaw: "White", VariationNameClean: "White", MediaCandidates: ""},
	}, rep.Unmatched)
	assert.Equal(t, []string{"100", "300"}, rep.UnmatchedProducts())
}

func readCSV(t *testing.T, raw []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "missing BOM")
	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteUnmatchedCSV(t *testing.T) {
	rep, _ := build(t)
	var buf bytes.Buffer
	require.NoError(t, rep.WriteUnmatchedCSV(&buf))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 4)
	assert.Equal(t, diagnostics.UnmatchedHeader, records[0])
	assert.Equal(t, []string{"100", "Shirt", "Green ", "Green", "Blue | Red"}, records[1])
}

func TestWriteCatalogCSV(t *testing.T) {
	rep, _ := build(t)
	var buf bytes.Buffer
	require.NoError(t, rep.WriteCatalogCSV(&buf))

	records := readCSV(t, buf.Bytes())
	assert.Equal(t, [][]string{
		diagnostics.CatalogHeader,
		{"100", "Blue", "https://img/blue.jpg"},
		{"100", "Red", "https://img/red.jpg"},
		{"200", "Black", "https://img/black.jpg"},
	}, records)
}

func TestWriteCSVEmpty(t *testing.T) {
	rep := &diagnostics.Report{}
	var buf bytes.Buffer
	require.NoError(t, rep.WriteUnmatchedCSV(&buf))
	assert.Equal(t, [][]string{diagnostics.UnmatchedHeader}, readCSV(t, buf.Bytes()))
}

func TestWriteMarkdown(t *testing.T) {
	rep, _ := build(t)
	var buf bytes.Buffer
	require.NoError(t, rep.WriteMarkdown(&buf))

	out := buf.String()
	assert.Contains(t, out, "# Variation image diagnostics")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, "## Unmatched variations")
	assert.Contains(t, out, "Blue | Red")
}

func TestWriteMarkdownAllMatched(t *testing.T) {
	rep := &diagnostics.Report{Matched: 2, Total: 2, MatchRate: 1}
	var buf bytes.Buffer
	require.NoError(t, rep.WriteMarkdown(&buf))
	assert.Contains(t, buf.String(), "100.0%")
	assert.Contains(t, buf.String(), "Every sales variation resolved to an image.")
	assert.NotContains(t, buf.String(), "Unmatched variations")
}

func TestWriteMarkdownTruncates(t *testing.T) {
	rep := &diagnostics.Report{Total: 60}
	for i := 0; i < 60; i++ {
		rep.Unmatched = append(rep.Unmatched, diagnostics.Entry{ProductID: fmt.Sprint(i), VariationNameClean: "x"})
	}
	var buf bytes.Buffer
	require.NoError(t, rep.WriteMarkdown(&buf))
	assert.Contains(t, buf.String(), "10 more rows in the CSV report.")
	assert.Equal(t, 0, strings.Count(buf.String(), "| 55 "))
}
