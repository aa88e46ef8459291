package sheet

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestValue(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.True(t, Empty.IsEmpty())
		assert.True(t, Text("").IsEmpty())
		assert.True(t, NaN().IsEmpty())
		assert.Equal(t, "", NaN().String())
		assert.Nil(t, NaN().Cell())
		assert.Nil(t, Empty.Cell())
	})

	t.Run("numbers format without exponent", func(t *testing.T) {
		assert.Equal(t, "34", Number(34).String())
		assert.Equal(t, "12345678901", Number(12345678901).String())
		assert.Equal(t, "0.5", Number(0.5).String())
	})

	t.Run("float parsing", func(t *testing.T) {
		f, ok := Text(" 10.00 ").Float()
		require.True(t, ok)
		assert.Equal(t, 10.0, f)

		_, ok = Text("ten").Float()
		assert.False(t, ok)
		_, ok = NaN().Float()
		assert.False(t, ok)
	})

	t.Run("equality", func(t *testing.T) {
		assert.True(t, Empty.Equal(NaN()))
		assert.True(t, Text("a").Equal(Text("a")))
		assert.False(t, Text("1").Equal(Number(1)))
		assert.True(t, Number(1.5).Equal(Number(1.5)))
		assert.False(t, Empty.Equal(Text("x")))
	})

	t.Run("cell keeps text as written", func(t *testing.T) {
		assert.Equal(t, "10.5", Text("10.5").Cell())
		assert.Equal(t, "0.50", Text("0.50").Cell())
		assert.Equal(t, "0012", Text("0012").Cell())
		assert.Equal(t, "Red L", Text("Red L").Cell())
		assert.Equal(t, 34.0, Number(34).Cell())
	})
}

func TestTableApply(t *testing.T) {
	tbl := NewTable("Template", []string{"a", "b"}, []string{"1", "2"})
	tbl.Apply([]Write{
		{Row: 0, Col: 1, Value: Text("x")},
		{Row: 3, Col: 1, Value: Number(7)},
		{Row: 0, Col: 0, Value: NaN()},
	})

	require.Equal(t, 4, tbl.Len())
	assert.True(t, tbl.At(0, 0).IsEmpty())
	assert.Equal(t, "x", tbl.At(0, 1).String())
	assert.Equal(t, "7", tbl.At(3, 1).String())
	assert.True(t, tbl.At(2, 0).IsEmpty())
	assert.True(t, tbl.At(99, 99).IsEmpty())
}

func TestTableClone(t *testing.T) {
	tbl := NewTable("S", []string{"a"}, []string{"1"})
	c := tbl.Clone()
	c.Rows[0][0] = Text("2")
	c.Labels[0] = "b"

	assert.Equal(t, "1", tbl.At(0, 0).String())
	assert.Equal(t, "a", tbl.Labels[0])
}

// openFile saves f and opens it as a Workbook.
func openFile(t *testing.T, f *excelize.File) *Workbook {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	wb, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func TestWorkbookRoundTrip(t *testing.T) {
	src := NewTable("Sheet1", []string{"et_title_product_id", "name"},
		[]string{"12345", "Red"},
		[]string{"", "Blue"},
	)
	wb, err := NewWorkbook(src, NewTable("Other", []string{"x"}))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	opened, err := Open(path)
	require.NoError(t, err)
	defer opened.Close()

	assert.Equal(t, []string{"Sheet1", "Other"}, opened.Sheets())
	assert.Equal(t, path, opened.Path())

	got, err := opened.Table("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"et_title_product_id", "name"}, got.Labels)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "12345", got.At(0, 0).String())
	assert.True(t, got.At(1, 0).IsEmpty())
	assert.Equal(t, "Blue", got.At(1, 1).String())

	_, err = opened.Table("Missing")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestApplyPreservesValidationAndMerges(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Template"))
	require.NoError(t, f.SetSheetRow("Template", "A1", &[]any{"ps_price|0|1", "channel_id.28057|0|2"}))
	require.NoError(t, f.SetCellValue("Template", "A2", "instructions"))
	require.NoError(t, f.MergeCell("Template", "A2", "B2"))

	dv := excelize.NewDataValidation(true)
	dv.Sqref = "B3:B100"
	require.NoError(t, dv.SetDropList([]string{"On", "Off"}))
	require.NoError(t, f.AddDataValidation("Template", dv))

	wb := openFile(t, f)

	require.NoError(t, wb.Apply("Template", []Write{
		{Row: 1, Col: 0, Value: Number(34)},
		{Row: 1, Col: 1, Value: Text("On")},
		{Row: 2, Col: 0, Value: NaN()},
	}))

	validations, err := wb.file.GetDataValidations("Template")
	require.NoError(t, err)
	require.Len(t, validations, 1)
	assert.Equal(t, "B3:B100", validations[0].Sqref)

	merges, err := wb.file.GetMergeCells("Template")
	require.NoError(t, err)
	require.Len(t, merges, 1)
	assert.Equal(t, "A2", merges[0].GetStartAxis())

	tbl, err := wb.Table("Template")
	require.NoError(t, err)
	assert.Equal(t, "instructions", tbl.At(0, 0).String())
	assert.Equal(t, "34", tbl.At(1, 0).String())
	assert.Equal(t, "On", tbl.At(1, 1).String())

	assert.ErrorIs(t, wb.Apply("Nope", nil), ErrSheetNotFound)
}

func TestTableKeepsCellTypes(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"name", "sku", "price", "weight"}))
	require.NoError(t, f.SetCellStr("Sheet1", "A2", "0.50"))
	require.NoError(t, f.SetCellStr("Sheet1", "B2", "00123"))
	require.NoError(t, f.SetCellFloat("Sheet1", "C2", 10.5, -1, 64))
	require.NoError(t, f.SetCellInt("Sheet1", "D2", 3))

	wb := openFile(t, f)

	tbl, err := wb.Table("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, Text("0.50"), tbl.At(0, 0))
	assert.Equal(t, Text("00123"), tbl.At(0, 1))
	assert.Equal(t, Number(10.5), tbl.At(0, 2))
	assert.Equal(t, Number(3), tbl.At(0, 3))

	require.NoError(t, wb.Apply("Sheet1", []Write{{Row: 1, Col: 0, Value: tbl.At(0, 0)}}))
	typ, err := wb.file.GetCellType("Sheet1", "A3")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeNumber, typ)
	v, err := wb.file.GetCellValue("Sheet1", "A3")
	require.NoError(t, err)
	assert.Equal(t, "0.50", v)
}

func TestNumberNaNIsDistinctFromZero(t *testing.T) {
	assert.False(t, Number(0).IsEmpty())
	assert.True(t, Number(math.NaN()).IsEmpty())
}
