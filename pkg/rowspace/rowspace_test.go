package rowspace

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/massfill/pkg/errors"
	"github.com/agentstation/massfill/pkg/sheet"
)

var templateLabels = []string{"ps_product_name|0|1", "ps_price|0|2", "Image per Variation|0|3"}

func template(rows ...[]string) *sheet.Table {
	return sheet.NewTable("Template", templateLabels, rows...)
}

func TestNewFrame(t *testing.T) {
	_, err := NewFrame(template(), -1)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	orig := template([]string{"a", "1"})
	f, err := NewFrame(orig, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, "1", f.At(0, "ps_price").String())
	assert.True(t, f.At(0, "Image per Variation").IsEmpty(), "short rows are padded")
	assert.True(t, f.At(0, "ps_stock").IsEmpty())

	f.Ensure(1).Set(0, "ps_price", sheet.Text("2"))
	assert.Equal(t, "1", orig.At(0, 1).String(), "frame is a copy")
}

func TestEnsureGrowsNeverShrinks(t *testing.T) {
	f, err := NewFrame(template(make([][]string, 3)...), 5)
	require.NoError(t, err)

	reg := f.Ensure(2)
	assert.Equal(t, 7, f.Len())
	assert.Equal(t, 5, reg.Start())
	assert.Equal(t, 2, reg.Len())

	f2, err := NewFrame(template(make([][]string, 12)...), 5)
	require.NoError(t, err)
	f2.Ensure(2)
	assert.Equal(t, 12, f2.Len())

	assert.Equal(t, 0, f.Ensure(-3).Len())
}

func TestRegionSetGet(t *testing.T) {
	f, err := NewFrame(template([]string{"instructions", "Price"}), 1)
	require.NoError(t, err)
	reg := f.Ensure(2)

	reg.Set(0, "ps_price", sheet.Number(34))
	reg.Set(1, "ps_product_name", sheet.Text("Cap"))
	reg.Set(2, "ps_price", sheet.Number(1))
	reg.Set(-1, "ps_price", sheet.Number(1))

	assert.Equal(t, "34", reg.Get(0, "ps_price").String())
	assert.Equal(t, "Cap", f.At(2, "ps_product_name").String())
	assert.True(t, reg.Get(2, "ps_price").IsEmpty())
	assert.Equal(t, "Price", f.At(0, "ps_price").String())

	assert.True(t, reg.Has("Image per Variation"))
	assert.False(t, reg.Has("variation_image"))
}

func TestScratchColumnsNeverWritten(t *testing.T) {
	orig := template([]string{"instructions"})
	f, err := NewFrame(orig, 1)
	require.NoError(t, err)
	reg := f.Ensure(1)

	reg.Set(0, "variation_image", sheet.Text("https://img/x.jpg"))
	assert.Equal(t, "https://img/x.jpg", reg.Get(0, "variation_image").String())

	tbl := f.Table()
	assert.Equal(t, templateLabels, tbl.Labels)
	assert.Len(t, tbl.Rows[1], len(templateLabels))
	assert.Empty(t, f.Writes(orig))
}

func TestFillAndMap(t *testing.T) {
	f, err := NewFrame(template(), 0)
	require.NoError(t, err)
	reg := f.Ensure(3)

	reg.Fill("ps_price", sheet.Text("10.00"))
	reg.Map("ps_price", func(v sheet.Value) sheet.Value {
		n, _ := v.Float()
		return sheet.Number(n * 2)
	})
	for i := 0; i < 3; i++ {
		assert.Equal(t, "20", reg.Get(i, "ps_price").String())
	}
}

func TestWrites(t *testing.T) {
	orig := template(
		[]string{"instructions", "Price"},
		[]string{"Old name", "5", "https://img/old.jpg"},
	)
	f, err := NewFrame(orig, 1)
	require.NoError(t, err)
	reg := f.Ensure(2)

	reg.Set(0, "ps_product_name", sheet.Text("Old name"))
	reg.Set(0, "ps_price", sheet.NaN())
	reg.Set(0, "Image per Variation", sheet.Text("https://img/new.jpg"))
	reg.Set(1, "ps_price", sheet.Number(34))
	reg.Set(1, "Image per Variation", sheet.NaN())

	writes := f.Writes(orig)
	assert.Equal(t, []sheet.Write{
		{Row: 1, Col: 1, Value: sheet.Empty},
		{Row: 1, Col: 2, Value: sheet.Text("https://img/new.jpg")},
		{Row: 2, Col: 1, Value: sheet.Number(34)},
	}, writes)

	applied := orig.Clone()
	applied.Apply(writes)
	want := f.Table()
	require.Equal(t, want.Len(), applied.Len())
	for r := 1; r < want.Len(); r++ {
		for c := range templateLabels {
			assert.True(t, want.At(r, c).Equal(applied.At(r, c)), "cell (%d,%d)", r, c)
		}
	}
}

// Rows before the offset keep their cells and the frame covers at least
// offset+n rows, whatever n and the template length are.
func TestRowSpaceProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		k := rng.Intn(8)
		rows := make([][]string, rng.Intn(15))
		for r := range rows {
			rows[r] = []string{fmt.Sprintf("r%d", r), fmt.Sprint(rng.Intn(100)), ""}
		}
		orig := template(rows...)
		n := rng.Intn(12)

		f, err := NewFrame(orig, k)
		require.NoError(t, err)
		reg := f.Ensure(n)
		for i := 0; i < n; i++ {
			reg.Set(i, "ps_product_name", sheet.Text(fmt.Sprintf("p%d", i)))
			reg.Set(i, "ps_price", sheet.Number(float64(rng.Intn(50))))
			if rng.Intn(2) == 0 {
				reg.Set(i, "Image per Variation", sheet.NaN())
			}
		}

		assert.GreaterOrEqual(t, f.Len(), k+n)
		assert.GreaterOrEqual(t, f.Len(), orig.Len())

		for _, w := range f.Writes(orig) {
			require.GreaterOrEqual(t, w.Row, k, "trial %d wrote into the instruction rows", trial)
		}

		out := orig.Clone()
		out.Apply(f.Writes(orig))
		for r := 0; r < k && r < orig.Len(); r++ {
			for c := range templateLabels {
				assert.True(t, orig.At(r, c).Equal(out.At(r, c)), "trial %d cell (%d,%d)", trial, r, c)
			}
		}
	}
}
