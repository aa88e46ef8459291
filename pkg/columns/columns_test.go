package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/massfill/pkg/errors"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ps_price|0|1", "ps_price"},
		{"  ps_stock|12|3", "ps_stock"},
		{"ps_stock|12|3 ", "ps_stock|12|3"},
		{"channel_id.28057|0|0", "channel_id.28057"},
		{"ps_weight", "ps_weight"},
		{"a|b|1|2", "a|b"},
		{"ps_price|1", "ps_price|1"},
		{"ps_price|0|1|", "ps_price|0|1|"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLabel(tt.in))
		})
	}
}

func TestIndex(t *testing.T) {
	ix := NewIndex([]string{"ps_price|0|1", "ps_stock|0|2", "ps_price|1|1", ""})

	assert.Equal(t, 4, ix.Len())
	assert.Equal(t, []string{"ps_price", "ps_stock", "ps_price", ""}, ix.Names())
	assert.Equal(t, "ps_stock|0|2", ix.Label(1))
	assert.Equal(t, "ps_stock", ix.Name(1))

	i, ok := ix.Lookup("ps_price")
	require.True(t, ok)
	assert.Equal(t, 0, i, "leftmost duplicate wins")
	assert.False(t, ix.Has(""))
	assert.False(t, ix.Has("ps_weight"))

	labels := ix.Labels()
	labels[0] = "changed"
	assert.Equal(t, "ps_price|0|1", ix.Label(0))
}

func TestIndexRequire(t *testing.T) {
	ix := NewIndex([]string{"et_title_product_id", "et_title_variation_name"})

	pos, err := ix.Require("sales_info", "Sheet1", "et_title_variation_name", "et_title_product_id")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, pos)

	_, err = ix.Require("sales_info", "Sheet1", "et_title_product_id", "et_title_variation_price")
	require.Error(t, err)
	assert.True(t, errors.IsMalformedSource(err))

	var mse *errors.MalformedSourceError
	require.ErrorAs(t, err, &mse)
	assert.Equal(t, "et_title_variation_price", mse.Column)
	assert.Equal(t, "sales_info", mse.Document)
}

func TestDiscoverSlots(t *testing.T) {
	t.Run("slug spelling", func(t *testing.T) {
		ix := NewIndex([]string{
			"et_title_product_id",
			"et_title_option_1_for_variation_1",
			"et_title_option_image_1_for_variation_1",
			"et_title_option_2_for_variation_1",
			"et_title_option_image_3_for_variation_1",
			"et_title_option_image_2_for_variation_1",
		})
		slots := DiscoverSlots(ix)
		assert.Equal(t, []Slot{
			{Index: 1, NameCol: 1, ImageCol: 2},
			{Index: 2, NameCol: 3, ImageCol: 5},
		}, slots, "slot 3 has no name column and is skipped")
	})

	t.Run("alternate spellings", func(t *testing.T) {
		ix := NewIndex([]string{
			"Option 1 Name", "Option 1 Image",
			"option name 2", "option image 2",
			"OPTION4NAME", "option4image",
		})
		slots := DiscoverSlots(ix)
		assert.Equal(t, []Slot{
			{Index: 1, NameCol: 0, ImageCol: 1},
			{Index: 2, NameCol: 2, ImageCol: 3},
			{Index: 4, NameCol: 4, ImageCol: 5},
		}, slots)
	})

	t.Run("out of range and labelled suffixes", func(t *testing.T) {
		ix := NewIndex([]string{
			"et_title_option_31_for_variation_1", "et_title_option_image_31_for_variation_1",
			"et_title_option_0_for_variation_1", "et_title_option_image_0_for_variation_1",
			"et_title_option_30_for_variation_1|0|1", "et_title_option_image_30_for_variation_1|0|2",
		})
		assert.Equal(t, []Slot{{Index: 30, NameCol: 4, ImageCol: 5}}, DiscoverSlots(ix))
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, DiscoverSlots(NewIndex([]string{"et_title_product_id"})))
	})
}

func TestLocateImageColumn(t *testing.T) {
	t.Run("display spelling preferred", func(t *testing.T) {
		ix := NewIndex([]string{"et_title_image_per_variation|0|1", "ps_price", "Image per Variation"})
		i, err := LocateImageColumn(ix)
		require.NoError(t, err)
		assert.Equal(t, 2, i)
	})

	t.Run("slug spelling", func(t *testing.T) {
		ix := NewIndex([]string{"ps_price|0|1", "et_title_image_per_variation|3|0"})
		i, err := LocateImageColumn(ix)
		require.NoError(t, err)
		assert.Equal(t, 1, i)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LocateImageColumn(NewIndex([]string{"ps_price", "ps_item_cover_image"}))
		require.Error(t, err)
		assert.True(t, errors.IsMissingColumn(err))
		assert.Contains(t, err.Error(), "image per variation")
	})
}

func TestGallery(t *testing.T) {
	src := SourceGallery(NewIndex([]string{"et_title_product_id", "et_title_image_1", "et_title_image_3", "et_title_image_9"}))
	assert.Equal(t, 1, src.Cover)
	assert.Equal(t, -1, src.Images[0])
	assert.Equal(t, 2, src.Images[1])
	assert.Equal(t, 3, src.Images[7])
	assert.True(t, src.Any())

	tpl := TemplateGallery(NewIndex([]string{"ps_item_image_2|0|1", "ps_price"}))
	assert.Equal(t, -1, tpl.Cover)
	assert.Equal(t, 0, tpl.Images[1])
	assert.True(t, tpl.Any())

	assert.False(t, TemplateGallery(NewIndex([]string{"ps_price"})).Any())
}

func TestDescribe(t *testing.T) {
	ix := NewIndex([]string{
		"et_title_product_id",
		"et_title_option_1_for_variation_1",
		"et_title_option_image_1_for_variation_1",
		"et_title_image_1",
		"Image per Variation|2|0",
		"ps_item_image_3",
	})
	cols := Describe(ix)
	require.Len(t, cols, 6)

	assert.Equal(t, RoleNone, cols[0].Role)
	assert.Equal(t, Column{Position: 1, Label: "et_title_option_1_for_variation_1", Name: "et_title_option_1_for_variation_1", Role: RoleSlotName, Slot: 1}, cols[1])
	assert.Equal(t, RoleSlotImage, cols[2].Role)
	assert.Equal(t, RoleCover, cols[3].Role)
	assert.Equal(t, RoleImageDestination, cols[4].Role)
	assert.Equal(t, "Image per Variation", cols[4].Name)
	assert.Equal(t, RoleGallery, cols[5].Role)
	assert.Equal(t, 3, cols[5].Slot)
}
