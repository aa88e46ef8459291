package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		opts        *Options
		wantType    PatternType
		wantErr     bool
	}{
		{name: "valid glob pattern", pattern: "et_title_*", patternType: Glob, wantType: Glob},
		{name: "valid regex pattern", pattern: `^ps_\w+`, patternType: Regex, wantType: Regex},
		{name: "invalid regex pattern", pattern: "[unclosed", patternType: Regex, wantErr: true},
		{name: "invalid glob pattern", pattern: "[unclosed", patternType: Glob, wantErr: true},
		{name: "auto detect glob", pattern: "ps_item_image_?", patternType: Auto, wantType: Glob},
		{name: "auto detect regex", pattern: `image\s*per\s*variation`, patternType: Auto, wantType: Regex},
		{
			name:        "case insensitive option",
			pattern:     "PS_*",
			patternType: Glob,
			opts:        &Options{CaseInsensitive: true},
			wantType:    Glob,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.patternType, tt.pattern, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type())
			assert.Equal(t, tt.pattern, m.Pattern())
		})
	}
}

func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		opts        *Options
		input       string
		want        bool
	}{
		{"glob prefix", "ps_item_image_*", Glob, nil, "ps_item_image_3", true},
		{"glob miss", "ps_item_image_*", Glob, nil, "ps_price", false},
		{"glob case sensitive", "PS_*", Glob, nil, "ps_price", false},
		{"glob case insensitive", "PS_*", Glob, &Options{CaseInsensitive: true}, "ps_price", true},
		{"regex spaced", `image\s*per\s*variation`, Regex, &Options{CaseInsensitive: true}, "Image Per Variation", true},
		{"regex compact", `image\s*per\s*variation`, Regex, &Options{CaseInsensitive: true}, "imagepervariation", true},
		{"regex unanchored", "option", Regex, nil, "et_title_option_1", true},
		{"regex anchored", "option", Regex, &Options{Anchored: true}, "et_title_option_1", false},
		{"regex anchored exact", "option", Regex, &Options{Anchored: true}, "option", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MustNew(tt.patternType, tt.pattern, tt.opts)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestMatcher_Capture(t *testing.T) {
	m := MustNew(Regex, `^et_title_option_(\d+)_for_variation_1$`)

	got, ok := m.Capture("et_title_option_12_for_variation_1")
	require.True(t, ok)
	assert.Equal(t, "12", got)

	_, ok = m.Capture("et_title_option_for_variation_1")
	assert.False(t, ok)

	noGroup := MustNew(Regex, "^ps_")
	got, ok = noGroup.Capture("ps_price")
	assert.True(t, ok)
	assert.Empty(t, got)

	glob := MustNew(Glob, "ps_*")
	got, ok = glob.Capture("ps_price")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Regex, "(") })
	assert.Panics(t, func() { MustNewMultiMatcher([]string{"ok", "("}, Regex) })
}

func TestMultiMatcher_First(t *testing.T) {
	mm := MustNewMultiMatcher(
		[]string{`image\s*per\s*variation`, `et_title_image_per_variation`},
		Regex,
		&Options{CaseInsensitive: true},
	)

	t.Run("earlier pattern wins over column order", func(t *testing.T) {
		labels := []string{"et_title_image_per_variation", "Image per Variation"}
		assert.Equal(t, 1, mm.First(labels...))
	})

	t.Run("falls back to later pattern", func(t *testing.T) {
		labels := []string{"ps_price", "ET_TITLE_IMAGE_PER_VARIATION"}
		assert.Equal(t, 1, mm.First(labels...))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Equal(t, -1, mm.First("ps_price", "ps_stock"))
		assert.Equal(t, -1, mm.First())
	})

	assert.True(t, mm.Match("image per variation"))
	assert.False(t, mm.Match("variation image"))
	assert.Equal(t, []string{`image\s*per\s*variation`, `et_title_image_per_variation`}, mm.Patterns())
}

func TestMultiMatcher_Capture(t *testing.T) {
	mm := MustNewMultiMatcher([]string{
		`^option\s*(\d+)\s*name$`,
		`^option\s*name\s*(\d+)$`,
	}, Regex, &Options{CaseInsensitive: true})

	got, ok := mm.Capture("Option 3 Name")
	require.True(t, ok)
	assert.Equal(t, "3", got)

	got, ok = mm.Capture("option name 7")
	require.True(t, ok)
	assert.Equal(t, "7", got)

	_, ok = mm.Capture("option image 7")
	assert.False(t, ok)
}

func TestNewMultiMatcherError(t *testing.T) {
	_, err := NewMultiMatcher([]string{"ok", "[bad"}, Regex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"[bad"`)
}

func TestPatternTypeString(t *testing.T) {
	assert.Equal(t, "glob", Glob.String())
	assert.Equal(t, "regex", Regex.String())
	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "unknown", PatternType(9).String())
}
