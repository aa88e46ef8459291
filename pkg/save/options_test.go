package save

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	o := Defaults()
	assert.Equal(t, ".", o.Dir())
	assert.False(t, o.Markdown())
	assert.Equal(t, FormatNone, o.Summary())
	assert.Nil(t, o.Progress())
}

func TestApply(t *testing.T) {
	var buf bytes.Buffer
	o := Defaults().Apply(
		WithDir("out"),
		WithMarkdown(true),
		WithSummary(FormatYAML),
		WithProgress(&buf),
	)
	assert.Equal(t, "out", o.Dir())
	assert.True(t, o.Markdown())
	assert.Equal(t, FormatYAML, o.Summary())
	assert.Same(t, &buf, o.Progress())

	o = Defaults().Apply(WithDir(""))
	assert.Equal(t, ".", o.Dir(), "empty dir keeps the default")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatNone, true},
		{"none", FormatNone, true},
		{"json", FormatJSON, true},
		{"yml", FormatYAML, true},
		{"yaml", FormatYAML, true},
		{"xml", FormatNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "unknown", Format(7).String())
	assert.False(t, Format(7).IsValid())
	assert.Equal(t, "massfill_summary.json", SummaryFile(FormatJSON))
	assert.Equal(t, "massfill_summary.yaml", SummaryFile(FormatYAML))
	assert.Empty(t, SummaryFile(FormatNone))
}
