// Package save configures how the outputs of a run are written.
package save

import (
	"io"

	"github.com/agentstation/massfill/pkg/constants"
)

// Format is the encoding of the run summary file.
type Format int

// Format constants.
const (
	FormatNone Format = iota
	FormatJSON
	FormatYAML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatNone, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Ext returns the file extension of the format, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return ""
}

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "", "none":
		return FormatNone, true
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	}
	return FormatNone, false
}

// Options is the configuration for save.
type Options struct {
	dir      string
	markdown bool
	summary  Format
	progress io.Writer
}

// Dir returns the output directory.
func (s *Options) Dir() string {
	return s.dir
}

// Markdown reports whether the markdown diagnostics are written.
func (s *Options) Markdown() bool {
	return s.markdown
}

// Summary returns the format of the summary file; FormatNone skips it.
func (s *Options) Summary() Format {
	return s.summary
}

// Progress returns the writer receiving one line per written file, or nil.
func (s *Options) Progress() io.Writer {
	return s.progress
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		dir:     ".",
		summary: FormatNone,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(s *Options) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithMarkdown enables the markdown diagnostics file.
func WithMarkdown(enabled bool) Option {
	return func(s *Options) {
		s.markdown = enabled
	}
}

// WithSummary writes the run summary in the given format.
func WithSummary(f Format) Option {
	return func(s *Options) {
		s.summary = f
	}
}

// WithProgress reports each written file to w.
func WithProgress(w io.Writer) Option {
	return func(s *Options) {
		s.progress = w
	}
}

// SummaryFile returns the name of the summary file for a format.
func SummaryFile(f Format) string {
	if f == FormatNone {
		return ""
	}
	return constants.SummaryBase + "." + f.Ext()
}
