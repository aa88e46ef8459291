// Package alerts reports the outcome of a command as short status lines.
package alerts

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/massfill"
	"github.com/agentstation/massfill/pkg/constants"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure.
	LevelError Level = iota
	// LevelWarning indicates data that needs attention before upload.
	LevelWarning
	// LevelInfo indicates general information.
	LevelInfo
	// LevelSuccess indicates a clean result.
	LevelSuccess
)

// String returns the name of the level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the status symbol of the level.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return "✗"
	case LevelWarning:
		return "!"
	case LevelSuccess:
		return "✓"
	default:
		return "i"
	}
}

func (l Level) color() string {
	switch l {
	case LevelError:
		return "\033[31m"
	case LevelWarning:
		return "\033[33m"
	case LevelSuccess:
		return "\033[32m"
	default:
		return "\033[36m"
	}
}

const reset = "\033[0m"

// Alert is one status line with optional indented details.
type Alert struct {
	Level   Level
	Message string
	Details []string
}

// New creates an alert.
func New(level Level, format string, args ...any) *Alert {
	return &Alert{Level: level, Message: fmt.Sprintf(format, args...)}
}

// WithDetails appends detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the alert line without details.
func (a *Alert) String() string {
	return a.Level.Icon() + " " + a.Message
}

// Writer prints alerts, colored when writing to a terminal.
type Writer struct {
	w     io.Writer
	color bool
}

// NewWriter returns a Writer for w. Color is enabled for terminals unless
// noColor is set.
func NewWriter(w io.Writer, noColor bool) *Writer {
	color := false
	if f, ok := w.(*os.File); ok && !noColor {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{w: w, color: color}
}

// Write prints the alerts in order.
func (w *Writer) Write(alerts ...*Alert) error {
	for _, a := range alerts {
		line := a.String()
		if w.color {
			line = a.Level.color() + line + reset
		}
		if _, err := fmt.Fprintln(w.w, line); err != nil {
			return err
		}
		for _, d := range a.Details {
			if _, err := fmt.Fprintf(w.w, "   %s\n", d); err != nil {
				return err
			}
		}
	}
	return nil
}

// maxListedProducts bounds the product ids named in an alert.
const maxListedProducts = 10

func listProducts(ids []string) string {
	if len(ids) <= maxListedProducts {
		return strings.Join(ids, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(ids[:maxListedProducts], ", "), len(ids)-maxListedProducts)
}

// ForRun summarizes a build: run warnings, then either the unmatched
// variations or a success line.
func ForRun(s massfill.Summary) []*Alert {
	var out []*Alert
	for _, w := range s.Warnings {
		out = append(out, New(LevelWarning, "%s", w))
	}

	switch {
	case s.DataRows == 0:
		out = append(out, New(LevelWarning, "no data rows were written"))
	case s.Unmatched > 0:
		out = append(out, New(LevelWarning, "%d of %d variations have no image (%.1f%% matched)",
			s.Total-s.Matched, s.Total, s.MatchRate*100).
			WithDetails(
				fmt.Sprintf("%d entries in %s", s.Unmatched, constants.UnmatchedReport),
				"products: "+listProducts(s.UnmatchedProducts),
			))
	default:
		out = append(out, New(LevelSuccess, "populated %d rows, all %d variations matched", s.DataRows, s.Total))
	}
	return out
}
