// Package inspect provides the inspect command, which shows how massfill
// reads the columns of a workbook sheet.
package inspect

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/massfill/internal/cmd/application"
	"github.com/agentstation/massfill/internal/cmd/output"
	"github.com/agentstation/massfill/internal/matcher"
	"github.com/agentstation/massfill/pkg/columns"
	"github.com/agentstation/massfill/pkg/errors"
	"github.com/agentstation/massfill/pkg/logging"
	"github.com/agentstation/massfill/pkg/sheet"
)

// Report describes the columns of one sheet.
type Report struct {
	File             string           `json:"file" yaml:"file"`
	Sheet            string           `json:"sheet" yaml:"sheet"`
	Rows             int              `json:"rows" yaml:"rows"`
	Slots            int              `json:"slots" yaml:"slots"`
	ImageDestination string           `json:"image_destination,omitempty" yaml:"image_destination,omitempty"`
	Columns          []columns.Column `json:"columns" yaml:"columns"`
}

// NewCommand creates the inspect command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		sheetName string
		rolesOnly bool
		pattern   string
	)

	cmd := &cobra.Command{
		Use:     "inspect FILE",
		GroupID: "core",
		Short:   "Show the columns of a workbook sheet and their roles",
		Long: `Inspect prints each column of a sheet with its display label, the
normalized name massfill matches on, and the role it plays: a media slot
name or image column with its slot number, the per-variation image
destination of a template, or a product cover or gallery image.

Use it to find out why a media export yields no images or why a template
is rejected.`,
		Example: `  massfill inspect media.xlsx
  massfill inspect template.xlsx --sheet Template --roles
  massfill inspect media.xlsx --match 'et_title_image_*'
  massfill inspect media.xlsx --match 'option\s*\d+' -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := Inspect(cmd.Context(), args[0], sheetName)
			if err != nil {
				return err
			}
			if err := report.Filter(pattern); err != nil {
				return err
			}
			return Print(cmd.OutOrStdout(), app, report, rolesOnly)
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "sheet to inspect (default is the first sheet)")
	cmd.Flags().BoolVar(&rolesOnly, "roles", false, "only list columns with a detected role")
	cmd.Flags().StringVar(&pattern, "match", "", "only list columns whose label or name matches a glob or regex")

	return cmd
}

// Inspect reads the header of the named sheet of path. An empty name
// selects the first sheet.
func Inspect(ctx context.Context, path, name string) (*Report, error) {
	wb, err := sheet.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()

	if name == "" {
		sheets := wb.Sheets()
		if len(sheets) == 0 {
			return nil, errors.NewMalformedSource(path, "", "workbook has no sheets")
		}
		name = sheets[0]
	}
	if !wb.HasSheet(name) {
		return nil, errors.NewMalformedSource(path, name,
			fmt.Sprintf("sheet not found, available: %s", strings.Join(wb.Sheets(), ", ")))
	}
	t, err := wb.Table(name)
	if err != nil {
		return nil, err
	}

	ix := columns.NewIndex(t.Labels)
	report := &Report{
		File:    path,
		Sheet:   name,
		Rows:    t.Len(),
		Slots:   len(columns.DiscoverSlots(ix)),
		Columns: columns.Describe(ix),
	}
	if i, err := columns.LocateImageColumn(ix); err == nil {
		report.ImageDestination = ix.Label(i)
	}

	logging.FromContext(ctx).Debug().
		Str("path", path).
		Str("sheet", name).
		Int("columns", ix.Len()).
		Int("slots", report.Slots).
		Msg("Inspected sheet")
	return report, nil
}

// Filter keeps the columns whose label or normalized name matches pattern.
// The pattern kind is detected: regex syntax selects a regex, anything else
// a glob over the whole name. Matching ignores case. An empty pattern keeps
// every column.
func (r *Report) Filter(pattern string) error {
	if pattern == "" {
		return nil
	}
	m, err := matcher.New(matcher.Auto, pattern, &matcher.Options{CaseInsensitive: true})
	if err != nil {
		return errors.NewValidationError("match", pattern, err.Error())
	}
	kept := r.Columns[:0]
	for _, c := range r.Columns {
		if m.Match(c.Name) || m.Match(c.Label) {
			kept = append(kept, c)
		}
	}
	r.Columns = kept
	return nil
}

// Print writes the report in the application's output format.
func Print(w io.Writer, app application.Application, r *Report, rolesOnly bool) error {
	format, err := output.ParseFormat(string(output.DetectFormat(app.OutputFormat())))
	if err != nil {
		return err
	}
	if !format.IsTable() {
		return output.NewFormatter(format).Format(w, r)
	}

	dest := r.ImageDestination
	if dest == "" {
		dest = "none"
	}
	if _, err := fmt.Fprintf(w, "%s [%s]: %d rows, %d media slots, image destination %s\n\n",
		r.File, r.Sheet, r.Rows, r.Slots, dest); err != nil {
		return err
	}
	return output.NewFormatter(format).Format(w, output.ColumnsData(r.Columns, rolesOnly))
}
