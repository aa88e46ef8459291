// Package build provides the build command implementation.
package build

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/massfill/internal/cmd/application"
)

// NewCommand creates the build command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "build",
		GroupID: "core",
		Short:   "Populate the upload template from shop exports",
		Args:    cobra.NoArgs,
		Long: `Build populates a Shopee mass-upload template from a shop's exports:

• Copies every sales variation row into the template's data region
• Pivots the media export into one image per (product id, variation name)
• Joins each row to its variation image and product description
• Writes the populated workbook with the template's formatting intact
• Lists variations without an image in unmatched_variations.csv

Instruction rows of the template are never written. Settings not given as
flags come from .massfill.yaml or MASSFILL_* environment variables.`,
		Example: `  massfill build --basic basic.xlsx --sales sales.xlsx --media media.xlsx \
    --shipment shipment.xlsx --template template.xlsx
  massfill build ... --out-dir out --markdown --summary yaml
  massfill build ... --convert-price --price-factor 3.4 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ExecuteBuild(cmd.Context(), app, flags.Resolve(cmd, app.Settings()), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags = addBuildFlags(cmd)

	return cmd
}
