package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/agentstation/massfill/cmd/massfill/cmd/build"
	"github.com/agentstation/massfill/cmd/massfill/cmd/inspect"
	"github.com/agentstation/massfill/pkg/constants"
	"github.com/agentstation/massfill/pkg/errors"
)

// registerCommands wires the subcommands to the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(build.NewCommand(a))
	rootCmd.AddCommand(inspect.NewCommand(a))
	rootCmd.AddCommand(a.CreateVersionCommand())
	rootCmd.AddCommand(a.CreateManCommand())
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "massfill %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "  commit:     %s\n", a.commit)
				fmt.Fprintf(cmd.OutOrStdout(), "  built:      %s\n", a.date)
				fmt.Fprintf(cmd.OutOrStdout(), "  built by:   %s\n", a.builtBy)
				fmt.Fprintf(cmd.OutOrStdout(), "  go version: %s\n", runtime.Version())
				fmt.Fprintf(cmd.OutOrStdout(), "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}

// CreateManCommand creates the hidden command that writes man pages.
func (a *App) CreateManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man DIR",
		Short:  "Generate man pages",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
				return errors.WrapIO("create", dir, err)
			}
			header := &doc.GenManHeader{
				Title:   "MASSFILL",
				Section: "1",
				Source:  "massfill " + a.version,
			}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}
}
