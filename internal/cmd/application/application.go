// Package application defines what massfill commands need from the CLI
// application.
//
// Commands accept the Application interface rather than the concrete App
// so they can be tested with Mock:
//
//	mock := &application.Mock{
//	    SettingsFunc: func() application.Settings {
//	        return application.DefaultSettings()
//	    },
//	}
//	cmd := build.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/massfill"
	"github.com/agentstation/massfill/pkg/constants"
)

// Application provides configuration and logging to commands.
type Application interface {
	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the --format value, empty for auto-detection.
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Settings returns the run defaults from config files and environment.
	// Command flags override them.
	Settings() Settings

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}

// Settings are the configurable defaults of a build.
type Settings struct {
	SourceOffset   int
	TemplateOffset int
	Sheets         massfill.Sheets
	ConvertPrice   bool
	PriceFactor    float64
	FixedValues    map[string]string
	OutputDir      string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		SourceOffset:   constants.DefaultInstructionRows,
		TemplateOffset: constants.DefaultInstructionRows,
		Sheets:         massfill.DefaultSheets(),
		PriceFactor:    constants.DefaultPriceFactor,
		FixedValues:    massfill.DefaultFixedValues(),
		OutputDir:      ".",
	}
}
