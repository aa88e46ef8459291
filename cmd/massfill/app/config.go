package app

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/massfill"
	"github.com/agentstation/massfill/internal/cmd/application"
	"github.com/agentstation/massfill/pkg/constants"
)

// EnvPrefix prefixes every environment variable massfill reads.
const EnvPrefix = "MASSFILL"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// ConfigFile is the config file in use, empty when none was found
	ConfigFile string

	// Settings are the build defaults
	Settings application.Settings

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (MASSFILL_*)
// 3. .env files
// 4. Config file (.massfill.yaml in the working or home directory)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig("")
}

// LoadConfigFile loads configuration like LoadConfig but reads the given
// file instead of searching for one. The file must exist.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(path)
}

func loadConfig(file string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if file == "" {
		file = v.GetString("config")
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName(".massfill")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		// A missing config file is fine
		_ = v.ReadInConfig()
	}

	fixed, err := ParseFixedValues(v.GetStringSlice("fixed_values"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no-color"),
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		Settings: application.Settings{
			SourceOffset:   v.GetInt("source_instruction_rows"),
			TemplateOffset: v.GetInt("template_instruction_rows"),
			Sheets: massfill.Sheets{
				Basic:    v.GetString("sheets.basic"),
				Sales:    v.GetString("sheets.sales"),
				Media:    v.GetString("sheets.media"),
				Shipment: v.GetString("sheets.shipment"),
				Template: v.GetString("sheets.template"),
			},
			ConvertPrice: v.GetBool("price.convert"),
			PriceFactor:  v.GetFloat64("price.factor"),
			FixedValues:  fixed,
			OutputDir:    v.GetString("output_dir"),
		},

		// LOG_* without prefix are honored like the rest of the toolchain
		LogLevel:  firstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat: firstNonEmpty(v.GetString("log_format"), os.Getenv("LOG_FORMAT"), "auto"),
		LogOutput: firstNonEmpty(v.GetString("log_output"), os.Getenv("LOG_OUTPUT"), "stderr"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	d := application.DefaultSettings()
	v.SetDefault("source_instruction_rows", d.SourceOffset)
	v.SetDefault("template_instruction_rows", d.TemplateOffset)
	v.SetDefault("sheets.basic", d.Sheets.Basic)
	v.SetDefault("sheets.sales", d.Sheets.Sales)
	v.SetDefault("sheets.media", d.Sheets.Media)
	v.SetDefault("sheets.shipment", d.Sheets.Shipment)
	v.SetDefault("sheets.template", d.Sheets.Template)
	v.SetDefault("price.convert", false)
	v.SetDefault("price.factor", constants.DefaultPriceFactor)
	v.SetDefault("fixed_values", FormatFixedValues(d.FixedValues))
	v.SetDefault("output_dir", d.OutputDir)
}

// ParseFixedValues parses "column=value" entries. Column names may contain
// dots, so fixed values are configured as a list rather than a map.
func ParseFixedValues(entries []string) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		name, value, ok := strings.Cut(e, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid fixed value %q: want column=value", e)
		}
		out[name] = value
	}
	return out, nil
}

// FormatFixedValues is the inverse of ParseFixedValues. Entries are
// sorted by column.
func FormatFixedValues(values map[string]string) []string {
	out := make([]string, 0, len(values))
	for name, value := range values {
		out = append(out, name+"="+value)
	}
	slices.Sort(out)
	return out
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config files and the environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files. Variables
// already set are not overridden, so .env wins over .env.local.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
