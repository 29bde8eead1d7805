package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/panchangam"
	"github.com/roach88/panchangam/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the panchangam CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "panchangam",
		Short: "Panchangam - Malayalam almanac",
		Long: `Compute the star of the day, Malayalam (Kollam era) dates and the
nakshatra timeline of a day for a location in Kerala or anywhere else.

Configuration is read from .panchangam.yaml in the working or home
directory and from PANCHANGAM_* environment variables; flags win.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return config.Init(opts.ConfigFile)
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (default .panchangam.yaml)")
	flags.Float64("lat", config.DefaultLatitude, "latitude in decimal degrees")
	flags.Float64("lon", config.DefaultLongitude, "longitude in decimal degrees, east positive")
	flags.String("dataset", "", "ephemeris dataset file (YAML or SQLite; default embedded)")

	_ = viper.BindPFlag("latitude", flags.Lookup("lat"))
	_ = viper.BindPFlag("longitude", flags.Lookup("lon"))
	_ = viper.BindPFlag("dataset_path", flags.Lookup("dataset"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))

	// Add subcommands
	cmd.AddCommand(NewStarCommand(opts))
	cmd.AddCommand(NewDateCommand(opts))
	cmd.AddCommand(NewGregorianCommand(opts))
	cmd.AddCommand(NewNextCommand(opts))
	cmd.AddCommand(NewTimelineCommand(opts))
	cmd.AddCommand(NewDatasetCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// newFormatter builds the output formatter for cmd.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// newService loads the configuration and builds the service. Log records
// go to stderr: incidents always, diagnostics with --verbose.
func newService(opts *RootOptions, cmd *cobra.Command, formatter *OutputFormatter) (*panchangam.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}

	level := slog.LevelWarn
	if opts.Verbose || cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	svc, err := panchangam.New(cfg, panchangam.WithLogger(logger))
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}

	c := svc.Coordinates()
	formatter.VerboseLog("Location %.4f, %.4f; dataset %q", c.Latitude, c.Longitude, cfg.DatasetPath)
	return svc, nil
}
