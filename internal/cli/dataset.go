package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/panchangam/internal/astro"
)

// DatasetSummary describes a validated ephemeris dataset.
type DatasetSummary struct {
	Path       string `json:"path"`
	Name       string `json:"name"`
	ValidFrom  int    `json:"valid_from"`
	ValidTo    int    `json:"valid_to"`
	SunTerms   int    `json:"sun_terms"`
	MoonTerms  int    `json:"moon_terms"`
	ExportedTo string `json:"exported_to,omitempty"`
}

func (s DatasetSummary) String() string {
	path := s.Path
	if path == "" {
		path = "(embedded)"
	}
	out := fmt.Sprintf("✓ %s: %s, valid %d-%d, %d solar and %d lunar terms",
		path, s.Name, s.ValidFrom, s.ValidTo, s.SunTerms, s.MoonTerms)
	if s.ExportedTo != "" {
		out += "\nExported to " + s.ExportedTo
	}
	return out
}

func summarize(path string, ds *astro.Dataset) DatasetSummary {
	return DatasetSummary{
		Path:      path,
		Name:      ds.Name,
		ValidFrom: ds.ValidFrom,
		ValidTo:   ds.ValidTo,
		SunTerms:  len(ds.Sun.Center),
		MoonTerms: len(ds.Moon.Terms),
	}
}

// NewDatasetCommand creates the dataset command group.
func NewDatasetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect and convert ephemeris datasets",
	}

	cmd.AddCommand(newDatasetCheckCommand(rootOpts))
	cmd.AddCommand(newDatasetExportCommand(rootOpts))

	return cmd
}

func newDatasetCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Validate an ephemeris dataset",
		Long: `Load a dataset (YAML, or SQLite for .db/.sqlite/.sqlite3 files) and
validate it against the dataset schema. Without a path the configured
dataset is checked, or the embedded one if none is configured.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetCheck(rootOpts, datasetPath(args), cmd)
		},
	}

	return cmd
}

func runDatasetCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	ds, err := astro.LoadDataset(path)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDataset, "dataset is not usable", err)
	}
	return formatter.Success(summarize(path, ds))
}

func newDatasetExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <output.db>",
		Short: "Write the dataset to a new SQLite file",
		Long: `Write the configured dataset (or the embedded one) to a new SQLite
file that can be used with --dataset. Existing files are never overwritten.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetExport(rootOpts, datasetPath(nil), args[0], cmd)
		},
	}

	return cmd
}

func runDatasetExport(opts *RootOptions, source, output string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	ds, err := astro.LoadDataset(source)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDataset, "dataset is not usable", err)
	}
	formatter.VerboseLog("Exporting %s (%d lunar terms)", ds.Name, len(ds.Moon.Terms))

	if err := astro.WriteSQLiteDataset(output, ds); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDataset, "export failed", err)
	}

	summary := summarize(source, ds)
	summary.ExportedTo = output
	return formatter.Success(summary)
}

// datasetPath picks the explicit argument, then the configured dataset.
func datasetPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return viper.GetString("dataset_path")
}
