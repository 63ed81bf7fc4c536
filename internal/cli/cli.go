// Package cli implements the roomscene command-line interface.
//
// # Commands
//
//   - layout: compute a layout and write floor plans and scene graphs
//   - view: open the 3D viewer window
//   - preview: browse layouts as a floor plan in the terminal
//   - serve: serve floor plans and scene graphs over HTTP
//   - inspect: print spread statistics and a generator uniformity check
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Layout parameters are resolved in order: reference defaults, the room
// file given with --config, ROOMSCENE_* environment variables (a .env file
// in the working directory is loaded first), then flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomscene/pkg/buildinfo"
	"github.com/matzehuels/roomscene/pkg/config"
	"github.com/matzehuels/roomscene/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and default titles.
	appName = "roomscene"

	// dotEnvFile is loaded before environment overrides are applied.
	dotEnvFile = ".env"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Roomscene generates reproducible 3D room layouts",
		Long:         `Roomscene places furniture or seeded random primitives on a floor, renders the result as floor plans and scene graphs, and shows it in a 3D viewer. The same seed always yields the same room.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Layout Flags
// =============================================================================

// layoutFlags are the layout parameters shared by every command that builds
// a layout.
type layoutFlags struct {
	config    string
	variant   string
	seed      int64
	count     int
	extent    float64
	generator string
}

// register adds the layout flags to cmd.
func (f *layoutFlags) register(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "room file (.toml, .yaml)")
	cmd.Flags().StringVar(&f.variant, "variant", def.Variant, "layout variant: random (default), static")
	cmd.Flags().Int64VarP(&f.seed, "seed", "s", def.Seed, "random seed")
	cmd.Flags().IntVarP(&f.count, "count", "n", def.ObjectCount, "number of random objects")
	cmd.Flags().Float64Var(&f.extent, "extent", def.HalfExtent, "floor half extent for random placement")
	cmd.Flags().StringVar(&f.generator, "generator", def.Generator, "sequence generator: sine (default), pcg")
}

// resolve builds pipeline options from defaults, the room file, the
// environment and the flags that were set explicitly.
func (f *layoutFlags) resolve(cmd *cobra.Command, lookup func(string) (string, bool)) (pipeline.Options, error) {
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return pipeline.Options{}, err
	}

	cfg := config.Default()
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return pipeline.Options{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return pipeline.Options{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("variant") {
		cfg.Variant = f.variant
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("count") {
		cfg.ObjectCount = f.count
	}
	if flags.Changed("extent") {
		cfg.HalfExtent = f.extent
	}
	if flags.Changed("generator") {
		cfg.Generator = f.generator
	}
	if err := cfg.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.OptionsFromConfig(cfg), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// osLookup is the environment lookup used outside tests.
var osLookup = os.LookupEnv
