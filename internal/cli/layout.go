package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomscene/pkg/pipeline"
)

// layoutCommand creates the layout command for computing and rendering layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		lf      layoutFlags
		formats string
		output  string
		render  pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a room layout and write floor plans",
		Long: `Compute a room layout and write floor plans and scene graphs.

The static variant places the reference furniture set. The random variant
scatters --count primitives over the floor using the seeded generator; the
same seed always produces the same room.

Each requested format is written to <output>.<format>:
  svg        top-down floor plan
  txt        character floor plan
  dot        scene graph in Graphviz DOT
  graph.svg  scene graph rendered with Graphviz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := lf.resolve(cmd, osLookup)
			if err != nil {
				return err
			}
			opts.Formats = parseFormats(formats)
			opts.Scale = render.Scale
			opts.Labels = render.Labels
			opts.Grid = render.Grid
			opts.Detailed = render.Detailed
			opts.Logger = c.Logger
			return c.runLayout(cmd.Context(), opts, output)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output formats: svg (default), txt, dot, graph.svg (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path without extension (default: room-<variant>-<seed>)")
	cmd.Flags().Float64Var(&render.Scale, "scale", pipeline.DefaultScale, "floor plan pixels per world unit")
	cmd.Flags().BoolVar(&render.Labels, "labels", false, "label objects in the floor plan")
	cmd.Flags().Float64Var(&render.Grid, "grid", 0, "floor plan grid spacing in world units (0 disables)")
	cmd.Flags().BoolVar(&render.Detailed, "detailed", false, "include sizes and colors in scene graph labels")

	return cmd
}

// runLayout executes the pipeline and writes one file per artifact.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string) error {
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Variant))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		output = defaultOutputBase(opts)
	}
	paths, err := writeArtifacts(result.Artifacts, output)
	if err != nil {
		return err
	}

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Objects, result.Stats.Draws, result.Fingerprint)
	printNewline()
	printNextStep("View", fmt.Sprintf("%s view --variant %s --seed %d", appName, result.Layout.Variant, opts.Seed))

	return nil
}

// defaultOutputBase names output files after the variant and, for random
// layouts, the seed.
func defaultOutputBase(opts pipeline.Options) string {
	if opts.IsStatic() {
		return "room-static"
	}
	return fmt.Sprintf("room-%s-%d", opts.Variant, opts.Seed)
}

// writeArtifacts writes each artifact to base.<format> and returns the
// written paths in sorted order.
func writeArtifacts(artifacts map[string][]byte, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
