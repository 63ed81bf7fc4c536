package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomscene/pkg/inspect"
	"github.com/matzehuels/roomscene/pkg/pipeline"
	"github.com/matzehuels/roomscene/pkg/sequence"
)

// Uniformity check defaults.
const (
	defaultDraws = 10000
	defaultBins  = 20
	defaultAlpha = 0.01
)

// inspectCommand creates the inspect command that reports layout spread and
// generator uniformity.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		lf    layoutFlags
		draws int
		bins  int
		alpha float64
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report how a layout is spread and how uniform its generator is",
		Long: `Report position statistics, kind and color frequencies, nearest-neighbor
distances and footprint overlaps for a layout.

For random layouts the generator for the same seed is also checked for
uniformity: --draws values are binned and compared against a uniform
distribution with a chi-square test.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := lf.resolve(cmd, osLookup)
			if err != nil {
				return err
			}
			opts.Logger = c.Logger
			return c.runInspect(cmd, opts, draws, bins, alpha)
		},
	}

	lf.register(cmd)
	cmd.Flags().IntVar(&draws, "draws", defaultDraws, "draws for the uniformity check")
	cmd.Flags().IntVar(&bins, "bins", defaultBins, "histogram bins for the uniformity check")
	cmd.Flags().Float64Var(&alpha, "alpha", defaultAlpha, "significance level for the uniformity check")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, opts pipeline.Options, draws, bins int, alpha float64) error {
	l, err := c.newRunner().ComputeLayout(cmd.Context(), opts)
	if err != nil {
		return err
	}
	report, err := inspect.Analyze(l)
	if err != nil {
		return err
	}

	printSuccess("%s layout", l.Variant)
	printStats(report.Objects, 0, pipeline.Fingerprint(l))
	printNewline()

	if report.Objects > 0 {
		fmt.Println(summaryTable(report))
		printKeyValue("overlaps", strconv.Itoa(report.Overlaps))
	}
	if len(report.KindCounts) > 0 {
		names := make([]string, len(l.Catalog))
		for i, k := range l.Catalog {
			names[i] = k.Name
		}
		printKeyValue("kinds", countsLine(names, report.KindCounts))
		colors := make([]string, len(l.Palette))
		for i, col := range l.Palette {
			colors[i] = colorStyle(col).Render(col.String())
		}
		printKeyValue("colors", countsLine(colors, report.ColorCounts))
	}

	if l.IsStatic() {
		return nil
	}

	src, err := sequence.NewSource(sequence.Algorithm(opts.Generator), opts.Seed)
	if err != nil {
		return err
	}
	u, err := inspect.CheckUniformity(src, draws, bins)
	if err != nil {
		return err
	}
	printNewline()
	detail := fmt.Sprintf("%s generator, %d draws in %d bins: χ² = %.2f, p = %.4f", opts.Generator, u.Draws, u.Bins, u.ChiSquare, u.PValue)
	if u.Uniform(alpha) {
		printSuccess("%s", detail)
	} else {
		printWarning("%s (not uniform at α = %g)", detail, alpha)
	}
	return nil
}

// summaryTable renders the per-axis and nearest-neighbor summaries.
func summaryTable(r *inspect.Report) string {
	row := func(name string, s inspect.Summary) []string {
		f := func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
		return []string{name, f(s.Mean), f(s.StdDev), f(s.Min), f(s.Median), f(s.P95), f(s.Max)}
	}
	rows := [][]string{row("x", r.X), row("z", r.Z)}
	if r.Objects > 1 {
		rows = append(rows, row("nearest", r.Nearest))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "mean", "stddev", "min", "median", "p95", "max").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite).Align(lipgloss.Right)
			}
		}).
		Render()
}

func countsLine(names []string, counts []int) string {
	line := ""
	for i, n := range counts {
		if i > 0 {
			line += "  "
		}
		line += fmt.Sprintf("%s %s", names[i], StyleNumber.Render(strconv.Itoa(n)))
	}
	return line
}
