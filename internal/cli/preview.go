package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomscene/pkg/pipeline"
	"github.com/matzehuels/roomscene/pkg/render/plan"
	"github.com/matzehuels/roomscene/pkg/room"
)

// previewCommand creates the preview command: a terminal floor plan that
// steps through seeds.
func (c *CLI) previewCommand() *cobra.Command {
	var lf layoutFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse layouts as a floor plan in the terminal",
		Long: `Browse layouts as a colored floor plan in the terminal.

Use ←/→ to step the seed, s to switch between the random and static variant
and enter to keep the current layout. The chosen seed is printed on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := lf.resolve(cmd, osLookup)
			if err != nil {
				return err
			}

			m := NewPreviewModel(opts)
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			pm, ok := final.(PreviewModel)
			if !ok || !pm.Chosen {
				printDetail("No layout chosen")
				return nil
			}

			printSuccess("Chose %s layout", pm.Opts.Variant)
			printStats(pm.Layout.Len(), 0, pm.Fingerprint)
			printNewline()
			printNextStep("Render", fmt.Sprintf("%s layout --variant %s --seed %d", appName, pm.Opts.Variant, pm.Opts.Seed))
			return nil
		},
	}

	lf.register(cmd)
	return cmd
}

// =============================================================================
// PreviewModel - Interactive floor plan
// =============================================================================

var (
	previewFloorStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim)
)

// PreviewModel is the bubbletea model for the preview command.
type PreviewModel struct {
	Opts        pipeline.Options
	Layout      room.Layout
	Raster      *plan.Raster
	Fingerprint string
	Err         error
	Chosen      bool

	// Width and Height bound the raster; zero means the floor's natural
	// text size.
	Width, Height int
}

// NewPreviewModel creates a preview model and computes its first layout.
func NewPreviewModel(opts pipeline.Options) PreviewModel {
	m := PreviewModel{Opts: opts}
	m.compute()
	return m
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.Err == nil {
				m.Chosen = true
			}
			return m, tea.Quit
		case "left", "h":
			m.Opts.Seed--
			m.compute()
		case "right", "l":
			m.Opts.Seed++
			m.compute()
		case "s":
			if m.Opts.IsStatic() {
				m.Opts.Variant = string(room.VariantRandom)
			} else {
				m.Opts.Variant = string(room.VariantStatic)
			}
			m.compute()
		}
	case tea.WindowSizeMsg:
		// Leave room for the header, the frame and the legend.
		m.Width = max(msg.Width-4, 10)
		m.Height = max(msg.Height-10, 5)
		m.compute()
	}
	return m, nil
}

// compute regenerates the layout and raster for the current options.
func (m *PreviewModel) compute() {
	opts := m.Opts
	if err := opts.ValidateForLayout(); err != nil {
		m.Err = err
		return
	}
	l, _, err := pipeline.GenerateLayout(opts)
	if err != nil {
		m.Err = err
		return
	}
	cols, rows := fitTextSize(l.Env, m.Width, m.Height)
	r, err := plan.Rasterize(l, cols, rows)
	if err != nil {
		m.Err = err
		return
	}
	m.Layout, m.Raster, m.Err = l, r, nil
	m.Fingerprint = pipeline.Fingerprint(l)
}

// fitTextSize shrinks the floor's natural text size to fit width×height,
// keeping its aspect ratio.
func fitTextSize(env room.Environment, width, height int) (cols, rows int) {
	cols, rows = plan.DefaultTextSize(env)
	if width > 0 && cols > width {
		rows = max(1, rows*width/cols)
		cols = width
	}
	if height > 0 && rows > height {
		cols = max(1, cols*height/rows)
		rows = height
	}
	return cols, rows
}

func (m PreviewModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s layout", m.Opts.Variant)
	if !m.Opts.IsStatic() {
		title += fmt.Sprintf(" · seed %d", m.Opts.Seed)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ seed  s variant  ⏎ choose  q quit"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error())
		b.WriteString("\n")
		return b.String()
	}

	var grid strings.Builder
	for z, row := range m.Raster.Cells {
		if z > 0 {
			grid.WriteByte('\n')
		}
		for _, c := range row {
			glyph := string(c.Glyph)
			if c.Index < 0 {
				grid.WriteString(previewFloorStyle.Render(glyph))
			} else {
				grid.WriteString(colorStyle(c.Color).Render(glyph))
			}
		}
	}
	b.WriteString(previewFrameStyle.Render(grid.String()))
	b.WriteString("\n")

	legend := make([]string, 0, len(m.Raster.Legend))
	for _, e := range m.Raster.Legend {
		legend = append(legend, fmt.Sprintf("%c %s", e.Glyph, e.Label))
	}
	b.WriteString(StyleDim.Render(strings.Join(legend, "  ")))
	b.WriteString("\n")
	b.WriteString(statsLine(m.Layout.Len(), 0, m.Fingerprint))
	b.WriteString("\n")

	return b.String()
}
