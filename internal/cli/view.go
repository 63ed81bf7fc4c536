package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomscene/internal/viewer"
)

// viewCommand creates the view command that opens the 3D viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		lf   layoutFlags
		vopt viewer.Options
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a layout in the 3D viewer",
		Long: `Open a layout in an interactive 3D window.

Drag with the left mouse button to orbit the camera and use the wheel to
zoom. Close the window or press Esc to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := lf.resolve(cmd, osLookup)
			if err != nil {
				return err
			}
			opts.Logger = c.Logger

			prog := newProgress(c.Logger)
			l, err := c.newRunner().ComputeLayout(ctx, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Computed %s layout with %d objects", l.Variant, l.Len()))

			vopt.Logger = c.Logger
			if vopt.Title == "" {
				vopt.Title = fmt.Sprintf("%s (%s)", appName, l.Variant)
			}
			return viewer.Run(ctx, l, vopt)
		},
	}

	lf.register(cmd)
	cmd.Flags().Int32Var(&vopt.Width, "width", viewer.DefaultWidth, "window width in pixels")
	cmd.Flags().Int32Var(&vopt.Height, "height", viewer.DefaultHeight, "window height in pixels")
	cmd.Flags().Int32Var(&vopt.FPS, "fps", viewer.DefaultFPS, "target frame rate")
	cmd.Flags().StringVar(&vopt.Title, "title", "", "window title")
	cmd.Flags().BoolVar(&vopt.HUD, "hud", true, "show layout summary and frame rate")

	return cmd
}
