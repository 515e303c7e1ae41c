package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depweb/internal/window"
	"github.com/matzehuels/depweb/pkg/render"
	"github.com/matzehuels/depweb/pkg/session"
)

// windowCommand creates the window command for the desktop explorer.
func (c *CLI) windowCommand() *cobra.Command {
	var (
		width, height int
		flags         sessionFlags
	)

	cmd := &cobra.Command{
		Use:   "window [matrix.json] [clustering.json]",
		Short: "Explore the graph interactively in a desktop window",
		Long: `Explore the graph interactively in a desktop window.

Click a node to select it, click a second connected node or an edge to
select a dependency, drag nodes to move them and drag the background to pan.
The mouse wheel zooms; Ctrl with c, 0, - and + recenters and steps the zoom.
Escape closes the window.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeInputFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWindow(cmd.Context(), args, &flags, width, height)
		},
	}

	cmd.Flags().IntVar(&width, "width", defaultWidth, "initial window width")
	cmd.Flags().IntVar(&height, "height", defaultHeight, "initial window height")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runWindow(ctx context.Context, args []string, flags *sessionFlags, width, height int) error {
	raster := render.NewRaster(width, height)
	s, err := c.openSession(ctx, args, flags,
		session.WithSurface(raster),
		session.WithSize(float64(width), float64(height), 1),
	)
	if err != nil {
		return err
	}
	defer s.Stop()

	c.Logger.Infof("Opening window (%dx%d)", width, height)
	title := fmt.Sprintf("%s · %s", appName, filepath.Base(args[0]))
	return window.Run(window.New(s, raster), title, width, height)
}
