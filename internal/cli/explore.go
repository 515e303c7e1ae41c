package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	derrors "github.com/matzehuels/depweb/pkg/errors"
	"github.com/matzehuels/depweb/pkg/render"
	"github.com/matzehuels/depweb/pkg/session"
)

// exploreOpts holds the command-line flags for the explore command.
type exploreOpts struct {
	cell    float64 // logical pixels per terminal column
	fps     int     // repaint rate
	logFile string  // log destination while the terminal is taken over
	session sessionFlags
}

// exploreCommand creates the explore command for the terminal explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	opts := exploreOpts{cell: 8, fps: 30}

	cmd := &cobra.Command{
		Use:   "explore [matrix.json] [clustering.json]",
		Short: "Explore the graph interactively in the terminal",
		Long: `Explore the graph interactively in the terminal.

The graph is drawn with half-block characters, two pixels per cell, and
animates while the layout settles. Click a node to select it, click a second
connected node or an edge to select a dependency, drag nodes to move them and
drag the background to pan. Number keys toggle relationship types.

The terminal needs true color and mouse support.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeInputFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.cell, "cell", opts.cell, "logical pixels per terminal column")
	cmd.Flags().IntVar(&opts.fps, "fps", opts.fps, "repaint rate")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while exploring")
	opts.session.register(cmd)

	return cmd
}

// runExplore opens a session drawing onto a raster and hands it to
// bubbletea until the user quits.
func (c *CLI) runExplore(ctx context.Context, args []string, opts *exploreOpts) error {
	if opts.cell <= 0 {
		return derrors.New(derrors.ErrCodeInvalidInput, "--cell must be > 0, got %g", opts.cell)
	}

	restore, err := c.redirectLog(opts.logFile)
	if err != nil {
		return err
	}
	defer restore()

	raster := render.NewRaster(1, 1, render.WithLabels(false))
	s, err := c.openSession(ctx, args, &opts.session, session.WithSurface(raster))
	if err != nil {
		return err
	}
	defer s.Stop()

	p := tea.NewProgram(
		NewExploreModel(s, raster, opts.cell, opts.fps),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}

// redirectLog sends the CLI log to path, or discards it when path is
// empty, until the returned func is called.
func (c *CLI) redirectLog(path string) (func(), error) {
	if path == "" {
		prev := c.setLogOutput(io.Discard)
		return func() { c.setLogOutput(prev) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	prev := c.setLogOutput(f)
	return func() {
		c.setLogOutput(prev)
		f.Close()
	}, nil
}
