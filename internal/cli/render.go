package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	derrors "github.com/matzehuels/depweb/pkg/errors"
	pkgio "github.com/matzehuels/depweb/pkg/io"
	"github.com/matzehuels/depweb/pkg/observability"
	"github.com/matzehuels/depweb/pkg/render"
	"github.com/matzehuels/depweb/pkg/render/nodelink"
	"github.com/matzehuels/depweb/pkg/session"
)

// Output formats.
const (
	formatPNG  = "png"
	formatSVG  = "svg"
	formatDOT  = "dot"
	formatJSON = "json"
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatPNG: true, formatSVG: true, formatDOT: true, formatJSON: true}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path
	formats []string // png, svg, dot, json
	seconds float64  // simulated wall time after genesis
	width   float64  // logical frame width
	height  float64  // logical frame height
	dpr     float64  // device pixels per logical pixel
	labels  bool     // label every node in svg/dot output
	session sessionFlags
}

// renderCommand creates the render command for drawing snapshots.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		seconds: 5,
		width:   defaultWidth,
		height:  defaultHeight,
		dpr:     1,
	}

	cmd := &cobra.Command{
		Use:   "render [matrix.json] [clustering.json]",
		Short: "Simulate the graph and draw a snapshot",
		Long: `Simulate the graph and draw a snapshot.

PNG output is drawn exactly as the interactive hosts draw a frame: edges
shaded by the selection, nodes colored by cluster, highlight rings and
labels for the selection. SVG and DOT outputs keep the simulated positions
and let Graphviz draw them. JSON is the same document the layout command
writes.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeInputFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.seconds, "seconds", opts.seconds, "simulated wall time after genesis")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().Float64Var(&opts.dpr, "dpr", opts.dpr, "device pixel ratio of the PNG")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label every node (svg, dot)")
	opts.session.register(cmd)

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["png"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatPNG}
	}
	return strings.Split(s, ",")
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return derrors.New(derrors.ErrCodeInvalidInput, "invalid format: %s (must be 'png', 'svg', 'dot', or 'json')", f)
		}
	}
	return nil
}

// runRender simulates the graph, then encodes every requested format of
// the final frame concurrently.
func (c *CLI) runRender(ctx context.Context, args []string, opts *renderOpts) error {
	s, err := c.openSession(ctx, args, &opts.session, session.WithSize(opts.width, opts.height, opts.dpr))
	if err != nil {
		return err
	}
	defer s.Stop()

	spinner := newSpinner(os.Stderr, "Simulating")
	spinner.Start()
	prog := newProgress(c.Logger)
	if err := simulate(ctx, s, opts.seconds, spinner.Update); err != nil {
		spinner.StopWithError("Render cancelled")
		return err
	}
	spinner.Stop()
	prog.done("Simulated", "ticks", s.Ticks(), "alpha", s.Alpha())

	artifacts, err := encodeFormats(ctx, s, opts)
	if err != nil {
		return err
	}

	base := basePath(opts.output, args[0])
	printSuccess("Render complete")
	for i, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, artifacts[i], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// encodeFormats returns one artifact per requested format, in order. The
// session must not advance while it runs.
func encodeFormats(ctx context.Context, s *session.Session, opts *renderOpts) ([][]byte, error) {
	hooks := observability.Export()
	hooks.OnExportStart(ctx, opts.formats)

	artifacts := make([][]byte, len(opts.formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, format := range opts.formats {
		g.Go(func() error {
			start := time.Now()
			data, err := encodeFormat(ctx, s, format, opts.labels)
			hooks.OnExportComplete(ctx, format, len(data), time.Since(start), err)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			artifacts[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func encodeFormat(ctx context.Context, s *session.Session, format string, labels bool) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case formatPNG:
		frame := s.RenderFrame()
		raster := render.NewRaster(render.DeviceSize(frame))
		s.Renderer().Draw(raster, frame)
		if err := raster.EncodePNG(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatDOT:
		return []byte(toDOT(s, labels)), nil
	case formatSVG:
		return nodelink.RenderSVG(ctx, toDOT(s, labels))
	case formatJSON:
		if err := pkgio.WriteLayout(s.Layout(), &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, derrors.New(derrors.ErrCodeUnsupported, "unknown format: %s", format)
	}
}

func toDOT(s *session.Session, labels bool) string {
	return nodelink.ToDOT(s.Graph(), nodelink.Options{
		Palette:    s.Renderer().Palette(),
		Selection:  s.Selection(),
		NodeRadius: s.Options().NodeRadiusInner,
		Dashed:     s.Dashed(),
		Labels:     labels,
	})
}
