package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/depweb/pkg/io"
)

// layoutCommand creates the layout command for computing a headless layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		seconds float64
		flags   sessionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [matrix.json] [clustering.json]",
		Short: "Compute a force-directed layout and write it as JSON",
		Long: `Compute a force-directed layout and write it as JSON.

The layout command builds the graph, runs the warm-up ticks and then lets the
simulation settle for --seconds of simulated wall time, exactly as an
interactive host would. The result lists every node position, the visible
edges with their weights, the clusters and the selection.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeInputFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args, &flags, output, seconds)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <matrix>.layout.json)")
	cmd.Flags().Float64Var(&seconds, "seconds", 5, "simulated wall time after genesis")
	flags.register(cmd)

	return cmd
}

// runLayout loads the graph, simulates it and writes the layout.
func (c *CLI) runLayout(ctx context.Context, args []string, flags *sessionFlags, output string, seconds float64) error {
	s, err := c.openSession(ctx, args, flags)
	if err != nil {
		return err
	}
	defer s.Stop()

	spinner := newSpinner(os.Stderr, fmt.Sprintf("Simulating %s", time.Duration(seconds*float64(time.Second))))
	spinner.Start()
	prog := newProgress(c.Logger)
	if err := simulate(ctx, s, seconds, spinner.Update); err != nil {
		spinner.StopWithError("Layout cancelled")
		return err
	}
	spinner.Stop()
	prog.done("Simulated", "ticks", s.Ticks(), "alpha", s.Alpha())

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", args[0]) + ".layout.json"
	}
	l := s.Layout()
	if err := pkgio.ExportLayout(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Nodes), len(l.Edges), l.Alpha)
	printNewline()
	printNextStep("Explore", fmt.Sprintf("%s explore %s %s", appName, args[0], args[1]))
	return nil
}
