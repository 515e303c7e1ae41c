package cli

import (
	"context"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depweb/pkg/buildinfo"
	"github.com/matzehuels/depweb/pkg/config"
	derrors "github.com/matzehuels/depweb/pkg/errors"
	pkgio "github.com/matzehuels/depweb/pkg/io"
	"github.com/matzehuels/depweb/pkg/model"
	"github.com/matzehuels/depweb/pkg/observability"
	"github.com/matzehuels/depweb/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "depweb"

	// hostFPS is the frame rate of headless runs. The simulation rate is
	// set separately by ticks_per_second.
	hostFPS = 60

	defaultWidth  = 800
	defaultHeight = 600
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

	logOut     io.Writer // Writer Logger currently writes to
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), logOut: w}
}

// setLogOutput points the logger at w and returns the writer it replaced.
func (c *CLI) setLogOutput(w io.Writer) io.Writer {
	prev := c.logOut
	c.Logger.SetOutput(w)
	c.logOut = w
	return prev
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Depweb explores dependency matrices as force-directed graphs",
		Long: `Depweb turns a dependency structure matrix and its clustering into an
interactive force-directed graph. Nodes are colored by cluster, edges can be
filtered by relationship type, and a node or an edge can be selected to list
what it depends on and what depends on it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			registerHooks(c.Logger)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML file overriding simulation, zoom and color defaults")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.windowCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Session Setup
// =============================================================================

// sessionFlags are the flags shared by every command that opens a session.
type sessionFlags struct {
	weights   []string
	selection []string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.weights, "weights", "w", nil, "enabled relationship types (default: all)")
	cmd.Flags().StringSliceVarP(&f.selection, "select", "s", nil, "variables to select, in click order")
}

// loadOptions returns the defaults or the --config file laid over them.
func (c *CLI) loadOptions() (config.Options, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	c.Logger.Debugf("Loading config %s", c.configPath)
	return config.Load(c.configPath)
}

// loadGraph reads and builds the graph of a matrix/clustering file pair.
func loadGraph(ctx context.Context, matrixPath, clusteringPath string) (*model.Graph, error) {
	logger := loggerFromContext(ctx)
	start := time.Now()
	g, err := pkgio.Load(matrixPath, clusteringPath)
	if err != nil {
		return nil, err
	}
	observability.Simulation().OnBuild(g.NodeCount(), g.EdgeCount(), g.GroupCount(), time.Since(start))
	logger.Infof("Loaded %s: %d variables, %d edges, %d clusters", filepath.Base(matrixPath), g.NodeCount(), g.EdgeCount(), g.GroupCount())
	return g, nil
}

// openSession loads the input files and starts a session with the weight
// filter and selection from f applied.
func (c *CLI) openSession(ctx context.Context, args []string, f *sessionFlags, options ...session.Option) (*session.Session, error) {
	opts, err := c.loadOptions()
	if err != nil {
		return nil, err
	}
	g, err := loadGraph(ctx, args[0], args[1])
	if err != nil {
		return nil, err
	}
	if err := checkWeights(g, f.weights); err != nil {
		return nil, err
	}

	options = append([]session.Option{session.WithLogger(c.Logger)}, options...)
	s, err := session.New(g, opts, options...)
	if err != nil {
		return nil, err
	}
	if len(f.weights) > 0 {
		s.SetEnabledWeights(f.weights)
	}
	if len(f.selection) > 0 {
		if err := s.Select(f.selection...); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// checkWeights rejects weight names that no edge carries.
func checkWeights(g *model.Graph, names []string) error {
	known := g.WeightNames()
	for _, name := range names {
		if !slices.Contains(known, name) {
			return derrors.New(derrors.ErrCodeInvalidInput, "unknown weight %q (have %s)", name, strings.Join(known, ", "))
		}
	}
	return nil
}

// simulate runs s for the given wall time at hostFPS, as a host would.
// report, if non-nil, receives the tick count and alpha after every frame.
func simulate(ctx context.Context, s *session.Session, seconds float64, report func(ticks int, alpha float64)) error {
	frames := int(seconds * hostFPS)
	for i := 1; i <= frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Frame(time.Duration(i) * time.Second / hostFPS)
		if report != nil {
			report(s.Ticks(), s.Alpha())
		}
	}
	return nil
}

// basePath derives the output path without extension. An empty output
// strips the extension from the matrix file name.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
