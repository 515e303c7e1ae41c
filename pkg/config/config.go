// Package config holds the tunable options of the explorer: simulation
// constants, force strengths, node geometry, zoom limits and colors.
//
// Options are plain values with TOML tags. Start from [Default] and
// override from a file with [Load]; keys absent from the file keep their
// default value:
//
//	# depweb.toml
//	ticks_per_second = 30
//
//	[charge]
//	strength = -900
//
//	[colors]
//	background = "#101010"
package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	derrors "github.com/matzehuels/depweb/pkg/errors"
)

// Options configures a session. The zero value is not usable; use Default.
type Options struct {
	GenesisTicks   int     `toml:"genesis_ticks"`   // Synchronous ticks before the first paint
	AlphaGenesis   float64 `toml:"alpha_genesis"`   // Alpha and alpha target during genesis
	AlphaInitial   float64 `toml:"alpha_initial"`   // Alpha right after genesis
	AlphaTarget    float64 `toml:"alpha_target"`    // Steady-state alpha target
	AlphaDecay     float64 `toml:"alpha_decay"`     // Fraction of the way alpha moves toward its target per tick
	AlphaDrag      float64 `toml:"alpha_drag"`      // Alpha target while a node is held
	VelocityDecay  float64 `toml:"velocity_decay"`  // Fraction of velocity lost per tick
	TicksPerSecond float64 `toml:"ticks_per_second"` // Simulation rate, independent of paint rate

	Charge  ChargeOptions  `toml:"charge"`
	Center  CenterOptions  `toml:"center"`
	Collide CollideOptions `toml:"collide"`
	Link    LinkOptions    `toml:"link"`
	Gravity GravityOptions `toml:"gravity"`

	NodeRadiusInner float64 `toml:"node_radius_inner"` // Drawn node radius (world units)
	NodeRadiusOuter float64 `toml:"node_radius_outer"` // Collision, hit-test and highlight radius

	ZoomFactor  float64 `toml:"zoom_factor"`  // Multiplier per wheel notch
	ZoomMin     float64 `toml:"zoom_min"`     // Percent
	ZoomMax     float64 `toml:"zoom_max"`     // Percent
	ZoomStep    float64 `toml:"zoom_step"`    // Percent per keyboard step
	ZoomDefault float64 `toml:"zoom_default"` // Percent

	LineDash []float64 `toml:"line_dash"` // Dash pattern in device pixels for arrowless mode

	// UndirectedWeights are relationship types without a direction. When the
	// enabled filter is made of these alone, edges are dashed and arrowless.
	UndirectedWeights []string `toml:"undirected_weights"`

	Colors Colors `toml:"colors"`
}

// ChargeOptions configures the pairwise many-body force.
type ChargeOptions struct {
	Strength    float64 `toml:"strength"`     // Negative repels
	Theta       float64 `toml:"theta"`        // Barnes-Hut accuracy; 0 is exact
	DistanceMin float64 `toml:"distance_min"` // Distances below this are clamped
	DistanceMax float64 `toml:"distance_max"` // 0 means unbounded
}

// CenterOptions configures the pull toward the origin.
type CenterOptions struct {
	Strength float64 `toml:"strength"`
}

// CollideOptions configures overlap relaxation.
type CollideOptions struct {
	Strength   float64 `toml:"strength"`
	Iterations int     `toml:"iterations"`
}

// LinkOptions configures edge springs.
type LinkOptions struct {
	LikeStrength   float64 `toml:"like_strength"`   // Both endpoints in the same group
	UnlikeStrength float64 `toml:"unlike_strength"` // Endpoints in different groups
	Distance       float64 `toml:"distance"`        // Rest length
	Iterations     int     `toml:"iterations"`
}

// GravityOptions configures the pull toward each group's centroid.
type GravityOptions struct {
	Strength float64 `toml:"strength"`
}

// Colors are "#rrggbb" or "#rrggbbaa" strings.
type Colors struct {
	Background            string `toml:"background"`
	NodeStrokeNormal      string `toml:"node_stroke_normal"`
	HighlightStrokeTarget string `toml:"highlight_stroke_target"`
	HighlightFillTarget   string `toml:"highlight_fill_target"`
	HighlightStrokeActive string `toml:"highlight_stroke_active"`
	HighlightFillActive   string `toml:"highlight_fill_active"`
	Tips                  string `toml:"tips"`
	EdgeNormal            string `toml:"edge_normal"`
	EdgeDark              string `toml:"edge_dark"`
	EdgeLight             string `toml:"edge_light"`
}

// Default returns the stock options.
func Default() Options {
	return Options{
		GenesisTicks:   30,
		AlphaGenesis:   1,
		AlphaInitial:   0.7,
		AlphaTarget:    0.005,
		AlphaDecay:     0.01,
		AlphaDrag:      0.15,
		VelocityDecay:  0.4,
		TicksPerSecond: 60,

		Charge:  ChargeOptions{Strength: -600, Theta: 0.9, DistanceMin: 1},
		Center:  CenterOptions{Strength: 0.1},
		Collide: CollideOptions{Strength: 0.8, Iterations: 1},
		Link:    LinkOptions{LikeStrength: 0.06, UnlikeStrength: 0.006, Distance: 30, Iterations: 1},
		Gravity: GravityOptions{Strength: 0.25},

		NodeRadiusInner: 4,
		NodeRadiusOuter: 20,

		ZoomFactor:  1.1,
		ZoomMin:     25,
		ZoomMax:     500,
		ZoomStep:    10,
		ZoomDefault: 100,

		LineDash:          []float64{5, 5},
		UndirectedWeights: []string{"Cochange"},

		Colors: Colors{
			Background:            "#ffffff",
			NodeStrokeNormal:      "#0000003d",
			HighlightStrokeTarget: "#00000057",
			HighlightFillTarget:   "#0000000d",
			HighlightStrokeActive: "#000000b0",
			HighlightFillActive:   "#0000001c",
			Tips:                  "#000000",
			EdgeNormal:            "#000000",
			EdgeDark:              "#000000b0",
			EdgeLight:             "#00000014",
		},
	}
}

// Load reads a TOML file over the defaults and validates the result.
// Unknown keys are rejected so a typo never silently falls back to a default.
func Load(path string) (Options, error) {
	opts := Default()
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, derrors.Wrap(derrors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return Options{}, derrors.Wrap(derrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, derrors.New(derrors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks ranges that would otherwise make the simulation or the
// view transform degenerate.
func (o Options) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{o.GenesisTicks >= 0, "genesis_ticks must be >= 0"},
		{o.TicksPerSecond > 0, "ticks_per_second must be > 0"},
		{inUnit(o.AlphaDecay), "alpha_decay must be in [0, 1]"},
		{inUnit(o.VelocityDecay), "velocity_decay must be in [0, 1]"},
		{inUnit(o.AlphaTarget) && inUnit(o.AlphaDrag) && inUnit(o.AlphaInitial) && inUnit(o.AlphaGenesis), "alpha values must be in [0, 1]"},
		{o.Charge.Theta >= 0, "charge.theta must be >= 0"},
		{o.Charge.DistanceMin >= 0 && o.Charge.DistanceMax >= 0, "charge distances must be >= 0"},
		{inUnit(o.Collide.Strength), "collide.strength must be in [0, 1]"},
		{o.Collide.Iterations >= 1, "collide.iterations must be >= 1"},
		{o.Link.Iterations >= 1, "link.iterations must be >= 1"},
		{o.Link.Distance >= 0, "link.distance must be >= 0"},
		{o.NodeRadiusInner > 0 && o.NodeRadiusOuter > 0, "node radii must be > 0"},
		{o.ZoomMin > 0 && o.ZoomMin <= o.ZoomMax, "zoom_min must be > 0 and <= zoom_max"},
		{o.ZoomDefault >= o.ZoomMin && o.ZoomDefault <= o.ZoomMax, "zoom_default must be within [zoom_min, zoom_max]"},
		{o.ZoomStep > 0, "zoom_step must be > 0"},
		{o.ZoomFactor > 1, "zoom_factor must be > 1"},
	}
	for _, c := range checks {
		if !c.ok {
			return derrors.New(derrors.ErrCodeInvalidConfig, "%s", c.msg)
		}
	}
	for _, name := range o.UndirectedWeights {
		if err := derrors.ValidateWeightName(name); err != nil {
			return derrors.Wrap(derrors.ErrCodeInvalidConfig, err, "undirected_weights")
		}
	}
	return nil
}

// MsPerTick returns the duration of one simulation tick in milliseconds.
func (o Options) MsPerTick() float64 {
	return 1000 / o.TicksPerSecond
}

// String summarizes the options that most affect the layout, for debug logs.
func (o Options) String() string {
	return fmt.Sprintf("tps=%g charge=%g center=%g collide=%g/%d link=%g/%g gravity=%g",
		o.TicksPerSecond, o.Charge.Strength, o.Center.Strength,
		o.Collide.Strength, o.Collide.Iterations,
		o.Link.LikeStrength, o.Link.UnlikeStrength, o.Gravity.Strength)
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
