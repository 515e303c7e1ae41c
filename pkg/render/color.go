package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	derrors "github.com/matzehuels/depweb/pkg/errors"
)

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(0xff)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, derrors.Wrap(derrors.ErrCodeInvalidConfig, err, "invalid color %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, derrors.Wrap(derrors.ErrCodeInvalidConfig, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// turbo samples the Turbo colormap at eleven evenly spaced stops.
var turbo = []string{
	"#23171b", "#4a58dd", "#2f9df5", "#27d7c4", "#4df884", "#95fb51",
	"#dedd32", "#ffa423", "#f65f18", "#ba2208", "#900c00",
}

var turboStops = func() []colorful.Color {
	stops := make([]colorful.Color, len(turbo))
	for i, h := range turbo {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		stops[i] = c
	}
	return stops
}()

// Colormap maps t in [0, 1] onto a continuous rainbow, interpolating
// between stops in CIE-Luv so equal steps in t read as equal steps in hue.
// t outside [0, 1] is clamped; NaN maps to 0.
func Colormap(t float64) color.NRGBA {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	seg := t * float64(len(turboStops)-1)
	i := int(seg)
	if i >= len(turboStops)-1 {
		i = len(turboStops) - 2
	}
	c := turboStops[i].BlendLuv(turboStops[i+1], seg-float64(i)).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// GroupColor returns the fill of a node in group out of n groups.
func GroupColor(group, n int) color.NRGBA {
	if n <= 0 {
		return Colormap(0)
	}
	return Colormap(float64(group) / float64(n))
}

// Palette holds the parsed colors of a config.Colors.
type Palette struct {
	Background            color.NRGBA
	NodeStrokeNormal      color.NRGBA
	HighlightStrokeTarget color.NRGBA
	HighlightFillTarget   color.NRGBA
	HighlightStrokeActive color.NRGBA
	HighlightFillActive   color.NRGBA
	Tips                  color.NRGBA
	Edge                  [3]color.NRGBA // Indexed by EdgeClass
}
