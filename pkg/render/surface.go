package render

import "image/color"

// Point is a position in device pixels.
type Point struct {
	X, Y float64
}

// Surface is a drawing target addressed in device pixels.
type Surface interface {
	// Resize sets the surface size. Implementations may drop the content.
	Resize(w, h int)
	// Clear fills the whole surface.
	Clear(c color.Color)
	// Line strokes a segment. A non-empty dash alternates on/off lengths.
	Line(a, b Point, width float64, c color.Color, dash []float64)
	// Polygon fills a closed polygon.
	Polygon(pts []Point, fill color.Color)
	// Circle fills and then strokes a circle. A nil color skips that part.
	Circle(center Point, r float64, fill, stroke color.Color)
	// Text draws s horizontally centered on x with its baseline at y.
	Text(s string, x, y, size float64, c color.Color)
}

// Op kinds recorded by Recorder.
const (
	OpResize  = "resize"
	OpClear   = "clear"
	OpLine    = "line"
	OpPolygon = "polygon"
	OpCircle  = "circle"
	OpText    = "text"
)

// Op is one recorded drawing operation.
type Op struct {
	Kind   string
	Points []Point
	R      float64
	Width  float64
	Dash   []float64
	Fill   color.Color
	Stroke color.Color
	Text   string
	Size   float64
	W, H   int
}

// Recorder is a Surface that keeps every operation, for tests and
// structured export.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Resize(w, h int) {
	r.Ops = append(r.Ops, Op{Kind: OpResize, W: w, H: h})
}

func (r *Recorder) Clear(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Fill: c})
}

func (r *Recorder) Line(a, b Point, width float64, c color.Color, dash []float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: []Point{a, b}, Width: width, Stroke: c, Dash: dash})
}

func (r *Recorder) Polygon(pts []Point, fill color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpPolygon, Points: append([]Point(nil), pts...), Fill: fill})
}

func (r *Recorder) Circle(center Point, radius float64, fill, stroke color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Points: []Point{center}, R: radius, Fill: fill, Stroke: stroke})
}

func (r *Recorder) Text(s string, x, y, size float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Points: []Point{{x, y}}, Text: s, Size: size, Fill: c})
}

// Filter returns the recorded operations of the given kind.
func (r *Recorder) Filter(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops all recorded operations.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
