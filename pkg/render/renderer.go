package render

import (
	"image/color"
	"math"

	"github.com/matzehuels/depweb/pkg/config"
	"github.com/matzehuels/depweb/pkg/input"
	"github.com/matzehuels/depweb/pkg/model"
)

// Arrowhead geometry in device pixels, from the tip back along the edge.
const (
	arrowLength    = 20
	arrowHalfWidth = 5
)

// Label geometry.
const (
	labelSize = 20 // Device pixels at DPR 1
	labelGap  = 2  // World units between the inner radius and the baseline
)

// Frame is everything one paint reads.
type Frame struct {
	Graph     *model.Graph
	Selection []*model.Node
	Hover     *model.Node
	View      input.View

	// Width and Height are the logical size of the drawing area.
	Width, Height float64
	DPR           float64

	// Dashed draws edges dashed and without arrowheads.
	Dashed bool
}

// Renderer paints frames with a fixed set of options.
type Renderer struct {
	opts    config.Options
	palette Palette
}

// New returns a renderer for opts. It fails if a configured color does
// not parse.
func New(opts config.Options) (*Renderer, error) {
	p, err := NewPalette(opts.Colors)
	if err != nil {
		return nil, err
	}
	return &Renderer{opts: opts, palette: p}, nil
}

// NewPalette parses every configured color.
func NewPalette(c config.Colors) (Palette, error) {
	var p Palette
	fields := []struct {
		dst *color.NRGBA
		src string
	}{
		{&p.Background, c.Background},
		{&p.NodeStrokeNormal, c.NodeStrokeNormal},
		{&p.HighlightStrokeTarget, c.HighlightStrokeTarget},
		{&p.HighlightFillTarget, c.HighlightFillTarget},
		{&p.HighlightStrokeActive, c.HighlightStrokeActive},
		{&p.HighlightFillActive, c.HighlightFillActive},
		{&p.Tips, c.Tips},
		{&p.Edge[EdgeNormal], c.EdgeNormal},
		{&p.Edge[EdgeDark], c.EdgeDark},
		{&p.Edge[EdgeLight], c.EdgeLight},
	}
	for _, f := range fields {
		v, err := ParseColor(f.src)
		if err != nil {
			return Palette{}, err
		}
		*f.dst = v
	}
	return p, nil
}

// Palette returns the parsed colors.
func (r *Renderer) Palette() Palette { return r.palette }

// DeviceSize returns the surface size for f in device pixels.
func DeviceSize(f Frame) (int, int) {
	return int(math.Round(f.Width * dpr(f))), int(math.Round(f.Height * dpr(f)))
}

// Project maps a world position to device pixels.
func Project(f Frame, x, y float64) Point {
	sx, sy := f.View.ToScreen(x, y, f.Width, f.Height)
	d := dpr(f)
	return Point{X: sx * d, Y: sy * d}
}

func dpr(f Frame) float64 {
	if f.DPR <= 0 || math.IsNaN(f.DPR) {
		return 1
	}
	return f.DPR
}

// Draw paints f onto s.
func (r *Renderer) Draw(s Surface, f Frame) {
	w, h := DeviceSize(f)
	s.Resize(w, h)
	s.Clear(r.palette.Background)
	if f.Graph == nil {
		return
	}
	r.drawEdges(s, f)
	r.drawNodes(s, f)
	r.drawLabels(s, f)
}

func (r *Renderer) drawEdges(s Surface, f Frame) {
	var buckets [3][]*model.Edge
	for _, e := range f.Graph.Edges {
		if !e.Visible {
			continue
		}
		c := Classify(e, f.Selection)
		buckets[c] = append(buckets[c], e)
	}

	var dash []float64
	if f.Dashed {
		dash = r.opts.LineDash
	}
	for _, class := range passes {
		c := r.palette.Edge[class]
		for _, e := range buckets[class] {
			a := Project(f, e.Source.X, e.Source.Y)
			b := Project(f, e.Target.X, e.Target.Y)
			s.Line(a, b, 1, c, dash)
			if !f.Dashed {
				if tri, ok := arrowhead(a, b); ok {
					s.Polygon(tri, c)
				}
			}
		}
	}
}

// arrowhead returns the triangle with its tip on b pointing away from a.
// A zero-length edge has no direction and gets no arrowhead.
func arrowhead(a, b Point) ([]Point, bool) {
	dx, dy := a.X-b.X, a.Y-b.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil, false
	}
	ux, uy := dx/l, dy/l
	px, py := -uy, ux
	base := Point{X: b.X + ux*arrowLength, Y: b.Y + uy*arrowLength}
	return []Point{
		b,
		{X: base.X + px*arrowHalfWidth, Y: base.Y + py*arrowHalfWidth},
		{X: base.X - px*arrowHalfWidth, Y: base.Y - py*arrowHalfWidth},
	}, true
}

func (r *Renderer) drawNodes(s Surface, f Frame) {
	scale := f.View.K * dpr(f)
	inner := r.opts.NodeRadiusInner * scale
	outer := r.opts.NodeRadiusOuter * scale
	groups := len(f.Graph.Groups)

	for _, n := range f.Graph.Nodes {
		s.Circle(Project(f, n.X, n.Y), inner, GroupColor(n.Group, groups), r.palette.NodeStrokeNormal)
	}
	for _, n := range f.Selection {
		s.Circle(Project(f, n.X, n.Y), outer, r.palette.HighlightFillActive, r.palette.HighlightStrokeActive)
	}
	if n := f.Hover; n != nil {
		s.Circle(Project(f, n.X, n.Y), outer, r.palette.HighlightFillTarget, r.palette.HighlightStrokeTarget)
	}
}

func (r *Renderer) drawLabels(s Surface, f Frame) {
	d := dpr(f)
	lift := (r.opts.NodeRadiusInner + labelGap) * f.View.K * d
	label := func(n *model.Node) {
		p := Project(f, n.X, n.Y)
		s.Text(n.Name, p.X, p.Y-lift, labelSize*d, r.palette.Tips)
	}
	for _, n := range f.Selection {
		label(n)
	}
	if f.Hover != nil {
		label(f.Hover)
	}
}
