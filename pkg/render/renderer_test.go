package render

import (
	"image/color"
	"testing"

	"github.com/matzehuels/depweb/pkg/config"
	derrors "github.com/matzehuels/depweb/pkg/errors"
	"github.com/matzehuels/depweb/pkg/input"
	"github.com/matzehuels/depweb/pkg/model"
)

// triangle builds A→B, B→C, C→A with A, B in one group and C in another.
func triangle(t *testing.T) *model.Graph {
	t.Helper()
	call := map[string]float64{"Call": 1}
	m := model.Matrix{
		Variables: []string{"A", "B", "C"},
		Cells: []model.Cell{
			{Src: 0, Dest: 1, Values: call},
			{Src: 1, Dest: 2, Values: call},
			{Src: 2, Dest: 0, Values: map[string]float64{"Cochange": 1}},
		},
	}
	c := model.Clustering{Structure: []model.ClusterEntry{
		{Type: model.EntryGroup, Name: "g0", Nested: []model.ClusterEntry{
			{Type: model.EntryItem, Name: "A"},
			{Type: model.EntryItem, Name: "B"},
		}},
		{Type: model.EntryGroup, Name: "g1", Nested: []model.ClusterEntry{
			{Type: model.EntryItem, Name: "C"},
		}},
	}}
	g, err := model.Build(m, c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g.Nodes[0].X, g.Nodes[0].Y = 0, 0
	g.Nodes[1].X, g.Nodes[1].Y = 30, 0
	g.Nodes[2].X, g.Nodes[2].Y = 0, 30
	return g
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(config.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func frame(g *model.Graph) Frame {
	return Frame{Graph: g, View: input.View{K: 1}, Width: 200, Height: 100, DPR: 1}
}

func TestClassify(t *testing.T) {
	g := triangle(t)
	a, b, c := g.Nodes[0], g.Nodes[1], g.Nodes[2]
	ab, bc := g.Edges[0], g.Edges[1]

	tests := []struct {
		name      string
		edge      *model.Edge
		selection []*model.Node
		want      EdgeClass
	}{
		{"no selection", ab, nil, EdgeNormal},
		{"single endpoint", ab, []*model.Node{a}, EdgeDark},
		{"single elsewhere", bc, []*model.Node{a}, EdgeLight},
		{"pair on edge", ab, []*model.Node{a, b}, EdgeDark},
		{"pair reversed", ab, []*model.Node{b, a}, EdgeDark},
		{"pair sharing one end", bc, []*model.Node{a, b}, EdgeLight},
		{"pair elsewhere", ab, []*model.Node{c, b}, EdgeLight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.edge, tt.selection); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDashed(t *testing.T) {
	undirected := []string{"Cochange"}
	tests := []struct {
		enabled []string
		want    bool
	}{
		{nil, false},
		{[]string{"Cochange"}, true},
		{[]string{"Call"}, false},
		{[]string{"Call", "Cochange"}, false},
	}
	for _, tt := range tests {
		if got := Dashed(tt.enabled, undirected); got != tt.want {
			t.Errorf("Dashed(%v) = %v, want %v", tt.enabled, got, tt.want)
		}
	}
}

func TestDrawPassOrder(t *testing.T) {
	g := triangle(t)
	r := newRenderer(t)
	rec := &Recorder{}

	f := frame(g)
	f.Selection = []*model.Node{g.Nodes[0]}
	r.Draw(rec, f)

	p := r.Palette()
	want := []color.Color{p.Edge[EdgeLight], p.Edge[EdgeDark], p.Edge[EdgeDark]}
	lines := rec.Filter(OpLine)
	if len(lines) != len(want) {
		t.Fatalf("lines = %d, want %d", len(lines), len(want))
	}
	for i, op := range lines {
		if op.Stroke != want[i] {
			t.Errorf("line %d color = %v, want %v", i, op.Stroke, want[i])
		}
	}

	if rec.Ops[0].Kind != OpResize || rec.Ops[1].Kind != OpClear {
		t.Errorf("first ops = %s, %s; want resize, clear", rec.Ops[0].Kind, rec.Ops[1].Kind)
	}
}

func TestDrawProjection(t *testing.T) {
	g := triangle(t)
	g.Nodes[0].X, g.Nodes[0].Y = 5, 5
	r := newRenderer(t)
	rec := &Recorder{}

	f := Frame{Graph: g, View: input.View{X: 10, K: 2}, Width: 100, Height: 50, DPR: 2}
	r.Draw(rec, f)

	if op := rec.Ops[0]; op.W != 200 || op.H != 100 {
		t.Errorf("resize = %dx%d, want 200x100", op.W, op.H)
	}
	circles := rec.Filter(OpCircle)
	if len(circles) != 3 {
		t.Fatalf("circles = %d, want 3", len(circles))
	}
	if got := circles[0].Points[0]; got != (Point{X: 160, Y: 70}) {
		t.Errorf("node A at %v, want (160, 70)", got)
	}
	if got := circles[0].R; got != 16 {
		t.Errorf("radius = %g, want 16", got)
	}
}

func TestDrawArrowheads(t *testing.T) {
	g := triangle(t)
	r := newRenderer(t)

	rec := &Recorder{}
	r.Draw(rec, frame(g))
	if got := len(rec.Filter(OpPolygon)); got != 3 {
		t.Errorf("arrowheads = %d, want 3", got)
	}
	for _, op := range rec.Filter(OpLine) {
		if len(op.Dash) != 0 {
			t.Errorf("solid mode line has dash %v", op.Dash)
		}
	}

	rec.Reset()
	f := frame(g)
	f.Dashed = true
	r.Draw(rec, f)
	if got := len(rec.Filter(OpPolygon)); got != 0 {
		t.Errorf("dashed mode arrowheads = %d, want 0", got)
	}
	for _, op := range rec.Filter(OpLine) {
		if len(op.Dash) != 2 {
			t.Errorf("dashed mode line dash = %v, want [5 5]", op.Dash)
		}
	}
}

func TestDrawSkipsHiddenEdges(t *testing.T) {
	g := triangle(t)
	g.SetEnabledWeights([]string{"Cochange"})
	r := newRenderer(t)
	rec := &Recorder{}
	r.Draw(rec, frame(g))

	if got := len(rec.Filter(OpLine)); got != 1 {
		t.Errorf("lines = %d, want 1", got)
	}
}

func TestDrawHighlightsAndLabels(t *testing.T) {
	g := triangle(t)
	r := newRenderer(t)
	rec := &Recorder{}

	f := frame(g)
	f.Selection = []*model.Node{g.Nodes[0]}
	f.Hover = g.Nodes[1]
	r.Draw(rec, f)

	circles := rec.Filter(OpCircle)
	if len(circles) != 5 {
		t.Fatalf("circles = %d, want 5", len(circles))
	}
	p := r.Palette()
	if circles[3].Stroke != p.HighlightStrokeActive || circles[3].R != 20 {
		t.Errorf("selection ring = %+v", circles[3])
	}
	if circles[4].Stroke != p.HighlightStrokeTarget {
		t.Errorf("hover ring stroke = %v, want %v", circles[4].Stroke, p.HighlightStrokeTarget)
	}

	texts := rec.Filter(OpText)
	if len(texts) != 2 || texts[0].Text != "A" || texts[1].Text != "B" {
		t.Fatalf("labels = %+v, want A then B", texts)
	}
	// A sits at device (100, 50); the label is lifted by inner radius + 2.
	if got := texts[0].Points[0]; got != (Point{X: 100, Y: 44}) {
		t.Errorf("label at %v, want (100, 44)", got)
	}
}

func TestArrowhead(t *testing.T) {
	tri, ok := arrowhead(Point{0, 0}, Point{100, 0})
	if !ok {
		t.Fatal("arrowhead missing")
	}
	want := []Point{{100, 0}, {80, 5}, {80, -5}}
	for i := range want {
		if tri[i] != want[i] {
			t.Errorf("tri[%d] = %v, want %v", i, tri[i], want[i])
		}
	}

	if _, ok := arrowhead(Point{3, 3}, Point{3, 3}); ok {
		t.Error("zero-length edge got an arrowhead")
	}
}

func TestNewRejectsBadColor(t *testing.T) {
	opts := config.Default()
	opts.Colors.EdgeDark = "dark"
	if _, err := New(opts); !derrors.Is(err, derrors.ErrCodeInvalidConfig) {
		t.Errorf("New error = %v, want INVALID_CONFIG", err)
	}
}
