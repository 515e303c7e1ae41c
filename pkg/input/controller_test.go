package input

import (
	"math"
	"testing"

	"github.com/matzehuels/depweb/pkg/config"
	"github.com/matzehuels/depweb/pkg/model"
)

type alphaRecorder struct{ target float64 }

func (a *alphaRecorder) SetAlphaTarget(v float64) { a.target = v }

// fixture builds A(0,0) → B(100,0), C(0,100) with the drawing area sized so
// that pixel (100, 100) is the world origin.
func fixture(t *testing.T, extra ...model.Cell) (*Controller, *model.Graph, *alphaRecorder) {
	t.Helper()
	m := model.Matrix{
		Variables: []string{"A", "B", "C"},
		Cells:     append([]model.Cell{{Src: 0, Dest: 1, Values: map[string]float64{"Call": 1}}}, extra...),
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
	g.Nodes[1].X, g.Nodes[1].Y = 100, 0
	g.Nodes[2].X, g.Nodes[2].Y = 0, 100

	sim := &alphaRecorder{}
	ctl := NewController(g, sim, config.Default())
	ctl.Resize(200, 200)
	return ctl, g, sim
}

// moveWorld moves the pointer to world (x, y) at the default view.
func moveWorld(c *Controller, x, y float64) {
	c.Move(x+100, y+100)
}

func click(c *Controller, x, y float64) {
	moveWorld(c, x, y)
	c.Press()
	c.Release()
}

func TestHover(t *testing.T) {
	ctl, g, _ := fixture(t)

	moveWorld(ctl, 3, 4)
	if ctl.Hover() != g.Nodes[0] {
		t.Errorf("hover = %v, want A", ctl.Hover())
	}
	if ctl.State() != StateHovering {
		t.Errorf("state = %v, want hovering", ctl.State())
	}

	moveWorld(ctl, 50, 50)
	if ctl.Hover() != nil {
		t.Errorf("hover = %s, want nil", ctl.Hover().Name)
	}
	if ctl.State() != StateIdle {
		t.Errorf("state = %v, want idle", ctl.State())
	}

	moveWorld(ctl, 0, 85)
	if ctl.Hover() != g.Nodes[2] {
		t.Errorf("hover = %v, want C", ctl.Hover())
	}

	// Exactly on the threshold is outside.
	moveWorld(ctl, 20, 0)
	if ctl.Hover() != nil {
		t.Errorf("hover at outer radius = %v, want nil", ctl.Hover())
	}
}

func TestDragPinsNode(t *testing.T) {
	ctl, g, sim := fixture(t)
	a := g.Nodes[0]
	opts := config.Default()

	moveWorld(ctl, 0, 0)
	ctl.Press()
	if p, ok := a.Pinned(); !ok || p != (model.Point{X: 0, Y: 0}) {
		t.Fatalf("pinned = %v, %v; want (0, 0), true", p, ok)
	}
	if sim.target != opts.AlphaDrag {
		t.Errorf("alpha target = %g, want %g", sim.target, opts.AlphaDrag)
	}

	moveWorld(ctl, 40, -30)
	if p, _ := a.Pinned(); p != (model.Point{X: 0, Y: 0}) {
		t.Errorf("pinned before Resolve = %v, want (0, 0)", p)
	}
	ctl.Resolve()
	if p, _ := a.Pinned(); p != (model.Point{X: 40, Y: -30}) {
		t.Errorf("pinned = %v, want (40, -30)", p)
	}
	if ctl.State() != StateDragging {
		t.Errorf("state = %v, want dragging", ctl.State())
	}

	ctl.Release()
	if a.IsPinned() {
		t.Error("node still pinned after release")
	}
	if sim.target != opts.AlphaTarget {
		t.Errorf("alpha target = %g, want %g", sim.target, opts.AlphaTarget)
	}
	if len(ctl.Selection()) != 0 {
		t.Errorf("drag changed selection to %v", ctl.Selection().Names())
	}
}

func TestDragKeepsGrabOffset(t *testing.T) {
	ctl, g, _ := fixture(t)
	b := g.Nodes[1]

	moveWorld(ctl, 105, 2)
	ctl.Press()
	moveWorld(ctl, 55, 12)
	ctl.Resolve()

	if p, _ := b.Pinned(); p != (model.Point{X: 50, Y: 10}) {
		t.Errorf("pinned = %v, want (50, 10)", p)
	}
	ctl.Release()
}

func TestClickToggles(t *testing.T) {
	ctl, _, _ := fixture(t)

	steps := []struct {
		x, y float64
		want []string
	}{
		{0, 0, []string{"A"}},
		{100, 0, []string{"A", "B"}},
		{0, 0, []string{"B"}},
		{100, 0, []string{}},
	}
	for i, s := range steps {
		click(ctl, s.x, s.y)
		if got := ctl.Selection().Names(); !equalNames(got, s.want) {
			t.Errorf("step %d: selection = %v, want %v", i, got, s.want)
		}
	}
}

func TestSelectionCollapsesWithoutEdge(t *testing.T) {
	ctl, _, _ := fixture(t)

	click(ctl, 0, 0)
	click(ctl, 0, 100)
	if got := ctl.Selection().Names(); !equalNames(got, []string{"C"}) {
		t.Errorf("selection = %v, want [C]", got)
	}
}

func TestSelectionThirdDropsOldest(t *testing.T) {
	ctl, _, _ := fixture(t,
		model.Cell{Src: 1, Dest: 2, Values: map[string]float64{"Call": 1}},
		model.Cell{Src: 2, Dest: 0, Values: map[string]float64{"Call": 1}},
	)

	click(ctl, 0, 0)
	click(ctl, 100, 0)
	click(ctl, 0, 100)
	if got := ctl.Selection().Names(); !equalNames(got, []string{"B", "C"}) {
		t.Errorf("selection = %v, want [B C]", got)
	}
}

func TestClickCanvas(t *testing.T) {
	ctl, g, _ := fixture(t)

	click(ctl, 50, 8)
	if got := ctl.Selection().Names(); !equalNames(got, []string{"A", "B"}) {
		t.Fatalf("selection = %v, want [A B]", got)
	}

	click(ctl, 60, 60)
	if got := ctl.Selection(); len(got) != 0 {
		t.Errorf("selection = %v, want empty", got.Names())
	}

	g.SetEnabledWeights(nil)
	click(ctl, 50, 8)
	if got := ctl.Selection(); len(got) != 0 {
		t.Errorf("hidden edge selected: %v", got.Names())
	}
}

func TestPan(t *testing.T) {
	ctl, _, _ := fixture(t)
	click(ctl, 0, 0)

	ctl.Move(150, 150) // world (50, 50), empty
	ctl.Press()
	ctl.Move(170, 140)
	ctl.Resolve()

	v := ctl.View()
	if v.X != 20 || v.Y != -10 {
		t.Errorf("pan = (%g, %g), want (20, -10)", v.X, v.Y)
	}
	if x, y := v.ToWorld(170, 140, 200, 200); x != 50 || y != 50 {
		t.Errorf("grabbed point at (%g, %g), want (50, 50)", x, y)
	}

	ctl.Release()
	if got := ctl.Selection().Names(); !equalNames(got, []string{"A"}) {
		t.Errorf("pan changed selection to %v", got)
	}
}

func TestKeys(t *testing.T) {
	ctl, _, _ := fixture(t)
	opts := config.Default()

	for range 20 {
		ctl.Key(KeyZoomOut, true)
	}
	if ctl.Zoom() != opts.ZoomMin {
		t.Errorf("zoom = %g, want %g", ctl.Zoom(), opts.ZoomMin)
	}
	ctl.Key(KeyZoomOut, true)
	if ctl.Zoom() != opts.ZoomMin {
		t.Errorf("zoom below min: %g", ctl.Zoom())
	}

	for range 100 {
		ctl.Key(KeyZoomInAlt, true)
	}
	if ctl.Zoom() != opts.ZoomMax {
		t.Errorf("zoom = %g, want %g", ctl.Zoom(), opts.ZoomMax)
	}

	ctl.Key(KeyResetZoom, true)
	if ctl.Zoom() != opts.ZoomDefault {
		t.Errorf("zoom = %g, want %g", ctl.Zoom(), opts.ZoomDefault)
	}

	ctl.Key(KeyZoomIn, true)
	if ctl.Zoom() != opts.ZoomDefault+opts.ZoomStep {
		t.Errorf("zoom = %g, want %g", ctl.Zoom(), opts.ZoomDefault+opts.ZoomStep)
	}
	if got := ctl.View().K; math.Abs(got-1.1) > 1e-12 {
		t.Errorf("k = %g, want 1.1", got)
	}

	if !ctl.Key(KeyZoomIn, false) {
		t.Error("shortcut key without ctrl not reported")
	}
	if ctl.Zoom() != opts.ZoomDefault+opts.ZoomStep {
		t.Errorf("zoom changed without ctrl: %g", ctl.Zoom())
	}
	if ctl.Key('x', true) {
		t.Error("non-shortcut key reported as handled")
	}
}

func TestRecenter(t *testing.T) {
	ctl, _, _ := fixture(t)
	ctl.Move(150, 150)
	ctl.Press()
	ctl.Move(190, 150)
	ctl.Resolve()
	ctl.Release()
	ctl.SetZoom(250)

	ctl.Key(KeyRecenter, true)
	if v := ctl.View(); v.X != 0 || v.Y != 0 || v.K != 1 {
		t.Errorf("view = %+v, want centered at k=1", v)
	}
}

func TestWheel(t *testing.T) {
	ctl, _, _ := fixture(t)

	ctl.Wheel(1)
	if got := ctl.Zoom(); math.Abs(got-110) > 1e-9 {
		t.Errorf("zoom = %g, want 110", got)
	}
	ctl.Wheel(-2)
	if got := ctl.Zoom(); math.Abs(got-100/1.1) > 1e-9 {
		t.Errorf("zoom = %g, want %g", got, 100/1.1)
	}
	ctl.Wheel(-100)
	if got := ctl.Zoom(); got != 25 {
		t.Errorf("zoom = %g, want 25", got)
	}
	ctl.Wheel(math.NaN())
	if got := ctl.Zoom(); got != 25 {
		t.Errorf("NaN wheel changed zoom to %g", got)
	}
}

func TestMalformedEvents(t *testing.T) {
	ctl, g, _ := fixture(t)

	ctl.Press()
	if ctl.Pointer().Down {
		t.Error("press before the pointer entered was accepted")
	}

	ctl.Move(math.NaN(), 3)
	ctl.Move(5, math.Inf(1))
	if ctl.Pointer().Present {
		t.Error("non-finite move was accepted")
	}

	moveWorld(ctl, 0, 0)
	ctl.Release()
	if len(ctl.Selection()) != 0 {
		t.Error("release without press changed the selection")
	}

	ctl.Press()
	ctl.Press()
	ctl.Release()
	if got := ctl.Selection().Names(); !equalNames(got, []string{"A"}) {
		t.Errorf("selection = %v, want [A]", got)
	}
	if g.Nodes[0].IsPinned() {
		t.Error("node left pinned")
	}

	ctl.SetZoom(math.Inf(1))
	ctl.Resize(-1, 0)
	if ctl.Zoom() != 100 {
		t.Errorf("zoom = %g, want 100", ctl.Zoom())
	}
	if w, h := ctl.Size(); w != 200 || h != 200 {
		t.Errorf("size = %gx%g, want 200x200", w, h)
	}
}

func TestLeave(t *testing.T) {
	ctl, g, _ := fixture(t)

	moveWorld(ctl, 0, 0)
	ctl.Leave()
	if ctl.Hover() != nil || ctl.Pointer().Present {
		t.Error("leave kept the hover")
	}

	moveWorld(ctl, 0, 0)
	ctl.Press()
	ctl.Leave()
	if ctl.Hover() != g.Nodes[0] {
		t.Error("leave during a drag dropped the held node")
	}
	ctl.Release()
}

func TestRevalidate(t *testing.T) {
	ctl, g, _ := fixture(t)
	var calls int
	ctl.OnSelect = func(Selection) { calls++ }

	ctl.Select(g.Nodes[0], g.Nodes[1])
	if got := ctl.Selection().Names(); !equalNames(got, []string{"A", "B"}) {
		t.Fatalf("selection = %v, want [A B]", got)
	}

	ctl.Revalidate()
	if len(ctl.Selection()) != 2 {
		t.Error("connected pair dropped")
	}

	g.SetEnabledWeights([]string{"Other"})
	ctl.Revalidate()
	if len(ctl.Selection()) != 0 {
		t.Errorf("selection = %v, want empty", ctl.Selection().Names())
	}
	if calls != 2 {
		t.Errorf("OnSelect calls = %d, want 2", calls)
	}
}

func TestClosestOnSegment(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		wx, wy float64
	}{
		{"inside", 5, 3, 5, 0},
		{"before start", -4, 2, 0, 0},
		{"past end", 14, -1, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := closestOnSegment(0, 0, 10, 0, tt.x, tt.y)
			if x != tt.wx || y != tt.wy {
				t.Errorf("closest = (%g, %g), want (%g, %g)", x, y, tt.wx, tt.wy)
			}
		})
	}

	if x, y := closestOnSegment(3, 3, 3, 3, 9, 9); x != 3 || y != 3 {
		t.Errorf("degenerate segment = (%g, %g), want (3, 3)", x, y)
	}
}

func equalNames(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
