package session

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/depweb/pkg/config"
	derrors "github.com/matzehuels/depweb/pkg/errors"
	"github.com/matzehuels/depweb/pkg/model"
	"github.com/matzehuels/depweb/pkg/observability"
	"github.com/matzehuels/depweb/pkg/render"
)

// A → B (Call), B → C (Cochange), C → A (Call).
func testGraph(t *testing.T) *model.Graph {
	t.Helper()
	m := model.Matrix{
		Variables: []string{"A", "B", "C"},
		Cells: []model.Cell{
			{Src: 0, Dest: 1, Values: map[string]float64{"Call": 1}},
			{Src: 1, Dest: 2, Values: map[string]float64{"Cochange": 2}},
			{Src: 2, Dest: 0, Values: map[string]float64{"Call": 3}},
		},
	}
	c := model.Clustering{Structure: []model.ClusterEntry{
		{Type: model.EntryGroup, Name: "core", Nested: []model.ClusterEntry{
			{Type: model.EntryItem, Name: "A"},
			{Type: model.EntryItem, Name: "B"},
		}},
		{Type: model.EntryGroup, Name: "util", Nested: []model.ClusterEntry{
			{Type: model.EntryItem, Name: "C"},
		}},
	}}
	g, err := model.Build(m, c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func newSession(t *testing.T, options ...Option) *Session {
	t.Helper()
	s, err := New(testGraph(t), config.Default(), options...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func edgeNames(edges []*model.Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.Source.Name + "->" + e.Target.Name
	}
	return out
}

func nodeNames(nodes []*model.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

type selectionRecorder struct {
	observability.NoopSimulationHooks
	selections [][]string
	genesis    int
	frames     int
}

func (r *selectionRecorder) OnSelection(names []string) {
	r.selections = append(r.selections, names)
}

func (r *selectionRecorder) OnGenesis(int, time.Duration) { r.genesis++ }

func (r *selectionRecorder) OnFrame(int, int, float64, time.Duration) { r.frames++ }

func TestNew(t *testing.T) {
	s := newSession(t)

	if s.ID == "" {
		t.Error("ID is empty")
	}
	if s.Ticks() != 0 {
		t.Errorf("Ticks() = %d, want 0", s.Ticks())
	}
	opts := config.Default()
	if s.Alpha() != opts.AlphaInitial {
		t.Errorf("Alpha() = %v, want %v", s.Alpha(), opts.AlphaInitial)
	}
	if s.Zoom() != opts.ZoomDefault {
		t.Errorf("Zoom() = %v, want %v", s.Zoom(), opts.ZoomDefault)
	}
	if len(s.Selection()) != 0 {
		t.Errorf("Selection() = %v, want empty", nodeNames(s.Selection()))
	}
	for _, n := range s.Graph().Nodes {
		if n.X == 0 && n.Y == 0 {
			t.Errorf("node %s still at origin after genesis", n.Name)
		}
	}
}

func TestNewInvalidOptions(t *testing.T) {
	opts := config.Default()
	opts.TicksPerSecond = 0
	if _, err := New(testGraph(t), opts); !derrors.Is(err, derrors.ErrCodeInvalidConfig) {
		t.Errorf("New() error = %v, want INVALID_CONFIG", err)
	}
}

func TestFrame(t *testing.T) {
	rec := &render.Recorder{}
	s := newSession(t, WithSurface(rec), WithSize(200, 100, 2))

	if got := s.Frame(100 * time.Millisecond); got != 6 {
		t.Errorf("Frame(100ms) = %d, want 6", got)
	}
	if got := s.Frame(100 * time.Millisecond); got != 0 {
		t.Errorf("repeated Frame(100ms) = %d, want 0", got)
	}
	if s.Ticks() != 6 {
		t.Errorf("Ticks() = %d, want 6", s.Ticks())
	}

	resizes := rec.Filter(render.OpResize)
	if len(resizes) != 2 {
		t.Fatalf("resize ops = %d, want one per frame", len(resizes))
	}
	if resizes[0].W != 400 || resizes[0].H != 200 {
		t.Errorf("device size = %dx%d, want 400x200", resizes[0].W, resizes[0].H)
	}
	if got := len(rec.Filter(render.OpCircle)); got != 6 {
		t.Errorf("circle ops = %d, want 6", got)
	}
}

func TestFrameWithoutSurface(t *testing.T) {
	s := newSession(t)
	if got := s.Frame(50 * time.Millisecond); got != 3 {
		t.Errorf("Frame(50ms) = %d, want 3", got)
	}
}

func TestStop(t *testing.T) {
	s := newSession(t)
	s.Frame(16 * time.Millisecond)
	s.Stop()
	if got := s.Frame(time.Second); got != 0 {
		t.Errorf("Frame after Stop = %d, want 0", got)
	}
}

func TestResize(t *testing.T) {
	s := newSession(t)
	s.Resize(300, 150, 1.5)
	f := s.RenderFrame()
	if f.Width != 300 || f.Height != 150 || f.DPR != 1.5 {
		t.Errorf("frame size = %vx%v@%v, want 300x150@1.5", f.Width, f.Height, f.DPR)
	}

	s.Resize(-1, 0, 0)
	f = s.RenderFrame()
	if f.Width != 300 || f.Height != 150 || f.DPR != 1.5 {
		t.Errorf("invalid resize changed frame to %vx%v@%v", f.Width, f.Height, f.DPR)
	}
	if w, h := s.Controller().Size(); w != 300 || h != 150 {
		t.Errorf("controller size = %vx%v, want 300x150", w, h)
	}
}

func TestSingleSelection(t *testing.T) {
	s := newSession(t)
	if err := s.Select("A"); err != nil {
		t.Fatalf("Select: %v", err)
	}

	if got := edgeNames(s.DependsOn()); !slices.Equal(got, []string{"A->B"}) {
		t.Errorf("DependsOn() = %v, want [A->B]", got)
	}
	if got := edgeNames(s.DependedOnBy()); !slices.Equal(got, []string{"C->A"}) {
		t.Errorf("DependedOnBy() = %v, want [C->A]", got)
	}
	if _, ok := s.SelectedEdge(); ok {
		t.Error("SelectedEdge() ok with a single node selected")
	}
}

func TestPairSelection(t *testing.T) {
	s := newSession(t)
	if err := s.Select("B", "A"); err != nil {
		t.Fatalf("Select: %v", err)
	}

	if got := nodeNames(s.Selection()); !slices.Equal(got, []string{"B", "A"}) {
		t.Fatalf("Selection() = %v, want [B A]", got)
	}
	if got := edgeNames(s.DependsOn()); len(got) != 0 {
		t.Errorf("DependsOn() = %v, want empty", got)
	}
	if got := edgeNames(s.DependedOnBy()); !slices.Equal(got, []string{"A->B"}) {
		t.Errorf("DependedOnBy() = %v, want [A->B]", got)
	}
	e, ok := s.SelectedEdge()
	if !ok {
		t.Fatal("SelectedEdge() not found")
	}
	if e.Source.Name != "A" || e.Target.Name != "B" {
		t.Errorf("SelectedEdge() = %s->%s, want A->B", e.Source.Name, e.Target.Name)
	}
}

func TestSelectUnconnectedCollapses(t *testing.T) {
	s := newSession(t)
	s.SetEnabledWeights([]string{"Call"})
	if err := s.Select("A", "B", "C"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	// A-B pair, then C drops A; B and C are not joined by a Call edge.
	if got := nodeNames(s.Selection()); !slices.Equal(got, []string{"C"}) {
		t.Errorf("Selection() = %v, want [C]", got)
	}
}

func TestSelectUnknown(t *testing.T) {
	s := newSession(t)
	if err := s.Select("A"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	err := s.Select("A", "nope")
	if !derrors.Is(err, derrors.ErrCodeNodeNotFound) {
		t.Errorf("Select(nope) error = %v, want NODE_NOT_FOUND", err)
	}
	if got := nodeNames(s.Selection()); !slices.Equal(got, []string{"A"}) {
		t.Errorf("Selection() after failed Select = %v, want [A]", got)
	}
	var de *derrors.Error
	if !errors.As(err, &de) {
		t.Errorf("error %T is not a *errors.Error", err)
	}
}

func TestSetEnabledWeights(t *testing.T) {
	s := newSession(t)
	if s.Dashed() {
		t.Error("Dashed() with Call enabled")
	}
	if err := s.Select("A", "B"); err != nil {
		t.Fatalf("Select: %v", err)
	}

	s.SetEnabledWeights([]string{"Cochange"})

	if got := s.EnabledWeights(); !slices.Equal(got, []string{"Cochange"}) {
		t.Errorf("EnabledWeights() = %v, want [Cochange]", got)
	}
	if !s.Dashed() {
		t.Error("Dashed() = false with only Cochange enabled")
	}
	if len(s.Selection()) != 0 {
		t.Errorf("Selection() = %v, want cleared pair", nodeNames(s.Selection()))
	}
	if !s.RenderFrame().Dashed {
		t.Error("RenderFrame().Dashed = false")
	}
}

func TestZoom(t *testing.T) {
	s := newSession(t)
	s.SetZoom(10_000)
	if s.Zoom() != s.Options().ZoomMax {
		t.Errorf("Zoom() = %v, want clamp to %v", s.Zoom(), s.Options().ZoomMax)
	}
	s.ResetView()
	if s.Zoom() != s.Options().ZoomDefault {
		t.Errorf("Zoom() after ResetView = %v, want %v", s.Zoom(), s.Options().ZoomDefault)
	}
}

func TestLayout(t *testing.T) {
	s := newSession(t)
	s.Frame(50 * time.Millisecond)
	if err := s.Select("C"); err != nil {
		t.Fatalf("Select: %v", err)
	}

	l := s.Layout()
	if l.Session != s.ID {
		t.Errorf("Session = %q, want %q", l.Session, s.ID)
	}
	if l.Ticks != 3 {
		t.Errorf("Ticks = %d, want 3", l.Ticks)
	}
	if l.Zoom != s.Zoom() {
		t.Errorf("Zoom = %v, want %v", l.Zoom, s.Zoom())
	}
	if !slices.Equal(l.Selection, []string{"C"}) {
		t.Errorf("Selection = %v, want [C]", l.Selection)
	}
	if len(l.Nodes) != 3 || len(l.Edges) != 3 {
		t.Errorf("layout has %d nodes, %d edges, want 3, 3", len(l.Nodes), len(l.Edges))
	}
}

func TestHooks(t *testing.T) {
	rec := &selectionRecorder{}
	observability.SetSimulationHooks(rec)
	t.Cleanup(observability.Reset)

	s := newSession(t)
	if rec.genesis != 1 {
		t.Errorf("OnGenesis calls = %d, want 1", rec.genesis)
	}
	s.Frame(16 * time.Millisecond)
	if rec.frames != 1 {
		t.Errorf("OnFrame calls = %d, want 1", rec.frames)
	}

	if err := s.Select("A"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := s.Select("A"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(rec.selections) != 1 || !slices.Equal(rec.selections[0], []string{"A"}) {
		t.Errorf("OnSelection calls = %v, want [[A]]", rec.selections)
	}
}
