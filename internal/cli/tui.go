package cli

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/depweb/pkg/input"
	"github.com/matzehuels/depweb/pkg/model"
	"github.com/matzehuels/depweb/pkg/render"
	"github.com/matzehuels/depweb/pkg/session"
)

// halfBlock draws two vertically stacked pixels per terminal cell: the
// foreground paints the upper half, the background the lower.
const halfBlock = "▀"

// statusLines is the number of terminal rows below the canvas.
const statusLines = 3

// Status styles
var (
	statusKeyStyle   = lipgloss.NewStyle().Foreground(colorGray)
	statusOnStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	statusOffStyle   = lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true)
	statusArrowStyle = lipgloss.NewStyle().Foreground(colorCyan)
)

// frameMsg asks the model to advance and repaint.
type frameMsg time.Time

// ExploreModel is the bubbletea model of the terminal explorer. Every
// terminal cell shows two device pixels of the session's raster surface.
type ExploreModel struct {
	sess   *session.Session
	raster *render.Raster
	start  time.Time
	fps    int

	// cell is the logical width of one terminal column; a row is two cells
	// tall.
	cell       float64
	cols, rows int

	weights []string
	canvas  string
}

// NewExploreModel returns a model driving sess, which must draw onto
// raster.
func NewExploreModel(sess *session.Session, raster *render.Raster, cell float64, fps int) ExploreModel {
	m := ExploreModel{
		sess:    sess,
		raster:  raster,
		fps:     max(fps, 1),
		cell:    cell,
		weights: sess.Graph().WeightNames(),
	}
	return m.resize(80, 24)
}

func (m ExploreModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m ExploreModel) Init() tea.Cmd {
	return m.tick()
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.resize(msg.Width, msg.Height)
	case frameMsg:
		if m.start.IsZero() {
			m.start = time.Time(msg)
		}
		m.sess.Frame(time.Time(msg).Sub(m.start))
		m.canvas = halfBlocks(m.raster.RGBA())
		return m, m.tick()
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m ExploreModel) resize(cols, rows int) ExploreModel {
	m.cols, m.rows = max(cols, 1), max(rows-statusLines, 1)
	m.sess.Resize(float64(m.cols)*m.cell, float64(m.rows)*2*m.cell, 1/m.cell)
	return m
}

// toLogical maps a terminal cell to the logical pixel at its center.
func (m ExploreModel) toLogical(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * m.cell, (float64(row)*2 + 1) * m.cell
}

func (m ExploreModel) mouse(msg tea.MouseMsg) {
	ctl := m.sess.Controller()
	if msg.Y >= m.rows {
		ctl.Leave()
		return
	}
	// Press and release events repeat the position; moving to it again
	// would turn every click into a drag.
	x, y := m.toLogical(msg.X, msg.Y)
	if p := ctl.Pointer(); !p.Present || p.PhysX != x || p.PhysY != y {
		ctl.Move(x, y)
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		ctl.Wheel(1)
	case msg.Button == tea.MouseButtonWheelDown:
		ctl.Wheel(-1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		ctl.Press()
	case msg.Action == tea.MouseActionRelease:
		ctl.Release()
	}
}

// key handles keyboard shortcuts. Terminals cannot report ctrl with
// punctuation reliably, so the view shortcuts work without it.
func (m ExploreModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch k {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "x":
		m.sess.Controller().ClearSelection()
		return m, nil
	}
	if r := []rune(k); len(r) == 1 {
		if r[0] >= '1' && r[0] <= '9' {
			m.toggleWeight(int(r[0] - '1'))
			return m, nil
		}
		m.sess.Controller().Key(input.Key(r[0]), true)
	}
	return m, nil
}

// toggleWeight flips the i-th weight in name order. The last enabled
// weight cannot be turned off.
func (m ExploreModel) toggleWeight(i int) {
	if i >= len(m.weights) {
		return
	}
	name := m.weights[i]
	enabled := m.sess.EnabledWeights()
	next := make([]string, 0, len(enabled))
	found := false
	for _, w := range enabled {
		if w == name {
			found = true
			continue
		}
		next = append(next, w)
	}
	if !found {
		next = append(next, name)
	}
	if len(next) > 0 {
		m.sess.SetEnabledWeights(next)
	}
}

func (m ExploreModel) View() string {
	var b strings.Builder
	b.WriteString(m.canvas)
	b.WriteString("\n")
	b.WriteString(m.weightLine())
	b.WriteString("\n")
	b.WriteString(m.selectionLine())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("click select · drag move/pan · wheel or +/- zoom · c recenter · 1-9 weights · x clear · q quit"))
	return b.String()
}

func (m ExploreModel) weightLine() string {
	parts := make([]string, 0, len(m.weights)+1)
	parts = append(parts, statusKeyStyle.Render(fmt.Sprintf("zoom %3.0f%%", m.sess.Zoom())))
	for i, w := range m.weights {
		style := statusOffStyle
		if m.sess.Graph().IsWeightEnabled(w) {
			style = statusOnStyle
		}
		parts = append(parts, statusKeyStyle.Render(fmt.Sprintf("%d:", i+1))+style.Render(w))
	}
	return lipgloss.NewStyle().MaxWidth(m.cols).Render(strings.Join(parts, "  "))
}

func (m ExploreModel) selectionLine() string {
	sel := m.sess.Selection()
	var line string
	switch len(sel) {
	case 0:
		if h := m.sess.Controller().Hover(); h != nil {
			line = StyleValue.Render(h.Name)
		} else {
			line = StyleDim.Render("nothing selected")
		}
	case 1:
		line = StyleTitle.Render(sel[0].Name) + " " +
			statusArrowStyle.Render(iconArrow) + " " + targets(m.sess.DependsOn()) + "  " +
			statusArrowStyle.Render("←") + " " + sources(m.sess.DependedOnBy())
	case 2:
		line = StyleTitle.Render(sel[0].Name) + " " + statusArrowStyle.Render("⇄") + " " + StyleTitle.Render(sel[1].Name)
		if e, ok := m.sess.SelectedEdge(); ok {
			line += "  " + StyleDim.Render(weightsString(e.Weights))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.cols).Render(line)
}

func targets(edges []*model.Edge) string {
	names := make([]string, len(edges))
	for i, e := range edges {
		names[i] = e.Target.Name
	}
	return nameList(names)
}

func sources(edges []*model.Edge) string {
	names := make([]string, len(edges))
	for i, e := range edges {
		names[i] = e.Source.Name
	}
	return nameList(names)
}

func nameList(names []string) string {
	if len(names) == 0 {
		return StyleDim.Render("none")
	}
	return StyleValue.Render(strings.Join(names, ", "))
}

func weightsString(ws []model.Weight) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = fmt.Sprintf("%s %g", w.Name, w.Value)
	}
	return strings.Join(parts, ", ")
}

// halfBlocks renders img with one terminal cell per two stacked pixels.
// Runs of equal cells share one styled span.
func halfBlocks(img *image.RGBA) string {
	bounds := img.Bounds()
	styles := make(map[[2]color.RGBA]lipgloss.Style)
	style := func(top, bottom color.RGBA) lipgloss.Style {
		key := [2]color.RGBA{top, bottom}
		s, ok := styles[key]
		if !ok {
			s = lipgloss.NewStyle().
				Foreground(lipgloss.Color(render.Hex(top))).
				Background(lipgloss.Color(render.Hex(bottom)))
			styles[key] = s
		}
		return s
	}

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			b.WriteByte('\n')
		}
		run := 0
		var runTop, runBottom color.RGBA
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < bounds.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			top.A, bottom.A = 0xff, 0xff
			if run > 0 && (top != runTop || bottom != runBottom) {
				b.WriteString(style(runTop, runBottom).Render(strings.Repeat(halfBlock, run)))
				run = 0
			}
			runTop, runBottom = top, bottom
			run++
		}
		if run > 0 {
			b.WriteString(style(runTop, runBottom).Render(strings.Repeat(halfBlock, run)))
		}
	}
	return b.String()
}
