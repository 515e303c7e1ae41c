package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/depweb/pkg/fonts"
	"github.com/matzehuels/depweb/pkg/model"
	"github.com/matzehuels/depweb/pkg/render"
)

// pointsPerInch converts world units, treated as points, to the inches
// neato expects in pinned positions.
const pointsPerInch = 72

// Options configures DOT export.
type Options struct {
	Palette   render.Palette
	Selection []*model.Node

	// NodeRadius is the drawn node radius in world units.
	NodeRadius float64

	// Dashed draws edges dashed and without arrowheads.
	Dashed bool

	// Labels adds node names as external labels. Selected nodes are always
	// labeled.
	Labels bool
}

// ToDOT converts the graph and its current layout to Graphviz DOT.
// Hidden edges are omitted. The y axis is flipped because DOT grows
// upward.
func ToDOT(g *model.Graph, opts Options) string {
	radius := opts.NodeRadius
	if radius <= 0 {
		radius = 4
	}
	diameter := 2 * radius / pointsPerInch

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", render.Hex(opts.Palette.Background))
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=%s, label=\"\", fontname=%q, fontsize=10, color=%q];\n",
		fmtFloat(diameter), fonts.FontFamily, render.Hex(opts.Palette.NodeStrokeNormal))
	if opts.Dashed {
		buf.WriteString("  edge [arrowhead=none, style=dashed];\n")
	} else {
		buf.WriteString("  edge [arrowsize=0.6];\n")
	}
	buf.WriteString("\n")

	selected := make(map[*model.Node]bool, len(opts.Selection))
	for _, n := range opts.Selection {
		selected[n] = true
	}

	for _, n := range g.Nodes {
		attrs := []string{
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(n.X/pointsPerInch), fmtFloat(-n.Y/pointsPerInch)),
			fmt.Sprintf("fillcolor=%q", render.Hex(render.GroupColor(n.Group, len(g.Groups)))),
		}
		if opts.Labels || selected[n] {
			attrs = append(attrs, fmt.Sprintf("xlabel=%q", n.Name))
		}
		if selected[n] {
			attrs = append(attrs, fmt.Sprintf("color=%q", render.Hex(opts.Palette.HighlightStrokeActive)), "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if !e.Visible {
			continue
		}
		class := render.Classify(e, opts.Selection)
		fmt.Fprintf(&buf, "  %q -> %q [color=%q, tooltip=%q];\n",
			e.Source.Name, e.Target.Name, render.Hex(opts.Palette.Edge[class]), fmtWeights(e.Weights))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtWeights(ws []model.Weight) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = fmt.Sprintf("%s: %s", w.Name, fmtFloat(w.Value))
	}
	return strings.Join(parts, ", ")
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders DOT source to SVG with neato, honoring pinned
// positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return withFallbackFonts(normalizeViewBox(buf.Bytes())), nil
}

// withFallbackFonts widens the label font family so viewers without the Go
// fonts still render labels in a sans-serif face.
func withFallbackFonts(svg []byte) []byte {
	return bytes.ReplaceAll(svg,
		[]byte(fmt.Sprintf("font-family=%q", fonts.FontFamily)),
		[]byte(fmt.Sprintf("font-family=%q", fonts.FallbackFontFamily)))
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales to its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
