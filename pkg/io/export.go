package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/depweb/pkg/model"
)

// Layout is a JSON snapshot of a session.
type Layout struct {
	Session   string        `json:"session,omitempty"`
	Ticks     int           `json:"ticks"`
	Alpha     float64       `json:"alpha"`
	Zoom      float64       `json:"zoom"`
	Weights   []string      `json:"weights"`
	Selection []string      `json:"selection"`
	Groups    []model.Group `json:"groups"`
	Nodes     []LayoutNode  `json:"nodes"`
	Edges     []LayoutEdge  `json:"edges"`
}

// LayoutNode is a node position in world units.
type LayoutNode struct {
	Name  string  `json:"name"`
	Group int     `json:"group"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// LayoutEdge is a visible edge.
type LayoutEdge struct {
	Source  string         `json:"source"`
	Target  string         `json:"target"`
	Weights []model.Weight `json:"weights"`
}

// NewLayout captures the positions of g, its visible edges and the given
// selection. Session metadata is left for the caller to fill in.
func NewLayout(g *model.Graph, selection []*model.Node) Layout {
	l := Layout{
		Weights:   g.EnabledWeights(),
		Selection: make([]string, len(selection)),
		Groups:    append([]model.Group{}, g.Groups...),
		Nodes:     make([]LayoutNode, len(g.Nodes)),
		Edges:     []LayoutEdge{},
	}
	for i, n := range selection {
		l.Selection[i] = n.Name
	}
	for i, n := range g.Nodes {
		l.Nodes[i] = LayoutNode{Name: n.Name, Group: n.Group, X: n.X, Y: n.Y}
	}
	for _, e := range g.Edges {
		if !e.Visible {
			continue
		}
		l.Edges = append(l.Edges, LayoutEdge{Source: e.Source.Name, Target: e.Target.Name, Weights: e.Weights})
	}
	return l
}

// WriteLayout encodes l as indented JSON.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayout writes l to the file at path.
func ExportLayout(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(l, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
