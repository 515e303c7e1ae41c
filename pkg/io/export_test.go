package io

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/depweb/pkg/model"
)

func TestWriteLayout(t *testing.T) {
	m, _ := ReadMatrix(strings.NewReader(matrixJSON))
	c, _ := ReadClustering(strings.NewReader(clusteringJSON))
	g, err := model.Build(m, c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g.Nodes[0].X, g.Nodes[0].Y = 1.5, -2
	g.SetEnabledWeights([]string{"Call"})

	l := NewLayout(g, []*model.Node{g.Nodes[1]})
	l.Ticks = 42

	var buf bytes.Buffer
	if err := WriteLayout(l, &buf); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}

	var got Layout
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Ticks != 42 {
		t.Errorf("ticks = %d, want 42", got.Ticks)
	}
	if len(got.Edges) != 1 || got.Edges[0].Source != "B" || got.Edges[0].Target != "C" {
		t.Errorf("edges = %+v, want only B→C", got.Edges)
	}
	if got.Nodes[0] != (LayoutNode{Name: "A", Group: 0, X: 1.5, Y: -2}) {
		t.Errorf("node A = %+v", got.Nodes[0])
	}
	if len(got.Selection) != 1 || got.Selection[0] != "B" {
		t.Errorf("selection = %v, want [B]", got.Selection)
	}
}

func TestExportLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := ExportLayout(Layout{Edges: []LayoutEdge{}}, path); err != nil {
		t.Fatalf("ExportLayout: %v", err)
	}
	if err := ExportLayout(Layout{}, filepath.Join(t.TempDir(), "missing", "layout.json")); err == nil {
		t.Error("ExportLayout into a missing directory succeeded")
	}
}
