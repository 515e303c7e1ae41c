package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"

	derrors "github.com/matzehuels/depweb/pkg/errors"
	"github.com/matzehuels/depweb/pkg/model"
)

type matrix struct {
	Variables []string `json:"variables"`
	Cells     []cell   `json:"cells"`
}

type cell struct {
	Src    index              `json:"src"`
	Dest   index              `json:"dest"`
	Values map[string]float64 `json:"values"`
}

// index is a variable index written either as a JSON number or as a
// numeric string.
type index int

func (i *index) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(b)), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("index %s is not an integer", b)
	}
	*i = index(f)
	return nil
}

type clustering struct {
	Structure []entry `json:"structure"`
}

type entry struct {
	Type   string  `json:"@type"`
	Name   string  `json:"name"`
	Nested []entry `json:"nested,omitempty"`
}

// ReadMatrix decodes a dependency structure matrix from r.
//
// ReadMatrix only checks the document shape. Index ranges and names are
// checked by model.Build. ReadMatrix does not close r.
func ReadMatrix(r io.Reader) (model.Matrix, error) {
	var data matrix
	if err := decode(r, &data); err != nil {
		return model.Matrix{}, err
	}
	if data.Variables == nil {
		return model.Matrix{}, derrors.New(derrors.ErrCodeInvalidFormat, "matrix has no \"variables\" array")
	}

	m := model.Matrix{
		Variables: data.Variables,
		Cells:     make([]model.Cell, len(data.Cells)),
	}
	for i, c := range data.Cells {
		m.Cells[i] = model.Cell{Src: int(c.Src), Dest: int(c.Dest), Values: c.Values}
	}
	return m, nil
}

// ReadClustering decodes a clustering from r. ReadClustering does not
// close r.
func ReadClustering(r io.Reader) (model.Clustering, error) {
	var data clustering
	if err := decode(r, &data); err != nil {
		return model.Clustering{}, err
	}
	if data.Structure == nil {
		return model.Clustering{}, derrors.New(derrors.ErrCodeInvalidFormat, "clustering has no \"structure\" array")
	}
	return model.Clustering{Structure: toEntries(data.Structure)}, nil
}

func toEntries(in []entry) []model.ClusterEntry {
	if in == nil {
		return nil
	}
	out := make([]model.ClusterEntry, len(in))
	for i, e := range in {
		out[i] = model.ClusterEntry{Type: e.Type, Name: e.Name, Nested: toEntries(e.Nested)}
	}
	return out
}

func decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return derrors.Wrap(derrors.ErrCodeInvalidFormat, err, "decode")
	}
	return nil
}

// ImportMatrix reads the matrix file at path.
func ImportMatrix(path string) (model.Matrix, error) {
	f, err := open(path)
	if err != nil {
		return model.Matrix{}, err
	}
	defer f.Close()
	m, err := ReadMatrix(f)
	if err != nil {
		return model.Matrix{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ImportClustering reads the clustering file at path.
func ImportClustering(path string) (model.Clustering, error) {
	f, err := open(path)
	if err != nil {
		return model.Clustering{}, err
	}
	defer f.Close()
	c, err := ReadClustering(f)
	if err != nil {
		return model.Clustering{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load reads both input files and builds the graph.
func Load(matrixPath, clusteringPath string) (*model.Graph, error) {
	m, err := ImportMatrix(matrixPath)
	if err != nil {
		return nil, err
	}
	c, err := ImportClustering(clusteringPath)
	if err != nil {
		return nil, err
	}
	g, err := model.Build(m, c)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	return g, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, derrors.Wrap(derrors.ErrCodeFileNotFound, err, "file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
