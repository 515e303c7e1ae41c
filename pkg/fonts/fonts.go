// Package fonts provides the font faces used for node labels.
//
// Labels use Go Regular from golang.org/x/image, so raster output needs no
// system fonts. Parsed fonts and faces are cached; faces are keyed by size
// in device pixels.
package fonts

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the family name written into SVG and DOT output.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers without the Go fonts.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

var (
	regular     *opentype.Font
	regularErr  error
	regularOnce sync.Once

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

// Regular returns the parsed label font.
func Regular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a label face of the given pixel size, rounded to a quarter
// pixel so nearby zoom levels share a face.
func Face(size float64) (font.Face, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("invalid font size %g", size)
	}
	size = math.Max(1, math.Round(size*4)/4)

	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[size]; ok {
		return f, nil
	}
	fnt, err := Regular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	faces[size] = f
	return f, nil
}
