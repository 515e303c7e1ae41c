package render

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/fogleman/gg"

	"github.com/matzehuels/depweb/pkg/fonts"
)

// RasterOption configures a Raster.
type RasterOption func(*Raster)

// WithLabels toggles text rendering. The terminal host turns labels off
// and prints names in its status bar instead.
func WithLabels(on bool) RasterOption {
	return func(r *Raster) { r.labels = on }
}

// Raster is a Surface backed by an in-memory RGBA image.
type Raster struct {
	dc     *gg.Context
	labels bool
}

// NewRaster returns a raster surface of w × h device pixels.
func NewRaster(w, h int, opts ...RasterOption) *Raster {
	r := &Raster{labels: true}
	for _, opt := range opts {
		opt(r)
	}
	r.Resize(w, h)
	return r
}

func (r *Raster) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if r.dc != nil && r.dc.Width() == w && r.dc.Height() == h {
		return
	}
	r.dc = gg.NewContext(w, h)
}

func (r *Raster) Clear(c color.Color) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Raster) Line(a, b Point, width float64, c color.Color, dash []float64) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.SetDash(dash...)
	r.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	r.dc.Stroke()
	r.dc.SetDash()
}

func (r *Raster) Polygon(pts []Point, fill color.Color) {
	if len(pts) < 3 {
		return
	}
	r.dc.NewSubPath()
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.ClosePath()
	r.dc.SetColor(fill)
	r.dc.Fill()
}

func (r *Raster) Circle(center Point, radius float64, fill, stroke color.Color) {
	if radius <= 0 {
		return
	}
	r.dc.DrawCircle(center.X, center.Y, radius)
	if fill != nil {
		r.dc.SetColor(fill)
		r.dc.FillPreserve()
	}
	if stroke != nil {
		r.dc.SetColor(stroke)
		r.dc.SetLineWidth(1)
		r.dc.StrokePreserve()
	}
	r.dc.ClearPath()
}

func (r *Raster) Text(s string, x, y, size float64, c color.Color) {
	if !r.labels || s == "" {
		return
	}
	face, err := fonts.Face(size)
	if err != nil {
		return
	}
	r.dc.SetFontFace(face)
	r.dc.SetColor(c)
	r.dc.DrawStringAnchored(s, x, y, 0.5, 0)
}

// Image returns the current content.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// RGBA returns the current content as *image.RGBA.
func (r *Raster) RGBA() *image.RGBA {
	src := r.dc.Image()
	if img, ok := src.(*image.RGBA); ok {
		return img
	}
	img := image.NewRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return img
}

// EncodePNG writes the current content as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}
