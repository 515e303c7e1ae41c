package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/matzehuels/depweb/pkg/input"
)

func TestRasterDraw(t *testing.T) {
	g := triangle(t)
	r := newRenderer(t)
	ras := NewRaster(1, 1)

	f := Frame{Graph: g, View: input.View{X: -10, Y: -10, K: 1}, Width: 60, Height: 40, DPR: 1}
	f.Selection = g.Nodes[:1]
	r.Draw(ras, f)

	img := ras.RGBA()
	if b := img.Bounds(); b.Dx() != 60 || b.Dy() != 40 {
		t.Fatalf("size = %dx%d, want 60x40", b.Dx(), b.Dy())
	}

	white := [4]uint8{255, 255, 255, 255}
	if got := pixel(img.Pix, img.Stride, 0, 0); got != white {
		t.Errorf("corner = %v, want background", got)
	}
	// Node A projects to (20, 10).
	if got := pixel(img.Pix, img.Stride, 20, 10); got == white {
		t.Error("node center left unpainted")
	}

	var buf bytes.Buffer
	if err := ras.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("decode PNG: %v", err)
	}
}

func TestRasterResizeKeepsContext(t *testing.T) {
	ras := NewRaster(10, 10)
	before := ras.Image()
	ras.Resize(10, 10)
	if ras.Image() != before {
		t.Error("same-size resize replaced the image")
	}
	ras.Resize(0, -5)
	if b := ras.Image().Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("degenerate resize = %dx%d, want 1x1", b.Dx(), b.Dy())
	}
}

func pixel(pix []uint8, stride, x, y int) [4]uint8 {
	i := y*stride + x*4
	return [4]uint8{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}
