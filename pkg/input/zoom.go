package input

import "math"

// Key is a keyboard shortcut. Shortcuts only fire with ctrl or meta held.
type Key rune

const (
	KeyRecenter  Key = 'c' // Recenter and reset zoom
	KeyResetZoom Key = '0'
	KeyZoomOut   Key = '-'
	KeyZoomIn    Key = '+'
	KeyZoomInAlt Key = '='
)

// Zoom returns the zoom level in percent.
func (c *Controller) Zoom() float64 { return c.zoom }

// SetZoom sets the zoom level in percent, clamped to the configured range.
// Non-finite values are ignored.
func (c *Controller) SetZoom(percent float64) {
	if !finite(percent) {
		return
	}
	c.zoom = math.Max(c.opts.ZoomMin, math.Min(c.opts.ZoomMax, percent))
	c.view.K = c.zoom / 100
	c.updateWorld()
}

// ResetView recenters the view and restores the default zoom.
func (c *Controller) ResetView() {
	c.view.X, c.view.Y = 0, 0
	c.SetZoom(c.opts.ZoomDefault)
}

// Key handles a shortcut. It reports whether the key is a shortcut key, so
// hosts can swallow it even when ctrl was not held.
func (c *Controller) Key(k Key, ctrl bool) bool {
	switch k {
	case KeyRecenter, KeyResetZoom, KeyZoomOut, KeyZoomIn, KeyZoomInAlt:
	default:
		return false
	}
	if !ctrl {
		return true
	}
	switch k {
	case KeyRecenter:
		c.ResetView()
	case KeyResetZoom:
		c.SetZoom(c.opts.ZoomDefault)
	case KeyZoomOut:
		c.SetZoom(c.zoom - c.opts.ZoomStep)
	case KeyZoomIn, KeyZoomInAlt:
		c.SetZoom(c.zoom + c.opts.ZoomStep)
	}
	return true
}

// Wheel zooms by ZoomFactor per notch; positive deltas zoom in.
func (c *Controller) Wheel(delta float64) {
	if !finite(delta) || delta == 0 {
		return
	}
	c.SetZoom(c.zoom * math.Pow(c.opts.ZoomFactor, delta))
}
