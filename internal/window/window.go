// Package window hosts a session in a desktop window.
//
// The session draws onto a raster surface on every Update; Draw uploads
// the raster into an ebiten image and blits it. Pointer and keyboard
// events are polled in Update and forwarded to the session's controller
// before the frame is stepped, so everything runs on ebiten's update
// goroutine.
package window

import (
	"errors"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/matzehuels/depweb/pkg/input"
	"github.com/matzehuels/depweb/pkg/render"
	"github.com/matzehuels/depweb/pkg/session"
)

// ErrClosed is returned by Run when the user closes the window with Escape.
var ErrClosed = errors.New("window closed")

// shortcuts maps ebiten keys onto the controller's shortcut runes.
var shortcuts = map[ebiten.Key]input.Key{
	ebiten.KeyC:              input.KeyRecenter,
	ebiten.KeyDigit0:         input.KeyResetZoom,
	ebiten.KeyNumpad0:        input.KeyResetZoom,
	ebiten.KeyMinus:          input.KeyZoomOut,
	ebiten.KeyNumpadSubtract: input.KeyZoomOut,
	ebiten.KeyNumpadAdd:      input.KeyZoomIn,
	ebiten.KeyEqual:          input.KeyZoomInAlt,
}

// Game is an ebiten.Game driving one session.
type Game struct {
	sess   *session.Session
	raster *render.Raster
	screen *ebiten.Image
	start  time.Time

	width, height int // Logical window size
	scale         float64
	inside        bool
}

// New returns a game for sess, which must draw onto raster.
func New(sess *session.Session, raster *render.Raster) *Game {
	return &Game{sess: sess, raster: raster, scale: 1}
}

// Run opens a window titled title and blocks until it is closed.
func Run(g *Game, title string, width, height int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(g)
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

// Update forwards input and steps the session.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrClosed
	}
	if g.start.IsZero() {
		g.start = time.Now()
	}
	g.pointer()
	g.keys()
	g.sess.Frame(time.Since(g.start))
	return nil
}

func (g *Game) pointer() {
	ctl := g.sess.Controller()
	px, py := ebiten.CursorPosition()
	x, y := float64(px)/g.scale, float64(py)/g.scale
	inside := x >= 0 && y >= 0 && x < float64(g.width) && y < float64(g.height)

	p := ctl.Pointer()
	moved := !p.Present || p.PhysX != x || p.PhysY != y
	switch {
	case inside || p.Down:
		if moved {
			ctl.Move(x, y)
		}
	case g.inside:
		ctl.Leave()
	}
	g.inside = inside

	if inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ctl.Press()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		ctl.Release()
	}
	if _, dy := ebiten.Wheel(); dy != 0 && inside {
		ctl.Wheel(dy)
	}
}

func (g *Game) keys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if sk, ok := shortcuts[k]; ok {
			g.sess.Controller().Key(sk, ctrl)
		}
	}
}

// Draw uploads the last frame.
func (g *Game) Draw(screen *ebiten.Image) {
	img := g.raster.RGBA()
	b := img.Bounds()
	if g.screen == nil || g.screen.Bounds() != image.Rect(0, 0, b.Dx(), b.Dy()) {
		if g.screen != nil {
			g.screen.Deallocate()
		}
		g.screen = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.screen.WritePixels(img.Pix)
	screen.DrawImage(g.screen, nil)
}

// Layout sizes the session to the window in logical pixels and asks for a
// screen in device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale <= 0 {
		g.scale = 1
	}
	g.width, g.height = outsideWidth, outsideHeight
	g.sess.Resize(float64(outsideWidth), float64(outsideHeight), g.scale)
	return int(float64(outsideWidth) * g.scale), int(float64(outsideHeight) * g.scale)
}
