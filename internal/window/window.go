// Package window shows the live clock in a desktop window and maps pointer
// input onto the trackball.
package window

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"clock3d/internal/animation"
	"clock3d/internal/camera"
)

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
	// FPS caps redraws; zero follows the display refresh.
	FPS    int
	Logger zerolog.Logger
}

// Run opens a window and ticks driver once per update until the window is
// closed or ebiten.Termination is returned.
func Run(driver *animation.Driver, opts Options) error {
	stage := driver.Stage()
	g := &host{
		driver: driver,
		ball:   camera.NewTrackball(stage.Camera, opts.Width, opts.Height),
		width:  opts.Width,
		height: opts.Height,
		log:    opts.Logger.With().Str("component", "window").Logger(),
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	if opts.FPS > 0 {
		ebiten.SetTPS(opts.FPS)
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}

	g.log.Info().Int("width", opts.Width).Int("height", opts.Height).Msg("window opened")
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type host struct {
	driver *animation.Driver
	ball   *camera.Trackball
	width  int
	height int
	log    zerolog.Logger

	frame   *image.NRGBA
	screen  *ebiten.Image
	cx, cy  int
	hasLast bool
}

func (g *host) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.handlePointer()

	frame, err := g.driver.Tick()
	if err != nil {
		return err
	}
	g.frame = frame.Image
	return nil
}

func (g *host) handlePointer() {
	x, y := ebiten.CursorPosition()
	dx, dy := float64(x-g.cx), float64(y-g.cy)
	moved := g.hasLast && (dx != 0 || dy != 0)
	g.cx, g.cy, g.hasLast = x, y, true

	if moved {
		switch {
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			g.ball.Rotate(dx, dy)
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
			g.ball.Pan(dx, dy)
		}
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.ball.Zoom(wy)
	}
}

func (g *host) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		return
	}
	b := g.frame.Bounds()
	if g.screen == nil || g.screen.Bounds().Dx() != b.Dx() || g.screen.Bounds().Dy() != b.Dy() {
		if g.screen != nil {
			g.screen.Deallocate()
		}
		g.screen = ebiten.NewImage(b.Dx(), b.Dy())
	}
	// Frames are opaque, so straight and premultiplied alpha coincide.
	g.screen.WritePixels(g.frame.Pix)
	screen.DrawImage(g.screen, nil)
}

func (g *host) Layout(_, _ int) (int, int) {
	if g.frame != nil {
		b := g.frame.Bounds()
		return b.Dx(), b.Dy()
	}
	return g.width, g.height
}
