package letterbox

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the initial window size in device-independent
	// pixels. Zero falls back to the logical surface size.
	Width, Height int
	// ShowFPS draws an FPS/TPS readout over the presented frame.
	ShowFPS bool
	// Antialias enables the edge anti-aliasing effect before the first frame.
	Antialias bool
}

// SetUpdateFunc sets a callback that Run calls once per tick, after the
// attached TestRunner (if any) has advanced. A non-nil error stops the loop.
func (c *Compositor) SetUpdateFunc(fn func() error) {
	c.updateFn = fn
}

// SetDrawFunc sets the callback that draws one frame into the logical
// surface. Run wraps it in BeginCapture/EndCapture.
func (c *Compositor) SetDrawFunc(fn func(cv *Canvas)) {
	c.drawFn = fn
}

// Run opens a window and drives the compositor every frame: capture, draw
// callback, end capture, Present, optional FPS overlay, screenshot flush.
// It blocks until the window closes or the update callback returns an
// error. The window is resizable; the frame stays letterboxed.
func Run(c *Compositor, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = c.surface.w, c.surface.h
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if cfg.Antialias {
		if err := c.EnableAntialiasing(); err != nil {
			return err
		}
	}

	g := &game{c: c}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
		defer g.fps.dispose()
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("letterbox: run: %w", err)
	}
	return nil
}

// game adapts a Compositor to ebiten.Game.
type game struct {
	c   *Compositor
	fps *fpsOverlay
}

func (g *game) Update() error {
	if r := g.c.testRunner; r != nil {
		if err := r.step(g.c); err != nil {
			return err
		}
	}
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	if g.c.updateFn != nil {
		return g.c.updateFn()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	c := g.c
	cv := c.BeginCapture()
	if c.drawFn != nil {
		c.drawFn(cv)
	}
	c.EndCapture()

	c.Present(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
	c.FlushScreenshots(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.c.Layout(outsideWidth, outsideHeight)
}
