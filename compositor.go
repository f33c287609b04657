package letterbox

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultScreenshotDir = "screenshots"

// Compositor owns the logical surface, its camera and the presentation
// state. Each frame the caller captures into the surface through
// BeginCapture/EndCapture and then calls Present to composite the surface
// onto the display, letterboxed and optionally anti-aliased.
//
// A Compositor is not safe for concurrent use; it belongs to the frame loop.
type Compositor struct {
	// Background is cleared onto the surface at every BeginCapture and
	// fills the letterbox bars during Present.
	Background Color
	// ScreenshotDir is the directory queued screenshots are written to.
	ScreenshotDir string

	surface *Surface
	camera  *Camera
	canvas  Canvas

	mode       RenderMode
	drawSize   Vec2
	drawOffset Vec2
	window     Vec2

	effect *PostEffect
	blitOp ebiten.DrawImageOptions

	debug bool

	// Frame loop hooks used by Run.
	updateFn   func() error
	drawFn     func(cv *Canvas)
	testRunner *TestRunner

	screenshotQueue []string
	injectQueue     []Vec2
	cursor          func() (int, int)
}

// New creates a compositor with a width x height logical surface (rounded to
// whole pixels) and a camera centered on it. A nil background selects
// DefaultBackground.
func New(width, height float64, background *Color) *Compositor {
	bg := DefaultBackground
	if background != nil {
		bg = *background
	}
	c := &Compositor{
		Background:    bg,
		ScreenshotDir: defaultScreenshotDir,
		surface:       newSurface(width, height),
		camera:        newCamera(width, height),
		mode:          ScreenActive,
		drawSize:      Vec2{width, height},
		cursor:        ebiten.CursorPosition,
	}
	c.canvas.c = c
	return c
}

// Surface returns the logical surface.
func (c *Compositor) Surface() *Surface {
	return c.surface
}

// Camera returns the camera mapping logical coordinates onto the surface.
func (c *Compositor) Camera() *Camera {
	return c.camera
}

// Mode reports whether drawing currently targets the surface or the screen.
func (c *Compositor) Mode() RenderMode {
	return c.mode
}

// DrawSize returns the on-display size the surface was composited at by the
// last Present. Before the first Present it is the logical size.
func (c *Compositor) DrawSize() Vec2 {
	return c.drawSize
}

// DrawOffset returns the top-left corner of the surface on the display as
// of the last Present.
func (c *Compositor) DrawOffset() Vec2 {
	return c.drawOffset
}

// WindowSize returns the current full window size as last reported by
// Layout or Present. Before either it is the logical size.
func (c *Compositor) WindowSize() Vec2 {
	if c.window.X <= 0 || c.window.Y <= 0 {
		return c.surface.Size()
	}
	return c.window
}

// SetDebugMode enables or disables debug mode. When enabled, every Present
// logs its placement and timing at debug level.
func (c *Compositor) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// BeginCapture makes the surface the draw target: it clears the surface
// with Background, switches to CameraActive and returns the Canvas through
// which the frame is drawn.
func (c *Compositor) BeginCapture() *Canvas {
	c.surface.Fill(c.Background)
	c.mode = CameraActive
	return &c.canvas
}

// EndCapture switches back to ScreenActive. Calling it while already in
// ScreenActive is a no-op.
func (c *Compositor) EndCapture() {
	c.mode = ScreenActive
}

// Layout records the outside window size and returns it unchanged, so the
// screen handed to Present always matches the window. Call it from
// ebiten.Game.Layout.
func (c *Compositor) Layout(outsideWidth, outsideHeight int) (int, int) {
	c.window = Vec2{float64(outsideWidth), float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

// Present composites the surface onto screen: the surface is scaled
// uniformly to fit, centered, and drawn over a Background fill that forms
// the letterbox bars. The post-process effect runs if enabled.
//
// Present panics when called between BeginCapture and EndCapture.
func (c *Compositor) Present(screen *ebiten.Image) {
	if c.mode == CameraActive {
		panic("letterbox: Present called while the camera is active; call EndCapture first")
	}

	var t0 time.Time
	if c.debug {
		t0 = time.Now()
	}

	b := screen.Bounds()
	c.window = Vec2{float64(b.Dx()), float64(b.Dy())}
	fit := fitToWindow(c.window, c.surface.Size())
	c.drawSize = fit.Size
	c.drawOffset = fit.Offset

	screen.Fill(c.Background.rawRGBA())

	var geo ebiten.GeoM
	geo.Scale(fit.Scale, fit.Scale)
	geo.Translate(float64(b.Min.X)+fit.Offset.X, float64(b.Min.Y)+fit.Offset.Y)

	if c.effect != nil {
		c.effect.draw(screen, c.surface.image, geo)
	} else {
		c.blitOp.GeoM = geo
		c.blitOp.ColorScale.Reset()
		c.blitOp.Filter = ebiten.FilterLinear
		c.blitOp.Blend = ebiten.BlendCopy
		screen.DrawImage(c.surface.image, &c.blitOp)
	}

	if c.debug {
		c.debugLog(presentStats{
			window:    c.window,
			drawSize:  fit.Size,
			offset:    fit.Offset,
			scale:     fit.Scale,
			antialias: c.effect != nil,
			elapsed:   time.Since(t0),
		})
	}
}

// EnableAntialiasing compiles the edge anti-aliasing effect and routes
// every following Present through it. Calling it again replaces the
// previous effect. A compilation error is returned as is; the frame loop
// should treat it as fatal.
func (c *Compositor) EnableAntialiasing() error {
	e, err := newEdgeAAEffect()
	if err != nil {
		return fmt.Errorf("letterbox: enable antialiasing: %w", err)
	}
	if c.effect != nil {
		c.effect.dispose()
	}
	c.effect = e
	Logger().Info("edge antialiasing enabled",
		"width", c.surface.w, "height", c.surface.h)
	return nil
}

// DisableAntialiasing drops the post-process effect; Present falls back to
// a plain linear-filtered blit.
func (c *Compositor) DisableAntialiasing() {
	if c.effect == nil {
		return
	}
	c.effect.dispose()
	c.effect = nil
	Logger().Info("edge antialiasing disabled")
}

// Antialiasing reports whether the post-process effect is enabled.
func (c *Compositor) Antialiasing() bool {
	return c.effect != nil
}

// MapDisplayToLogical converts a display point (origin top-left, +Y down)
// into camera coordinates (origin center, +Y up).
//
// The point is normalized to [-1, 1] against the full window, then widened
// by the share of the window the last Present left as letterbox margins,
// and finally scaled to the logical size.
func (c *Compositor) MapDisplayToLogical(p Vec2) Vec2 {
	win := c.WindowSize()
	nx := (p.X - win.X/2) / (win.X * 0.5)
	ny := -(p.Y - win.Y/2) / (win.Y * 0.5)

	fx := 1 + (win.X-c.drawSize.X)/win.X
	fy := 1 + (win.Y-c.drawSize.Y)/win.Y

	return Vec2{
		X: nx * 0.5 * fx * float64(c.surface.w),
		Y: ny * 0.5 * fy * float64(c.surface.h),
	}
}

// MapDisplayToLogicalExact converts a display point into camera coordinates
// by inverting the placement of the last Present exactly. Points in the
// letterbox bars map outside the camera's visible bounds.
func (c *Compositor) MapDisplayToLogicalExact(p Vec2) Vec2 {
	d := p.sub(c.drawOffset)
	sx := d.X / c.drawSize.X * float64(c.surface.w)
	sy := d.Y / c.drawSize.Y * float64(c.surface.h)
	wx, wy := c.camera.SurfaceToWorld(sx, sy)
	return Vec2{wx, wy}
}

// PointerLogicalPosition returns the pointer position in camera
// coordinates. A position queued with InjectPointer takes precedence over
// the real cursor and is consumed.
func (c *Compositor) PointerLogicalPosition() Vec2 {
	return c.MapDisplayToLogical(c.pointerPosition())
}

// Dispose releases the surface and the effect. The Compositor must not be
// used afterwards.
func (c *Compositor) Dispose() {
	if c.effect != nil {
		c.effect.dispose()
		c.effect = nil
	}
	c.surface.dispose()
}
