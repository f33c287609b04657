// Package letterbox renders a game frame at a fixed logical resolution and
// presents it on a window of any size for [Ebitengine].
//
// Drawing happens on an offscreen surface through a centered, Y-up camera.
// [Compositor.Present] then scales the surface uniformly to fit the window,
// centers it and fills the remaining bars with the background color. An
// optional edge anti-aliasing post-process (a luminance-based FXAA pass
// written in Kage) smooths polygon edges during that final blit.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	c := letterbox.New(640, 360, nil)
//	c.SetDrawFunc(func(cv *letterbox.Canvas) {
//		cv.FillCircle(letterbox.Vec2{}, 40, letterbox.ColorWhite)
//	})
//	letterbox.Run(c, letterbox.RunConfig{Title: "Demo", Antialias: true})
//
// For full control, implement [ebiten.Game] yourself:
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		cv := g.c.BeginCapture()
//		// ... draw through cv ...
//		g.c.EndCapture()
//		g.c.Present(screen)
//	}
//
//	func (g *Game) Layout(w, h int) (int, int) { return g.c.Layout(w, h) }
//
// # Coordinates
//
// Camera coordinates put the origin at the center of the logical surface
// with +Y up. [Compositor.MapDisplayToLogical] and
// [Compositor.PointerLogicalPosition] bring window pixels (top-left origin,
// +Y down) back into that space.
//
// # Draw ordering
//
// Canvas methods panic outside BeginCapture/EndCapture, and Present panics
// inside it. Both are programmer errors.
//
// # Reference images
//
// [ComposeReference] and [ApplyEdgeAA] run the same letterbox fit and edge
// filter on the CPU over plain [image.Image] values, for tooling and tests
// that cannot read pixels back from the GPU.
//
// # Logging
//
// Nothing is logged by default. Install a [log/slog] logger with
// [SetLogger]; [Compositor.SetDebugMode] adds per-present stats at debug
// level.
//
// [Ebitengine]: https://ebitengine.org
package letterbox
