package letterbox

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefreshInterval = 0.5

// fpsOverlay shows the current FPS and TPS in the top-left corner of the
// display, on top of the letterboxed frame. The text is redrawn into a
// small cached image about every half second.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	op      ebiten.DrawImageOptions
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32), elapsed: fpsRefreshInterval}
}

// update advances the refresh timer and reports whether the text was
// redrawn.
func (f *fpsOverlay) update(dt float64) bool {
	f.elapsed += dt
	if f.elapsed < fpsRefreshInterval {
		return false
	}
	f.elapsed = 0

	f.img.Clear()
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	return true
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	f.op.GeoM.Reset()
	b := screen.Bounds()
	f.op.GeoM.Translate(float64(b.Min.X), float64(b.Min.Y))
	screen.DrawImage(f.img, &f.op)
}

func (f *fpsOverlay) dispose() {
	f.img.Deallocate()
}
