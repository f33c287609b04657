package letterbox

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is the fixed-resolution offscreen image every frame is drawn
// into. It doubles as the render target during capture and as the sampled
// texture during Present. A Surface is owned by its Compositor and its size
// never changes.
type Surface struct {
	image *ebiten.Image
	w, h  int
}

// newSurface allocates a surface of the given size, rounded to whole pixels.
func newSurface(width, height float64) *Surface {
	w := int(math.Round(width))
	h := int(math.Round(height))
	return &Surface{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (s *Surface) Image() *ebiten.Image {
	return s.image
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.w
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.h
}

// Size returns the surface size in pixels as a Vec2.
func (s *Surface) Size() Vec2 {
	return Vec2{X: float64(s.w), Y: float64(s.h)}
}

// Fill fills the entire surface with c. Components are stored as given,
// without premultiplying.
func (s *Surface) Fill(c Color) {
	s.image.Fill(c.rawRGBA())
}

// dispose deallocates the underlying image. The Surface must not be used
// afterwards.
func (s *Surface) dispose() {
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
}
