package letterbox

import "github.com/hajimehoshi/ebiten/v2"

// Camera maps the centered logical coordinate system onto a Surface.
//
// The visible area spans [-Width/2, Width/2] horizontally and
// [-Height/2, Height/2] vertically with +Y pointing up, so the world origin
// lands on the surface center. A Camera is derived once from the surface
// size and never changes afterwards.
type Camera struct {
	width, height float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
}

// newCamera derives the camera for a surface of the given size.
//
// It starts from the display-rect convention [0,w]x[0,h] (origin top-left,
// +y down) and recenters it on the origin with the y axis flipped:
//
//	viewMatrix = Translate(w/2, h/2) * Scale(1, -1)
func newCamera(width, height float64) *Camera {
	c := &Camera{width: width, height: height}
	c.viewMatrix = [6]float64{1, 0, 0, -1, width / 2, height / 2}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c
}

// Width returns the logical width covered by the camera.
func (c *Camera) Width() float64 { return c.width }

// Height returns the logical height covered by the camera.
func (c *Camera) Height() float64 { return c.height }

// WorldToSurface converts camera coordinates to surface pixel coordinates.
func (c *Camera) WorldToSurface(wx, wy float64) (sx, sy float64) {
	return transformPoint(c.viewMatrix, wx, wy)
}

// SurfaceToWorld converts surface pixel coordinates to camera coordinates.
func (c *Camera) SurfaceToWorld(sx, sy float64) (wx, wy float64) {
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the visible area in camera space. X, Y is the
// bottom-left corner.
func (c *Camera) VisibleBounds() Rect {
	return Rect{X: -c.width / 2, Y: -c.height / 2, Width: c.width, Height: c.height}
}

// GeoM returns the view transform as an ebiten.GeoM, ready to be
// concatenated after a world-space transform.
func (c *Camera) GeoM() ebiten.GeoM {
	return affineGeoM(c.viewMatrix)
}
