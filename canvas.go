package letterbox

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// whiteImage backs every solid primitive. Sampling the inner pixel of a 3x3
// white image avoids bleeding from the atlas neighbours at the edges.
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(ColorWhite.rawRGBA())
}

// minCircleSegments is the tessellation floor for FillCircle.
const minCircleSegments = 20

// RectOptions controls FillRectEx.
type RectOptions struct {
	// Rotation is the rotation in radians, counter-clockwise in camera space.
	Rotation float64
	// Pivot is the rotation origin as a fraction of the rectangle size:
	// (0, 0) is the (x, y) corner, (0.5, 0.5) the center.
	Pivot Vec2
}

// Canvas is the drawing target handed out by Compositor.BeginCapture.
// Coordinates are camera coordinates: origin at the surface center, +Y up.
// A Canvas is only usable until the matching EndCapture; drawing on it
// afterwards panics.
type Canvas struct {
	c *Compositor

	verts  []ebiten.Vertex
	inds   []uint16
	triOp  ebiten.DrawTrianglesOptions
	imgOp  ebiten.DrawImageOptions
	points []Vec2
}

// Image returns the raw surface image. Drawing on it bypasses the camera.
func (cv *Canvas) Image() *ebiten.Image {
	return cv.c.surface.image
}

// Camera returns the camera the canvas draws through.
func (cv *Canvas) Camera() *Camera {
	return cv.c.camera
}

// FillRect fills the rectangle spanning [x, x+w] x [y, y+h].
func (cv *Canvas) FillRect(x, y, w, h float64, clr Color) {
	cv.FillRectEx(x, y, w, h, clr, RectOptions{})
}

// FillRectEx fills the rectangle spanning [x, x+w] x [y, y+h], rotated by
// opts.Rotation around its fractional pivot.
func (cv *Canvas) FillRectEx(x, y, w, h float64, clr Color, opts RectOptions) {
	cv.mustCapture("FillRectEx")
	px := x + w*opts.Pivot.X
	py := y + h*opts.Pivot.Y
	m := rotationAbout(opts.Rotation, px, py)
	cv.points = cv.points[:0]
	for _, p := range [4]Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}} {
		wx, wy := transformPoint(m, p.X, p.Y)
		cv.points = append(cv.points, Vec2{wx, wy})
	}
	cv.fillConvex(cv.points, clr)
}

// StrokeLine draws a line segment of the given thickness.
func (cv *Canvas) StrokeLine(x0, y0, x1, y1, thickness float64, clr Color) {
	cv.mustCapture("StrokeLine")
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Half-thickness normal.
	nx := -dy / length * thickness / 2
	ny := dx / length * thickness / 2
	cv.points = append(cv.points[:0],
		Vec2{x0 + nx, y0 + ny},
		Vec2{x1 + nx, y1 + ny},
		Vec2{x1 - nx, y1 - ny},
		Vec2{x0 - nx, y0 - ny},
	)
	cv.fillConvex(cv.points, clr)
}

// FillCircle fills a circle centered on (cx, cy).
func (cv *Canvas) FillCircle(cx, cy, radius float64, clr Color) {
	cv.mustCapture("FillCircle")
	if radius <= 0 {
		return
	}
	cv.points = appendCirclePoints(cv.points[:0], cx, cy, radius)
	cv.fillConvex(cv.points, clr)
}

// FillTriangle fills the triangle a, b, c.
func (cv *Canvas) FillTriangle(a, b, c Vec2, clr Color) {
	cv.mustCapture("FillTriangle")
	cv.points = append(cv.points[:0], a, b, c)
	cv.fillConvex(cv.points, clr)
}

// DrawImage draws img upright with its top-left corner at the camera
// origin, transformed by op.GeoM expressed in camera units. The camera
// transform is appended to op.GeoM; op itself is not modified.
func (cv *Canvas) DrawImage(img *ebiten.Image, op *ebiten.DrawImageOptions) {
	cv.mustCapture("DrawImage")
	cv.imgOp = ebiten.DrawImageOptions{}
	if op != nil {
		cv.imgOp = *op
	}
	// Image rows grow downward; flip them so the camera flip puts them back.
	var g ebiten.GeoM
	g.Scale(1, -1)
	if op != nil {
		g.Concat(op.GeoM)
	}
	g.Concat(cv.c.camera.GeoM())
	cv.imgOp.GeoM = g
	cv.c.surface.image.DrawImage(img, &cv.imgOp)
}

// fillConvex fills a convex polygon given in camera space as a triangle fan.
func (cv *Canvas) fillConvex(points []Vec2, clr Color) {
	if len(points) < 3 {
		return
	}
	cv.verts, cv.inds = appendFan(cv.verts[:0], cv.inds[:0], points, cv.c.camera, clr)
	cv.triOp = ebiten.DrawTrianglesOptions{}
	cv.c.surface.image.DrawTriangles(cv.verts, cv.inds, whiteSubImage, &cv.triOp)
}

// mustCapture panics if the canvas is used outside a capture period.
func (cv *Canvas) mustCapture(op string) {
	if cv.c.mode != CameraActive {
		panic("letterbox: Canvas." + op + " called outside BeginCapture/EndCapture")
	}
}

// appendFan appends fan-triangulated vertices for a convex polygon, mapped
// through the camera into surface pixels.
func appendFan(verts []ebiten.Vertex, inds []uint16, points []Vec2, cam *Camera, clr Color) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(verts))
	r, g, b, a := float32(clr.R), float32(clr.G), float32(clr.B), float32(clr.A)
	for _, p := range points {
		sx, sy := cam.WorldToSurface(p.X, p.Y)
		verts = append(verts, ebiten.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	for i := 1; i < len(points)-1; i++ {
		inds = append(inds, base, base+uint16(i), base+uint16(i+1))
	}
	return verts, inds
}

// appendCirclePoints appends the outline of a circle, with more segments
// for larger radii.
func appendCirclePoints(dst []Vec2, cx, cy, radius float64) []Vec2 {
	segments := max(minCircleSegments, int(math.Ceil(radius)))
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		sin, cos := math.Sincos(float64(i) * step)
		dst = append(dst, Vec2{cx + cos*radius, cy + sin*radius})
	}
	return dst
}
