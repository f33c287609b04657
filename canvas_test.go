package letterbox

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestCanvasOutsideCapturePanics(t *testing.T) {
	c := New(64, 64, nil)
	defer c.Dispose()
	cv := c.BeginCapture()
	c.EndCapture()

	img := ebiten.NewImage(2, 2)
	defer img.Deallocate()

	tests := []struct {
		name string
		fn   func()
	}{
		{"FillRect", func() { cv.FillRect(0, 0, 1, 1, ColorWhite) }},
		{"FillRectEx", func() { cv.FillRectEx(0, 0, 1, 1, ColorWhite, RectOptions{}) }},
		{"StrokeLine", func() { cv.StrokeLine(0, 0, 1, 1, 1, ColorWhite) }},
		{"FillCircle", func() { cv.FillCircle(0, 0, 1, ColorWhite) }},
		{"FillTriangle", func() { cv.FillTriangle(Vec2{}, Vec2{1, 0}, Vec2{0, 1}, ColorWhite) }},
		{"DrawImage", func() { cv.DrawImage(img, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectPanic(t, "called outside BeginCapture/EndCapture", tt.fn)
		})
	}
}

func TestCanvasDrawsDuringCapture(t *testing.T) {
	c := New(64, 64, nil)
	defer c.Dispose()
	img := ebiten.NewImage(4, 4)
	defer img.Deallocate()

	cv := c.BeginCapture()
	cv.FillRect(-10, -10, 20, 20, ColorWhite)
	cv.StrokeLine(-20, 0, 20, 0, 2, ColorWhite)
	cv.StrokeLine(5, 5, 5, 5, 2, ColorWhite) // zero length
	cv.FillCircle(0, 0, 8, ColorWhite)
	cv.FillCircle(0, 0, 0, ColorWhite) // empty
	cv.FillTriangle(Vec2{-5, -5}, Vec2{5, -5}, Vec2{0, 5}, ColorWhite)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(3, 4)
	cv.DrawImage(img, op)
	c.EndCapture()

	if op.GeoM.Element(0, 2) != 3 || op.GeoM.Element(1, 2) != 4 {
		t.Error("DrawImage should not modify the caller's options")
	}
	if cv.Image() != c.Surface().Image() {
		t.Error("Canvas.Image should be the surface image")
	}
	if cv.Camera() != c.Camera() {
		t.Error("Canvas.Camera should be the compositor camera")
	}
}

func TestAppendFanSquare(t *testing.T) {
	cam := newCamera(640, 360)
	clr := Color{R: 0.25, G: 0.5, B: 0.75, A: 1}
	points := []Vec2{{-320, 180}, {320, 180}, {320, -180}, {-320, -180}}

	verts, inds := appendFan(nil, nil, points, cam, clr)

	if len(verts) != 4 {
		t.Fatalf("verts = %d, want 4", len(verts))
	}
	wantInds := []uint16{0, 1, 2, 0, 2, 3}
	if len(inds) != len(wantInds) {
		t.Fatalf("inds = %v, want %v", inds, wantInds)
	}
	for i := range wantInds {
		if inds[i] != wantInds[i] {
			t.Fatalf("inds = %v, want %v", inds, wantInds)
		}
	}

	wantDst := [][2]float32{{0, 0}, {640, 0}, {640, 360}, {0, 360}}
	for i, v := range verts {
		if v.DstX != wantDst[i][0] || v.DstY != wantDst[i][1] {
			t.Errorf("vert %d dst = (%v,%v), want %v", i, v.DstX, v.DstY, wantDst[i])
		}
		if v.ColorR != 0.25 || v.ColorG != 0.5 || v.ColorB != 0.75 || v.ColorA != 1 {
			t.Errorf("vert %d color = (%v,%v,%v,%v)", i, v.ColorR, v.ColorG, v.ColorB, v.ColorA)
		}
		if v.SrcX != 1 || v.SrcY != 1 {
			t.Errorf("vert %d src = (%v,%v), want (1,1)", i, v.SrcX, v.SrcY)
		}
	}
}

func TestAppendFanOffsetsIndices(t *testing.T) {
	cam := newCamera(10, 10)
	tri := []Vec2{{0, 0}, {1, 0}, {0, 1}}
	verts, inds := appendFan(nil, nil, tri, cam, ColorWhite)
	verts, inds = appendFan(verts, inds, tri, cam, ColorWhite)
	if len(verts) != 6 || len(inds) != 6 {
		t.Fatalf("got %d verts, %d inds", len(verts), len(inds))
	}
	if inds[3] != 3 || inds[4] != 4 || inds[5] != 5 {
		t.Errorf("second triangle indices = %v, want [3 4 5]", inds[3:])
	}
}

func TestAppendCirclePoints(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{1, minCircleSegments},
		{5, minCircleSegments},
		{100, 100},
		{40.2, 41},
	}
	for _, tt := range tests {
		pts := appendCirclePoints(nil, 3, -2, tt.radius)
		if len(pts) != tt.want {
			t.Errorf("radius %v: %d points, want %d", tt.radius, len(pts), tt.want)
		}
		for _, p := range pts {
			if d := math.Hypot(p.X-3, p.Y+2); !approxEqual(d, tt.radius, 1e-9) {
				t.Fatalf("radius %v: point %v at distance %f", tt.radius, p, d)
			}
		}
	}
}

func TestFillRectExRotatesAboutPivot(t *testing.T) {
	c := New(64, 64, nil)
	defer c.Dispose()
	cv := c.BeginCapture()
	cv.FillRectEx(0, 0, 20, 10, ColorWhite, RectOptions{
		Rotation: math.Pi / 2,
		Pivot:    Vec2{0.5, 0.5},
	})
	c.EndCapture()

	// The (0,0) corner sits at (-10,-5) from the center (10,5); a quarter
	// turn counter-clockwise moves it to (5,-10) from the center.
	p := cv.points[0]
	if !approxEqual(p.X, 15, 1e-9) || !approxEqual(p.Y, -5, 1e-9) {
		t.Errorf("rotated corner = %v, want (15,-5)", p)
	}
}

func TestFillRectNoRotation(t *testing.T) {
	c := New(64, 64, nil)
	defer c.Dispose()
	cv := c.BeginCapture()
	cv.FillRect(1, 2, 3, 4, ColorWhite)
	c.EndCapture()

	want := []Vec2{{1, 2}, {4, 2}, {4, 6}, {1, 6}}
	for i, p := range cv.points {
		if !approxEqual(p.X, want[i].X, 1e-9) || !approxEqual(p.Y, want[i].Y, 1e-9) {
			t.Errorf("corner %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestStrokeLineQuad(t *testing.T) {
	c := New(64, 64, nil)
	defer c.Dispose()
	cv := c.BeginCapture()
	cv.StrokeLine(0, 0, 10, 0, 2, ColorWhite)
	c.EndCapture()

	want := []Vec2{{0, 1}, {10, 1}, {10, -1}, {0, -1}}
	if len(cv.points) != 4 {
		t.Fatalf("points = %v", cv.points)
	}
	for i, p := range cv.points {
		if !approxEqual(p.X, want[i].X, 1e-9) || !approxEqual(p.Y, want[i].Y, 1e-9) {
			t.Errorf("corner %d = %v, want %v", i, p, want[i])
		}
	}
}
