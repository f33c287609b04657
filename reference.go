package letterbox

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// letterboxFit is the placement of a logical surface inside a window.
type letterboxFit struct {
	Scale  float64
	Offset Vec2 // top-left corner of the image on the window
	Size   Vec2 // on-window size of the image
}

// fitToWindow scales a logical size uniformly to fit inside the window and
// centers it. The constraining axis gets a zero offset; the other axis is
// split evenly on both sides.
func fitToWindow(window, logical Vec2) letterboxFit {
	hScale := window.X / logical.X
	vScale := window.Y / logical.Y
	scale := min(hScale, vScale)

	fit := letterboxFit{
		Scale: scale,
		Size:  Vec2{logical.X * scale, logical.Y * scale},
	}
	if hScale < vScale {
		fit.Offset.Y = (window.Y - fit.Size.Y) / 2
	} else {
		fit.Offset.X = (window.X - fit.Size.X) / 2
	}
	return fit
}

// ReferenceOptions controls ComposeReference.
type ReferenceOptions struct {
	// Background fills the letterbox bars. Alpha is ignored; the result is
	// opaque, like a display.
	Background Color
	// Antialias runs the edge anti-aliasing filter for every covered pixel.
	Antialias bool
}

// ComposeReference is a CPU rendition of Present: it letterboxes frame into
// a windowW x windowH image using the same fit as Present, optionally
// through the edge anti-aliasing filter. It is meant for producing and
// checking reference images outside a running game loop.
func ComposeReference(frame image.Image, windowW, windowH int, opts ReferenceOptions) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, windowW, windowH))
	draw.Draw(dst, dst.Rect, image.NewUniform(opts.Background.opaque().rawRGBA()), image.Point{}, draw.Src)

	fb := frame.Bounds()
	logical := Vec2{float64(fb.Dx()), float64(fb.Dy())}
	fit := fitToWindow(Vec2{float64(windowW), float64(windowH)}, logical)
	target := image.Rect(
		int(math.Round(fit.Offset.X)),
		int(math.Round(fit.Offset.Y)),
		int(math.Round(fit.Offset.X+fit.Size.X)),
		int(math.Round(fit.Offset.Y+fit.Size.Y)),
	).Intersect(dst.Rect)
	if target.Empty() {
		return dst
	}

	if !opts.Antialias {
		draw.BiLinear.Scale(dst, target, frame, fb, draw.Src, nil)
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = 0xff
		}
		return dst
	}

	t := newTexture(frame)
	inv := Vec2{1 / logical.X, 1 / logical.Y}
	for y := target.Min.Y; y < target.Max.Y; y++ {
		for x := target.Min.X; x < target.Max.X; x++ {
			uv := Vec2{
				(float64(x) + 0.5 - fit.Offset.X) / fit.Size.X,
				(float64(y) + 0.5 - fit.Offset.Y) / fit.Size.Y,
			}
			setOpaque(dst, x, y, edgeAA(t, uv, inv))
		}
	}
	return dst
}
