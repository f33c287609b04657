package letterbox

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// texture is a CPU view of an RGBA image addressed with normalized
// coordinates, filtered bilinearly with clamp-to-edge addressing. It
// mirrors the sample function of the edge anti-aliasing shader.
type texture struct {
	pix    []uint8
	stride int
	w, h   int
}

// newTexture wraps src, converting it to RGBA when needed.
func newTexture(src image.Image) *texture {
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		b := src.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, src, b.Min, draw.Src)
	}
	return &texture{
		pix:    rgba.Pix,
		stride: rgba.Stride,
		w:      rgba.Rect.Dx(),
		h:      rgba.Rect.Dy(),
	}
}

// texel returns the RGB of pixel (x, y) in [0, 1], clamping to the edges.
func (t *texture) texel(x, y int) [3]float64 {
	x = min(max(x, 0), t.w-1)
	y = min(max(y, 0), t.h-1)
	i := y*t.stride + x*4
	return [3]float64{
		float64(t.pix[i]) / 255,
		float64(t.pix[i+1]) / 255,
		float64(t.pix[i+2]) / 255,
	}
}

// sample reads the bilinearly filtered RGB at normalized coordinate uv.
func (t *texture) sample(uv Vec2) [3]float64 {
	px := uv.X*float64(t.w) - 0.5
	py := uv.Y*float64(t.h) - 0.5
	bx, by := math.Floor(px), math.Floor(py)
	fx, fy := px-bx, py-by
	x, y := int(bx), int(by)

	c00 := t.texel(x, y)
	c10 := t.texel(x+1, y)
	c01 := t.texel(x, y+1)
	c11 := t.texel(x+1, y+1)

	var out [3]float64
	for i := range out {
		top := c00[i] + (c10[i]-c00[i])*fx
		bottom := c01[i] + (c11[i]-c01[i])*fx
		out[i] = top + (bottom-top)*fy
	}
	return out
}

// luma is the perceptual brightness with a square-root gamma approximation.
func luma(rgb [3]float64) float64 {
	return math.Sqrt(rgb[0]*0.299 + rgb[1]*0.587 + rgb[2]*0.114)
}

func (t *texture) lumaAt(uv Vec2) float64 {
	return luma(t.sample(uv))
}

// edgeAA evaluates the edge anti-aliasing filter for the output pixel at
// normalized coordinate uv. inv is one texel in normalized units.
func edgeAA(t *texture, uv, inv Vec2) [3]float64 {
	colorCenter := t.sample(uv)
	lumaCenter := luma(colorCenter)

	up := Vec2{0, -inv.Y}
	down := Vec2{0, inv.Y}
	left := Vec2{-inv.X, 0}
	right := Vec2{inv.X, 0}

	lumaDown := t.lumaAt(uv.add(down))
	lumaUp := t.lumaAt(uv.add(up))
	lumaLeft := t.lumaAt(uv.add(left))
	lumaRight := t.lumaAt(uv.add(right))

	lumaMin := min(lumaCenter, lumaDown, lumaUp, lumaLeft, lumaRight)
	lumaMax := max(lumaCenter, lumaDown, lumaUp, lumaLeft, lumaRight)
	lumaRange := lumaMax - lumaMin

	// Flat or dark region: not a visible edge.
	if lumaRange < max(edgeThresholdMin, lumaMax*edgeThresholdMax) {
		return colorCenter
	}

	lumaDownLeft := t.lumaAt(uv.add(down).add(left))
	lumaUpRight := t.lumaAt(uv.add(up).add(right))
	lumaUpLeft := t.lumaAt(uv.add(up).add(left))
	lumaDownRight := t.lumaAt(uv.add(down).add(right))

	lumaDownUp := lumaDown + lumaUp
	lumaLeftRight := lumaLeft + lumaRight
	lumaLeftCorners := lumaDownLeft + lumaUpLeft
	lumaDownCorners := lumaDownLeft + lumaDownRight
	lumaRightCorners := lumaDownRight + lumaUpRight
	lumaUpCorners := lumaUpRight + lumaUpLeft

	edgeHorizontal := math.Abs(-2*lumaLeft+lumaLeftCorners) +
		math.Abs(-2*lumaCenter+lumaDownUp)*2 +
		math.Abs(-2*lumaRight+lumaRightCorners)
	edgeVertical := math.Abs(-2*lumaUp+lumaUpCorners) +
		math.Abs(-2*lumaCenter+lumaLeftRight)*2 +
		math.Abs(-2*lumaDown+lumaDownCorners)
	isHorizontal := edgeHorizontal >= edgeVertical

	luma1, luma2 := lumaLeft, lumaRight
	stepLength := inv.X
	if isHorizontal {
		luma1, luma2 = lumaDown, lumaUp
		stepLength = inv.Y
	}
	gradient1 := luma1 - lumaCenter
	gradient2 := luma2 - lumaCenter
	is1Steepest := math.Abs(gradient1) >= math.Abs(gradient2)
	gradientScaled := 0.25 * max(math.Abs(gradient1), math.Abs(gradient2))

	lumaLocalAverage := 0.5 * (luma2 + lumaCenter)
	if is1Steepest {
		stepLength = -stepLength
		lumaLocalAverage = 0.5 * (luma1 + lumaCenter)
	}

	// Move half a texel onto the edge, then search along it.
	currentUV := uv
	offset := Vec2{0, inv.Y}
	if isHorizontal {
		currentUV.Y += stepLength * 0.5
		offset = Vec2{inv.X, 0}
	} else {
		currentUV.X += stepLength * 0.5
	}

	uv1 := currentUV.sub(offset)
	uv2 := currentUV.add(offset)
	lumaEnd1 := t.lumaAt(uv1) - lumaLocalAverage
	lumaEnd2 := t.lumaAt(uv2) - lumaLocalAverage
	reached1 := math.Abs(lumaEnd1) >= gradientScaled
	reached2 := math.Abs(lumaEnd2) >= gradientScaled
	if !reached1 {
		uv1 = uv1.sub(offset)
	}
	if !reached2 {
		uv2 = uv2.add(offset)
	}

	if !(reached1 && reached2) {
		for i := 2; i < edgeIterations; i++ {
			if !reached1 {
				lumaEnd1 = t.lumaAt(uv1) - lumaLocalAverage
			}
			if !reached2 {
				lumaEnd2 = t.lumaAt(uv2) - lumaLocalAverage
			}
			reached1 = math.Abs(lumaEnd1) >= gradientScaled
			reached2 = math.Abs(lumaEnd2) >= gradientScaled
			if !reached1 {
				uv1 = uv1.sub(offset.scale(edgeQuality[i]))
			}
			if !reached2 {
				uv2 = uv2.add(offset.scale(edgeQuality[i]))
			}
			if reached1 && reached2 {
				break
			}
		}
	}

	distance1 := uv.Y - uv1.Y
	distance2 := uv2.Y - uv.Y
	if isHorizontal {
		distance1 = uv.X - uv1.X
		distance2 = uv2.X - uv.X
	}
	isDirection1 := distance1 < distance2
	distanceFinal := min(distance1, distance2)
	edgeThickness := distance1 + distance2
	pixelOffset := -distanceFinal/edgeThickness + 0.5

	// The luma delta at the closer end must vary the same way as the center.
	isLumaCenterSmaller := lumaCenter < lumaLocalAverage
	lumaEnd := lumaEnd2
	if isDirection1 {
		lumaEnd = lumaEnd1
	}
	finalOffset := 0.0
	if (lumaEnd < 0) != isLumaCenterSmaller {
		finalOffset = pixelOffset
	}

	lumaAverage := (1.0 / 12.0) * (2*(lumaDownUp+lumaLeftRight) + lumaLeftCorners + lumaRightCorners)
	sub1 := clamp01(math.Abs(lumaAverage-lumaCenter) / lumaRange)
	sub2 := (-2*sub1 + 3) * sub1 * sub1
	subFinal := sub2 * sub2 * subpixelQuality

	finalOffset = max(finalOffset, subFinal)

	finalUV := uv
	if isHorizontal {
		finalUV.Y += finalOffset * stepLength
	} else {
		finalUV.X += finalOffset * stepLength
	}
	return t.sample(finalUV)
}

// ApplyEdgeAA runs the edge anti-aliasing filter over src at its native
// resolution and returns an opaque image of the same size. It is the CPU
// counterpart of the shader used by Present, for tests and reference
// images.
func ApplyEdgeAA(src image.Image) *image.RGBA {
	t := newTexture(src)
	dst := image.NewRGBA(image.Rect(0, 0, t.w, t.h))
	inv := Vec2{1 / float64(t.w), 1 / float64(t.h)}
	for y := 0; y < t.h; y++ {
		for x := 0; x < t.w; x++ {
			uv := Vec2{(float64(x) + 0.5) * inv.X, (float64(y) + 0.5) * inv.Y}
			setOpaque(dst, x, y, edgeAA(t, uv, inv))
		}
	}
	return dst
}

// setOpaque writes rgb with full alpha at (x, y).
func setOpaque(dst *image.RGBA, x, y int, rgb [3]float64) {
	i := dst.PixOffset(x, y)
	dst.Pix[i] = unitToByte(rgb[0])
	dst.Pix[i+1] = unitToByte(rgb[1])
	dst.Pix[i+2] = unitToByte(rgb[2])
	dst.Pix[i+3] = 0xff
}
