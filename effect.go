package letterbox

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Edge anti-aliasing tuning. The Kage source below carries the same values.
const (
	edgeThresholdMin = 0.0312
	edgeThresholdMax = 0.125
	edgeIterations   = 12
	subpixelQuality  = 0.75
)

// edgeQuality is the step multiplier used by the edge search at each
// iteration.
var edgeQuality = [edgeIterations]float64{1, 1, 1, 1, 1, 1, 1.5, 2, 2, 2, 4, 8}

// edgeAAShaderSrc is the contrast-adaptive edge anti-aliasing filter.
//
// The algorithm runs in normalized [0,1] texture coordinates derived from
// TextureSize. Kage fetches are unfiltered, so sample reproduces bilinear
// filtering with clamp-to-edge addressing.
const edgeAAShaderSrc = `//kage:unit pixels
package main

var TextureSize vec2

func luma(rgb vec3) float {
	return sqrt(dot(rgb, vec3(0.299, 0.587, 0.114)))
}

func sample(uv vec2) vec3 {
	p := uv*TextureSize - vec2(0.5)
	base := floor(p)
	f := p - base
	lo := vec2(0.5)
	hi := TextureSize - vec2(0.5)
	origin := imageSrc0Origin()
	c00 := imageSrc0UnsafeAt(clamp(base+vec2(0.5, 0.5), lo, hi) + origin)
	c10 := imageSrc0UnsafeAt(clamp(base+vec2(1.5, 0.5), lo, hi) + origin)
	c01 := imageSrc0UnsafeAt(clamp(base+vec2(0.5, 1.5), lo, hi) + origin)
	c11 := imageSrc0UnsafeAt(clamp(base+vec2(1.5, 1.5), lo, hi) + origin)
	return mix(mix(c00, c10, f.x), mix(c01, c11, f.x), f.y).rgb
}

func quality(i int) float {
	if i < 6 {
		return 1.0
	}
	if i == 6 {
		return 1.5
	}
	if i < 10 {
		return 2.0
	}
	if i == 10 {
		return 4.0
	}
	return 8.0
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	inv := vec2(1.0/TextureSize.x, 1.0/TextureSize.y)
	uv := (src - imageSrc0Origin()) * inv

	colorCenter := sample(uv)
	lumaCenter := luma(colorCenter)

	up := vec2(0.0, -inv.y)
	down := vec2(0.0, inv.y)
	left := vec2(-inv.x, 0.0)
	right := vec2(inv.x, 0.0)

	lumaDown := luma(sample(uv + down))
	lumaUp := luma(sample(uv + up))
	lumaLeft := luma(sample(uv + left))
	lumaRight := luma(sample(uv + right))

	lumaMin := min(lumaCenter, min(min(lumaDown, lumaUp), min(lumaLeft, lumaRight)))
	lumaMax := max(lumaCenter, max(max(lumaDown, lumaUp), max(lumaLeft, lumaRight)))
	lumaRange := lumaMax - lumaMin

	if lumaRange < max(0.0312, lumaMax*0.125) {
		return vec4(colorCenter, 1.0)
	}

	lumaDownLeft := luma(sample(uv + down + left))
	lumaUpRight := luma(sample(uv + up + right))
	lumaUpLeft := luma(sample(uv + up + left))
	lumaDownRight := luma(sample(uv + down + right))

	lumaDownUp := lumaDown + lumaUp
	lumaLeftRight := lumaLeft + lumaRight
	lumaLeftCorners := lumaDownLeft + lumaUpLeft
	lumaDownCorners := lumaDownLeft + lumaDownRight
	lumaRightCorners := lumaDownRight + lumaUpRight
	lumaUpCorners := lumaUpRight + lumaUpLeft

	edgeHorizontal := abs(-2.0*lumaLeft+lumaLeftCorners) + abs(-2.0*lumaCenter+lumaDownUp)*2.0 + abs(-2.0*lumaRight+lumaRightCorners)
	edgeVertical := abs(-2.0*lumaUp+lumaUpCorners) + abs(-2.0*lumaCenter+lumaLeftRight)*2.0 + abs(-2.0*lumaDown+lumaDownCorners)
	isHorizontal := edgeHorizontal >= edgeVertical

	luma1 := lumaLeft
	luma2 := lumaRight
	stepLength := inv.x
	if isHorizontal {
		luma1 = lumaDown
		luma2 = lumaUp
		stepLength = inv.y
	}
	gradient1 := luma1 - lumaCenter
	gradient2 := luma2 - lumaCenter
	is1Steepest := abs(gradient1) >= abs(gradient2)
	gradientScaled := 0.25 * max(abs(gradient1), abs(gradient2))

	lumaLocalAverage := 0.5 * (luma2 + lumaCenter)
	if is1Steepest {
		stepLength = -stepLength
		lumaLocalAverage = 0.5 * (luma1 + lumaCenter)
	}

	currentUv := uv
	offset := vec2(0.0, inv.y)
	if isHorizontal {
		currentUv.y += stepLength * 0.5
		offset = vec2(inv.x, 0.0)
	} else {
		currentUv.x += stepLength * 0.5
	}

	uv1 := currentUv - offset
	uv2 := currentUv + offset
	lumaEnd1 := luma(sample(uv1)) - lumaLocalAverage
	lumaEnd2 := luma(sample(uv2)) - lumaLocalAverage
	reached1 := abs(lumaEnd1) >= gradientScaled
	reached2 := abs(lumaEnd2) >= gradientScaled
	if !reached1 {
		uv1 -= offset
	}
	if !reached2 {
		uv2 += offset
	}

	if !(reached1 && reached2) {
		for i := 2; i < 12; i++ {
			if !reached1 {
				lumaEnd1 = luma(sample(uv1)) - lumaLocalAverage
			}
			if !reached2 {
				lumaEnd2 = luma(sample(uv2)) - lumaLocalAverage
			}
			reached1 = abs(lumaEnd1) >= gradientScaled
			reached2 = abs(lumaEnd2) >= gradientScaled
			if !reached1 {
				uv1 -= offset * quality(i)
			}
			if !reached2 {
				uv2 += offset * quality(i)
			}
			if reached1 && reached2 {
				break
			}
		}
	}

	distance1 := uv.y - uv1.y
	distance2 := uv2.y - uv.y
	if isHorizontal {
		distance1 = uv.x - uv1.x
		distance2 = uv2.x - uv.x
	}
	isDirection1 := distance1 < distance2
	distanceFinal := min(distance1, distance2)
	edgeThickness := distance1 + distance2
	pixelOffset := -distanceFinal/edgeThickness + 0.5

	isLumaCenterSmaller := lumaCenter < lumaLocalAverage
	lumaEnd := lumaEnd2
	if isDirection1 {
		lumaEnd = lumaEnd1
	}
	correctVariation := lumaEnd < 0.0
	if isLumaCenterSmaller {
		correctVariation = !correctVariation
	}
	finalOffset := 0.0
	if correctVariation {
		finalOffset = pixelOffset
	}

	lumaAverage := (1.0 / 12.0) * (2.0*(lumaDownUp+lumaLeftRight) + lumaLeftCorners + lumaRightCorners)
	subPixelOffset1 := clamp(abs(lumaAverage-lumaCenter)/lumaRange, 0.0, 1.0)
	subPixelOffset2 := (-2.0*subPixelOffset1 + 3.0) * subPixelOffset1 * subPixelOffset1
	subPixelOffsetFinal := subPixelOffset2 * subPixelOffset2 * 0.75

	finalOffset = max(finalOffset, subPixelOffsetFinal)

	finalUv := uv
	if isHorizontal {
		finalUv.y += finalOffset * stepLength
	} else {
		finalUv.x += finalOffset * stepLength
	}
	return vec4(sample(finalUv), 1.0)
}
`

// PostEffect is the optional post-process run while presenting the surface.
// It owns its compiled shader and the TextureSize uniform.
type PostEffect struct {
	shader   *ebiten.Shader
	uniforms map[string]any
	sizeF32  [2]float32 // persistent buffer
	sizeView []float32  // persistent slice header pointing into sizeF32
	shaderOp ebiten.DrawRectShaderOptions
}

// newEdgeAAEffect compiles the edge anti-aliasing shader.
func newEdgeAAEffect() (*PostEffect, error) {
	s, err := ebiten.NewShader([]byte(edgeAAShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("compile edge antialiasing shader: %w", err)
	}
	e := &PostEffect{
		shader:   s,
		uniforms: make(map[string]any, 1),
	}
	e.sizeView = e.sizeF32[:]
	e.uniforms["TextureSize"] = e.sizeView
	return e, nil
}

// draw blits src onto dst through the effect shader. geo places the
// src-sized rectangle on dst.
func (e *PostEffect) draw(dst, src *ebiten.Image, geo ebiten.GeoM) {
	b := src.Bounds()
	e.sizeF32[0] = float32(b.Dx())
	e.sizeF32[1] = float32(b.Dy())
	e.shaderOp.GeoM = geo
	e.shaderOp.Blend = ebiten.BlendCopy
	e.shaderOp.Images[0] = src
	e.shaderOp.Uniforms = e.uniforms
	dst.DrawRectShader(b.Dx(), b.Dy(), e.shader, &e.shaderOp)
}

// dispose releases the shader.
func (e *PostEffect) dispose() {
	if e.shader != nil {
		e.shader.Deallocate()
		e.shader = nil
	}
}
