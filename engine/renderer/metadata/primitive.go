package metadata

import (
	gomath "math"

	"github.com/spaghettifunk/ukiyo/engine/math"
)

/**
 * @brief Colour in sRGB space as produced by the UI layout pass. The
 * renderer works in linear space; see ToLinear.
 */
type Colour struct {
	R, G, B, A float32
}

func NewColour(r, g, b, a float32) Colour {
	return Colour{R: r, G: g, B: b, A: a}
}

// srgbToLinear applies the standard sRGB electro-optical transfer function
// to a single channel.
func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(gomath.Pow((float64(c)+0.055)/1.055, 2.4))
}

/**
 * @brief ToLinear converts the colour to the renderer's native linear RGBA
 * representation. Alpha is passed through untouched. Deterministic: equal
 * inputs always produce bit-identical outputs.
 */
func (c Colour) ToLinear() math.Vec4 {
	return math.NewVec4(
		srgbToLinear(c.R),
		srgbToLinear(c.G),
		srgbToLinear(c.B),
		c.A,
	)
}

type RenderPrimitiveType int

const (
	RenderPrimitiveEmpty RenderPrimitiveType = iota
	RenderPrimitiveClip
	RenderPrimitiveQuad
	RenderPrimitiveText
	RenderPrimitiveImage
)

/**
 * @brief The laid-out box a primitive occupies, as decided by the UI
 * layout pass upstream of this pipeline.
 */
type LayoutBox struct {
	PosX   float32
	PosY   float32
	Width  float32
	Height float32
	ZIndex int32
}

/**
 * @brief An abstract, already-laid-out UI drawable produced by a layout
 * pass. A flat tagged union: Type selects which of the remaining fields
 * are meaningful. Immutable once handed to the extraction pass.
 */
type RenderPrimitive struct {
	Type RenderPrimitiveType

	BackgroundColour Colour
	Layout           LayoutBox

	// Text.
	FontSize float32
	Content  string
	FontFace string

	// Quad.
	BorderRadius [4]float32

	// Image.
	ImageName string
	UVMin     *math.Vec2
	UVMax     *math.Vec2
}
