package extract

import (
	"github.com/spaghettifunk/ukiyo/engine/core"
	"github.com/spaghettifunk/ukiyo/engine/math"
	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

/**
 * @brief TextureStore fetches resident textures by name. A nil result
 * means the image asset has not completed loading.
 */
type TextureStore interface {
	Find(name string) *metadata.Texture
}

// Quads converts a solid quad primitive into a single extraction record
// carrying the primitive's border radius. Caller dispatches by type first.
func Quads(primitive *metadata.RenderPrimitive) []*metadata.ExtractedQuad {
	if primitive.Type != metadata.RenderPrimitiveQuad {
		core.LogFatal("extract.Quads invoked with a primitive of type %d, only quad primitives are accepted", primitive.Type)
	}

	layout := primitive.Layout
	return []*metadata.ExtractedQuad{
		{
			QuadType: metadata.UIQuadTypeQuad,
			Rect: math.Extents2D{
				Min: math.NewVec2(layout.PosX, layout.PosY),
				Max: math.NewVec2(layout.PosX+layout.Width, layout.PosY+layout.Height),
			},
			Colour:       primitive.BackgroundColour.ToLinear(),
			ZIndex:       layout.ZIndex,
			FontHandle:   metadata.InvalidFontHandle,
			BorderRadius: primitive.BorderRadius,
		},
	}
}

// Images converts an image primitive into a single textured extraction
// record. An image asset still loading yields an empty result for the
// frame, same policy as fonts.
func Images(primitive *metadata.RenderPrimitive, textures TextureStore) []*metadata.ExtractedQuad {
	if primitive.Type != metadata.RenderPrimitiveImage {
		core.LogFatal("extract.Images invoked with a primitive of type %d, only image primitives are accepted", primitive.Type)
	}

	texture := textures.Find(primitive.ImageName)
	if texture == nil {
		return []*metadata.ExtractedQuad{}
	}

	uvMin := math.NewVec2Zero()
	uvMax := math.NewVec2One()
	if primitive.UVMin != nil {
		uvMin = clampUV(*primitive.UVMin)
	}
	if primitive.UVMax != nil {
		uvMax = clampUV(*primitive.UVMax)
	}

	layout := primitive.Layout
	return []*metadata.ExtractedQuad{
		{
			QuadType: metadata.UIQuadTypeImage,
			Rect: math.Extents2D{
				Min: math.NewVec2(layout.PosX, layout.PosY),
				Max: math.NewVec2(layout.PosX+layout.Width, layout.PosY+layout.Height),
			},
			Colour:     primitive.BackgroundColour.ToLinear(),
			ZIndex:     layout.ZIndex,
			FontHandle: metadata.InvalidFontHandle,
			Image:      texture,
			UVMin:      &uvMin,
			UVMax:      &uvMax,
		},
	}
}

// clampUV keeps texture coordinates inside the sampled texture.
func clampUV(v math.Vec2) math.Vec2 {
	return math.NewVec2(math.Clamp(v.X, 0, 1), math.Clamp(v.Y, 0, 1))
}
