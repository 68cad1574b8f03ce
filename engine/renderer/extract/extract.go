package extract

import (
	"github.com/spaghettifunk/ukiyo/engine/math"
	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

/**
 * @brief Extract runs one extraction pass over an ordered primitive list,
 * dispatching each primitive by its kind tag and concatenating the
 * resulting quads. This is the dispatcher the per-kind extractors assume
 * has already run; it never hands a primitive to the wrong extractor.
 */
func Extract(primitives []*metadata.RenderPrimitive, registry FontRegistry, fonts FontStore, textures TextureStore) []*metadata.ExtractedQuad {
	quads := []*metadata.ExtractedQuad{}

	for _, primitive := range primitives {
		switch primitive.Type {
		case metadata.RenderPrimitiveText:
			quads = append(quads, Texts(primitive, registry, fonts)...)
		case metadata.RenderPrimitiveQuad:
			quads = append(quads, Quads(primitive)...)
		case metadata.RenderPrimitiveImage:
			quads = append(quads, Images(primitive, textures)...)
		case metadata.RenderPrimitiveClip:
			quads = append(quads, clip(primitive))
		case metadata.RenderPrimitiveEmpty:
			// Nothing to draw.
		}
	}

	return quads
}

// clip emits the scissor rectangle record for the batcher.
func clip(primitive *metadata.RenderPrimitive) *metadata.ExtractedQuad {
	layout := primitive.Layout
	return &metadata.ExtractedQuad{
		QuadType: metadata.UIQuadTypeClip,
		Rect: math.Extents2D{
			Min: math.NewVec2(layout.PosX, layout.PosY),
			Max: math.NewVec2(layout.PosX+layout.Width, layout.PosY+layout.Height),
		},
		ZIndex:     layout.ZIndex,
		FontHandle: metadata.InvalidFontHandle,
	}
}
