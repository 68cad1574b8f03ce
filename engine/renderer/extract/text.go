package extract

import (
	"github.com/spaghettifunk/ukiyo/engine/core"
	"github.com/spaghettifunk/ukiyo/engine/math"
	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

/**
 * @brief FontRegistry resolves a logical font face to a handle. Absence of
 * a mapping signals upstream misconfiguration, not a runtime race.
 */
type FontRegistry interface {
	GetHandle(face string) (metadata.FontHandle, bool)
}

/**
 * @brief FontStore fetches loaded font data by handle. A nil result is the
 * legitimate "asset load not complete yet" case.
 */
type FontStore interface {
	Get(handle metadata.FontHandle) *metadata.FontData
}

/**
 * @brief Texts converts one laid-out text primitive into one quad per
 * visible glyph, annotated with the glyph's atlas id for the batcher.
 *
 * The caller must have dispatched on the primitive type already: passing
 * anything but a Text primitive is a contract violation and terminates the
 * process. A registered-but-not-yet-loaded font yields an empty slice
 * (nothing to draw this frame; the next pass retries implicitly). The
 * output preserves the layout engine's record order 1:1 and is either the
 * full glyph sequence or empty, never partial.
 *
 * Pure over its visible inputs; safe to run concurrently across primitives
 * while the registry and store are read-only.
 */
func Texts(primitive *metadata.RenderPrimitive, registry FontRegistry, store FontStore) []*metadata.ExtractedQuad {
	extractedTexts := []*metadata.ExtractedQuad{}

	if primitive.Type != metadata.RenderPrimitiveText {
		core.LogFatal("extract.Texts invoked with a primitive of type %d, only text primitives are accepted", primitive.Type)
	}

	layout := primitive.Layout
	fontSize := primitive.FontSize

	fontHandle, ok := registry.GetHandle(primitive.FontFace)
	if !ok {
		core.LogFatal("font face '%s' referenced by a text primitive was never registered", primitive.FontFace)
	}

	font := store.Get(fontHandle)
	if font == nil {
		// Asset load not complete. Nothing to draw this frame.
		return extractedTexts
	}

	charLayouts := font.Layout(
		metadata.CoordinateSystemPositiveYDown,
		metadata.TextAlignmentStart,
		math.NewVec2(layout.PosX, layout.PosY+fontSize),
		math.NewVec2(layout.Width, layout.Height),
		primitive.Content,
		fontSize*1.2,
		fontSize,
	)

	colour := primitive.BackgroundColour.ToLinear()

	for _, charLayout := range charLayouts {
		charID, ok := font.CharID(charLayout.Content)
		if !ok {
			core.LogFatal("font '%s' has no atlas id for %q even though the layout engine emitted it", font.Face, charLayout.Content)
		}
		extractedTexts = append(extractedTexts, &metadata.ExtractedQuad{
			QuadType:   metadata.UIQuadTypeText,
			FontHandle: fontHandle,
			Rect: math.Extents2D{
				Min: charLayout.Position,
				Max: charLayout.Position.Add(charLayout.Size),
			},
			Colour: colour,
			CharID: charID,
			ZIndex: layout.ZIndex,
		})
	}

	return extractedTexts
}
