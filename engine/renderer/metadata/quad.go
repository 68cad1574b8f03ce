package metadata

import (
	"github.com/spaghettifunk/ukiyo/engine/math"
)

type UIQuadType int

const (
	UIQuadTypeQuad UIQuadType = iota
	UIQuadTypeText
	UIQuadTypeImage
	UIQuadTypeClip
)

/**
 * @brief One GPU-batcher-ready drawable rectangle. A single flat record
 * shape is shared by every quad kind so the batching stage downstream can
 * consume a fixed-width list; QuadType tags which of the kind-specific
 * fields carry meaning, the rest stay at their zero values.
 */
type ExtractedQuad struct {
	QuadType UIQuadType

	/** @brief Screen-space rectangle, Min/Max corners. */
	Rect math.Extents2D
	/** @brief Fill colour in the renderer's native linear representation. */
	Colour math.Vec4
	/** @brief Draw-order layer, propagated from the primitive's layout. */
	ZIndex int32

	/** @brief Assigned by the batching stage, always 0 at extraction. */
	VertexIndex uint32
	/** @brief Assigned by the batching stage, always 0 at extraction. */
	TypeIndex uint32

	// Text quads.
	FontHandle FontHandle
	CharID     uint32

	// Solid quads.
	BorderRadius [4]float32

	// Image quads.
	Image *Texture
	UVMin *math.Vec2
	UVMax *math.Vec2
}
