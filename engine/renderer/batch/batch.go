package batch

import (
	"fmt"
	"sort"

	"github.com/spaghettifunk/ukiyo/engine/math"
	"github.com/spaghettifunk/ukiyo/engine/renderer/extract"
	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

/**
 * @brief Geometry is the flat vertex/index data ready for buffer upload,
 * four vertices and six indices per drawable quad.
 */
type Geometry struct {
	Vertices []math.Vertex2D
	Indices  []uint32
}

/**
 * @brief Build consumes an extraction pass's quad list and produces batched
 * geometry. Quads are stable-sorted by z-order, then each one contributes
 * four vertices and six indices; text quads resolve their atlas UVs through
 * the glyph id recorded at extraction. VertexIndex and TypeIndex on each
 * record are assigned here.
 *
 * Clip records produce no geometry; they survive in the quad list for the
 * draw stage's scissor handling.
 */
func Build(quads []*metadata.ExtractedQuad, fonts extract.FontStore) (*Geometry, error) {
	sort.SliceStable(quads, func(i, j int) bool {
		return quads[i].ZIndex < quads[j].ZIndex
	})

	geometry := &Geometry{
		Vertices: make([]math.Vertex2D, 0, len(quads)*4),
		Indices:  make([]uint32, 0, len(quads)*6),
	}

	slot := uint32(0)
	for _, quad := range quads {
		if quad.QuadType == metadata.UIQuadTypeClip {
			continue
		}

		uvMin, uvMax, err := resolveUV(quad, fonts)
		if err != nil {
			return nil, err
		}

		quad.VertexIndex = slot * 4
		quad.TypeIndex = slot

		minx, miny := quad.Rect.Min.X, quad.Rect.Min.Y
		maxx, maxy := quad.Rect.Max.X, quad.Rect.Max.Y

		p0 := math.Vertex2D{Position: math.NewVec2(minx, miny), Texcoord: math.NewVec2(uvMin.X, uvMin.Y), Colour: quad.Colour}
		p1 := math.Vertex2D{Position: math.NewVec2(maxx, miny), Texcoord: math.NewVec2(uvMax.X, uvMin.Y), Colour: quad.Colour}
		p2 := math.Vertex2D{Position: math.NewVec2(maxx, maxy), Texcoord: math.NewVec2(uvMax.X, uvMax.Y), Colour: quad.Colour}
		p3 := math.Vertex2D{Position: math.NewVec2(minx, maxy), Texcoord: math.NewVec2(uvMin.X, uvMax.Y), Colour: quad.Colour}

		geometry.Vertices = append(geometry.Vertices, p0, p2, p3, p1) // 0    3
		//
		// 2    1

		base := quad.VertexIndex
		// Index data 210301
		geometry.Indices = append(geometry.Indices,
			base+2, base+1, base+0,
			base+3, base+0, base+1,
		)

		slot++
	}

	return geometry, nil
}

// resolveUV computes the texture-space rectangle a quad samples from.
func resolveUV(quad *metadata.ExtractedQuad, fonts extract.FontStore) (math.Vec2, math.Vec2, error) {
	switch quad.QuadType {
	case metadata.UIQuadTypeText:
		font := fonts.Get(quad.FontHandle)
		if font == nil {
			return math.Vec2{}, math.Vec2{}, fmt.Errorf("text quad references font handle %d which is not resident", quad.FontHandle)
		}
		if quad.CharID >= uint32(len(font.Glyphs)) {
			return math.Vec2{}, math.Vec2{}, fmt.Errorf("text quad atlas id %d out of range for font '%s'", quad.CharID, font.Face)
		}
		g := font.Glyphs[quad.CharID]
		uvMin := math.NewVec2(
			float32(g.X)/float32(font.AtlasSizeX),
			float32(g.Y)/float32(font.AtlasSizeY),
		)
		uvMax := math.NewVec2(
			float32(g.X+g.Width)/float32(font.AtlasSizeX),
			float32(g.Y+g.Height)/float32(font.AtlasSizeY),
		)
		return uvMin, uvMax, nil

	case metadata.UIQuadTypeImage:
		uvMin := math.NewVec2Zero()
		uvMax := math.NewVec2One()
		if quad.UVMin != nil {
			uvMin = *quad.UVMin
		}
		if quad.UVMax != nil {
			uvMax = *quad.UVMax
		}
		return uvMin, uvMax, nil

	default:
		return math.NewVec2Zero(), math.NewVec2One(), nil
	}
}
