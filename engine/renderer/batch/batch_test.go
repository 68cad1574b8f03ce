package batch

import (
	"testing"

	"github.com/spaghettifunk/ukiyo/engine/math"
	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

const tolerance = 0.0001

type fakeStore map[metadata.FontHandle]*metadata.FontData

func (s fakeStore) Get(handle metadata.FontHandle) *metadata.FontData {
	return s[handle]
}

func testFont() *metadata.FontData {
	return &metadata.FontData{
		Face:       "TestMono",
		Size:       10,
		AtlasSizeX: 256,
		AtlasSizeY: 256,
		Glyphs: []*metadata.FontGlyph{
			{Codepoint: 'H', X: 16, Y: 32, Width: 8, Height: 10, XAdvance: 10},
		},
	}
}

func solidQuad(z int32) *metadata.ExtractedQuad {
	return &metadata.ExtractedQuad{
		QuadType:   metadata.UIQuadTypeQuad,
		Rect:       math.Extents2D{Min: math.NewVec2(0, 0), Max: math.NewVec2(10, 10)},
		Colour:     math.NewVec4(1, 0, 0, 1),
		ZIndex:     z,
		FontHandle: metadata.InvalidFontHandle,
	}
}

func textQuad() *metadata.ExtractedQuad {
	return &metadata.ExtractedQuad{
		QuadType:   metadata.UIQuadTypeText,
		Rect:       math.Extents2D{Min: math.NewVec2(1, 2), Max: math.NewVec2(9, 12)},
		Colour:     math.NewVec4(1, 1, 1, 1),
		ZIndex:     1,
		FontHandle: 0,
		CharID:     0,
	}
}

func TestBuildVertexAndIndexCounts(t *testing.T) {
	store := fakeStore{0: testFont()}
	quads := []*metadata.ExtractedQuad{solidQuad(0), textQuad()}

	geometry, err := Build(quads, store)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(geometry.Vertices) != 8 {
		t.Errorf("vertices = %d, want 8", len(geometry.Vertices))
	}
	if len(geometry.Indices) != 12 {
		t.Errorf("indices = %d, want 12", len(geometry.Indices))
	}
}

func TestBuildAssignsVertexIndices(t *testing.T) {
	store := fakeStore{0: testFont()}
	quads := []*metadata.ExtractedQuad{solidQuad(0), textQuad()}

	if _, err := Build(quads, store); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if quads[0].VertexIndex != 0 || quads[0].TypeIndex != 0 {
		t.Errorf("first quad indices = %d/%d, want 0/0", quads[0].VertexIndex, quads[0].TypeIndex)
	}
	if quads[1].VertexIndex != 4 || quads[1].TypeIndex != 1 {
		t.Errorf("second quad indices = %d/%d, want 4/1", quads[1].VertexIndex, quads[1].TypeIndex)
	}
}

func TestBuildSortsByZOrder(t *testing.T) {
	store := fakeStore{}
	front := solidQuad(5)
	back := solidQuad(1)
	quads := []*metadata.ExtractedQuad{front, back}

	if _, err := Build(quads, store); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if quads[0] != back || quads[1] != front {
		t.Errorf("quads not sorted by z-order")
	}
	if back.VertexIndex != 0 || front.VertexIndex != 4 {
		t.Errorf("vertex indices do not follow z-order: %d, %d", back.VertexIndex, front.VertexIndex)
	}
}

func TestBuildResolvesTextUVsFromAtlas(t *testing.T) {
	font := testFont()
	store := fakeStore{0: font}
	quad := textQuad()

	geometry, err := Build([]*metadata.ExtractedQuad{quad}, store)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantMin := math.NewVec2(16.0/256.0, 32.0/256.0)
	wantMax := math.NewVec2(24.0/256.0, 42.0/256.0)

	// Vertices are emitted p0, p2, p3, p1: p0 carries uvMin, p2 uvMax.
	if !geometry.Vertices[0].Texcoord.Compare(wantMin, tolerance) {
		t.Errorf("p0 texcoord = %+v, want %+v", geometry.Vertices[0].Texcoord, wantMin)
	}
	if !geometry.Vertices[1].Texcoord.Compare(wantMax, tolerance) {
		t.Errorf("p2 texcoord = %+v, want %+v", geometry.Vertices[1].Texcoord, wantMax)
	}
}

func TestBuildTextQuadWithUnloadedFontFails(t *testing.T) {
	quad := textQuad()
	if _, err := Build([]*metadata.ExtractedQuad{quad}, fakeStore{}); err == nil {
		t.Fatalf("expected an error for a text quad whose font is not resident")
	}
}

func TestBuildSkipsClipQuads(t *testing.T) {
	store := fakeStore{}
	clip := &metadata.ExtractedQuad{
		QuadType:   metadata.UIQuadTypeClip,
		Rect:       math.Extents2D{Max: math.NewVec2(100, 100)},
		FontHandle: metadata.InvalidFontHandle,
	}

	geometry, err := Build([]*metadata.ExtractedQuad{clip, solidQuad(0)}, store)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(geometry.Vertices) != 4 {
		t.Errorf("clip record produced geometry: %d vertices", len(geometry.Vertices))
	}
}

func TestBuildImageQuadUVBounds(t *testing.T) {
	uvMin := math.NewVec2(0.25, 0.25)
	uvMax := math.NewVec2(0.75, 0.5)
	quad := &metadata.ExtractedQuad{
		QuadType:   metadata.UIQuadTypeImage,
		Rect:       math.Extents2D{Max: math.NewVec2(32, 32)},
		FontHandle: metadata.InvalidFontHandle,
		UVMin:      &uvMin,
		UVMax:      &uvMax,
	}

	geometry, err := Build([]*metadata.ExtractedQuad{quad}, fakeStore{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !geometry.Vertices[0].Texcoord.Compare(uvMin, tolerance) {
		t.Errorf("p0 texcoord = %+v, want %+v", geometry.Vertices[0].Texcoord, uvMin)
	}
}
