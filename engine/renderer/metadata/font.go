package metadata

import (
	"github.com/spaghettifunk/ukiyo/engine/math"
)

/** @brief A handle into the font system's store of loaded fonts. */
type FontHandle uint16

/** @brief A handle value indicating no font. */
const InvalidFontHandle FontHandle = FontHandle(InvalidIDUint16)

type BitmapFontConfig struct {
	Name         string
	Size         uint16
	ResourceName string
}

type FontGlyph struct {
	Codepoint int32
	X         uint16
	Y         uint16
	Width     uint16
	Height    uint16
	XOffset   int16
	YOffset   int16
	XAdvance  int16
	PageID    uint8
}

type FontKerning struct {
	Codepoint0 int32
	Codepoint1 int32
	Amount     int16
}

/**
 * @brief Metrics and atlas mapping of a loaded bitmap font. Built by the
 * bitmap font loader, shared read-only across the pipeline afterwards.
 */
type FontData struct {
	Face        string
	Size        uint32
	LineHeight  int32
	Baseline    int32
	AtlasSizeX  int32
	AtlasSizeY  int32
	Atlas       *TextureMap
	Glyphs      []*FontGlyph
	Kernings    []*FontKerning
	TabXAdvance float32
}

type BitmapFontPage struct {
	ID   int8
	File string
}

type BitmapFontResourceData struct {
	Data  *FontData
	Pages []*BitmapFontPage
}

/**
 * @brief The vertical axis convention used to interpret layout positions.
 */
type CoordinateSystem int

const (
	/** @brief Y grows upward (GL-style clip space). */
	CoordinateSystemPositiveYUp CoordinateSystem = iota
	/** @brief Y grows downward (screen space). The UI pipeline uses this. */
	CoordinateSystemPositiveYDown
)

type TextAlignment int

const (
	TextAlignmentStart TextAlignment = iota
	TextAlignmentMiddle
	TextAlignmentEnd
)

/**
 * @brief A single laid-out character: which rune it is, where its quad
 * starts and how big it is. Consumed immediately by the extraction stage.
 */
type CharacterLayout struct {
	Content  rune
	Position math.Vec2
	Size     math.Vec2
}

// glyph finds the glyph for the given codepoint, falling back to the
// font's unknown-codepoint glyph (-1) when not present. Returns nil when
// the font carries neither.
func (f *FontData) glyph(codepoint int32) *FontGlyph {
	for i := 0; i < len(f.Glyphs); i++ {
		if f.Glyphs[i].Codepoint == codepoint {
			return f.Glyphs[i]
		}
	}
	for i := 0; i < len(f.Glyphs); i++ {
		if f.Glyphs[i].Codepoint == -1 {
			return f.Glyphs[i]
		}
	}
	return nil
}

// kerning returns the kerning amount between the two codepoints, 0 when
// the pair has no entry.
func (f *FontData) kerning(codepoint0, codepoint1 int32) int16 {
	for i := 0; i < len(f.Kernings); i++ {
		k := f.Kernings[i]
		if k.Codepoint0 == codepoint0 && k.Codepoint1 == codepoint1 {
			return k.Amount
		}
	}
	return 0
}

/**
 * @brief CharID resolves the atlas glyph identifier for the given rune:
 * the index of its entry within the font's glyph table, which is also its
 * slot in the packed atlas. The second return value is false when the
 * font has no glyph for the rune.
 */
func (f *FontData) CharID(r rune) (uint32, bool) {
	for i := 0; i < len(f.Glyphs); i++ {
		if f.Glyphs[i].Codepoint == int32(r) {
			return uint32(i), true
		}
	}
	return InvalidID, false
}

// layoutLine is one wrapped line of text plus its measured advance width.
type layoutLine struct {
	runes []rune
	width float32
}

/**
 * @brief Layout converts text content into one positioned/sized record per
 * visible glyph, under the given coordinate convention and alignment.
 *
 * The origin is the baseline of the first line; boxSize bounds wrapping
 * horizontally and clipping vertically. Whitespace, control characters and
 * zero-area glyphs advance the pen without emitting a record. Lines whose
 * top would fall outside the box are dropped. Pure function of its inputs.
 */
func (f *FontData) Layout(coord CoordinateSystem, alignment TextAlignment, origin, boxSize math.Vec2, content string, lineHeight, fontSize float32) []*CharacterLayout {
	layouts := []*CharacterLayout{}
	if len(content) == 0 || len(f.Glyphs) == 0 {
		return layouts
	}

	scale := float32(1.0)
	if f.Size > 0 {
		scale = fontSize / float32(f.Size)
	}

	lines := f.breakLines(content, boxSize.X, scale)

	down := float32(1.0)
	if coord == CoordinateSystemPositiveYUp {
		down = -1.0
	}

	for i, line := range lines {
		// The top of line i, relative to the top of the box. The origin is
		// the first line's baseline, one fontSize below (or above) the top.
		lineTop := float32(i) * lineHeight
		if lineTop+fontSize > boxSize.Y {
			break
		}

		penX := origin.X
		switch alignment {
		case TextAlignmentMiddle:
			penX += (boxSize.X - line.width) / 2.0
		case TextAlignmentEnd:
			penX += boxSize.X - line.width
		}

		topY := origin.Y + down*(lineTop-fontSize)

		var prev int32 = -1
		for _, r := range line.runes {
			if r == '\t' {
				penX += f.tabAdvance() * scale
				prev = -1
				continue
			}
			g := f.glyph(int32(r))
			if g == nil {
				// No glyph and no -1 fallback in this font. Skip.
				prev = -1
				continue
			}
			advance := float32(g.XAdvance) * scale
			if prev >= 0 {
				advance += float32(f.kerning(prev, int32(r))) * scale
			}
			// Only runes the font maps directly produce a record; a rune
			// rendered through the -1 fallback advances the pen but is not
			// emitted, so every emitted record resolves through CharID.
			if g.Codepoint == int32(r) && g.Width > 0 && g.Height > 0 {
				layouts = append(layouts, &CharacterLayout{
					Content: r,
					Position: math.NewVec2(
						penX+float32(g.XOffset)*scale,
						topY+down*float32(g.YOffset)*scale,
					),
					Size: math.NewVec2(float32(g.Width)*scale, float32(g.Height)*scale),
				})
			}
			penX += advance
			prev = int32(r)
		}
	}

	return layouts
}

// breakLines splits content on explicit newlines and greedily wraps at the
// box width. Widths are measured with the same kerned advances the
// placement pass uses, so alignment offsets match the rendered line.
func (f *FontData) breakLines(content string, maxWidth float32, scale float32) []layoutLine {
	lines := []layoutLine{}
	current := layoutLine{}

	var prev int32 = -1
	flush := func() {
		lines = append(lines, current)
		current = layoutLine{}
		prev = -1
	}

	for _, r := range content {
		if r == '\n' {
			flush()
			continue
		}

		var g *FontGlyph
		var advance float32
		if r == '\t' {
			advance = f.tabAdvance() * scale
		} else {
			g = f.glyph(int32(r))
			if g == nil {
				// Dropped from the line entirely, so the placement pass
				// kerns across it; keep prev so measurement matches.
				continue
			}
			advance = float32(g.XAdvance) * scale
			if prev >= 0 {
				advance += float32(f.kerning(prev, int32(r))) * scale
			}
		}

		if maxWidth > 0 && len(current.runes) > 0 && current.width+advance > maxWidth {
			flush()
			if g != nil {
				// First rune of the new line carries no kerning.
				advance = float32(g.XAdvance) * scale
			}
		}
		if r == '\t' {
			prev = -1
		} else {
			prev = int32(r)
		}

		current.runes = append(current.runes, r)
		current.width += advance
	}
	flush()

	return lines
}

// tabAdvance falls back to four spaces (or four em at worst) when the font
// was exported without a tab glyph.
func (f *FontData) tabAdvance() float32 {
	if f.TabXAdvance != 0 {
		return f.TabXAdvance
	}
	for i := 0; i < len(f.Glyphs); i++ {
		if f.Glyphs[i].Codepoint == ' ' {
			return float32(f.Glyphs[i].XAdvance) * 4
		}
	}
	return float32(f.Size) * 4
}
