package loaders

import (
	"fmt"
	"os"

	"github.com/fzipp/bmfont"
	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

type BitmapFontLoader struct {
	ResourcePath string
}

func (fl *BitmapFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	resourceData, err := fl.importFNTFile(path)
	if err != nil {
		return nil, err
	}

	out := &metadata.Resource{
		Name:     resourceData.Data.Face,
		FullPath: path,
		Data:     resourceData,
	}

	return out, nil
}

func (fl *BitmapFontLoader) Unload(resource *metadata.Resource) error {
	if resource.Data != nil {
		data := resource.Data.(*metadata.BitmapFontResourceData)
		data.Data.Glyphs = nil
		data.Data.Kernings = nil
		data.Pages = nil
		resource.Data = nil
		resource.DataSize = 0
		resource.LoaderID = metadata.InvalidID
		resource.FullPath = ""
	}
	return nil
}

// importFNTFile parses an AngelCode .fnt descriptor into the pipeline's
// font record. Atlas page images are loaded separately by the texture
// system; only their file names are carried here.
func (fl *BitmapFontLoader) importFNTFile(fntFileName string) (*metadata.BitmapFontResourceData, error) {
	desc, err := bmfont.LoadDescriptor(fntFileName)
	if err != nil {
		return nil, err
	}

	if len(desc.Chars) == 0 {
		return nil, fmt.Errorf("bitmap font '%s' declares no characters", fntFileName)
	}

	outData := &metadata.BitmapFontResourceData{
		Data: &metadata.FontData{
			Face:       desc.Info.Face,
			Size:       uint32(desc.Info.Size),
			LineHeight: int32(desc.Common.LineHeight),
			Baseline:   int32(desc.Common.Base),
			AtlasSizeX: int32(desc.Common.ScaleW),
			AtlasSizeY: int32(desc.Common.ScaleH),
			Atlas:      &metadata.TextureMap{},
			Glyphs:     make([]*metadata.FontGlyph, 0, len(desc.Chars)),
			Kernings:   make([]*metadata.FontKerning, 0, len(desc.Kerning)),
		},
		Pages: make([]*metadata.BitmapFontPage, 0, len(desc.Pages)),
	}

	for _, p := range desc.Pages {
		outData.Pages = append(outData.Pages, &metadata.BitmapFontPage{
			ID:   int8(p.ID),
			File: p.File,
		})
	}

	for _, g := range desc.Chars {
		outData.Data.Glyphs = append(outData.Data.Glyphs, &metadata.FontGlyph{
			Codepoint: int32(g.ID),
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
			PageID:    uint8(g.Page),
		})
	}

	for p, k := range desc.Kerning {
		outData.Data.Kernings = append(outData.Data.Kernings, &metadata.FontKerning{
			Codepoint0: int32(p.First),
			Codepoint1: int32(p.Second),
			Amount:     int16(k.Amount),
		})
	}

	return outData, nil
}
