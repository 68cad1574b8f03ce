package loaders

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

type TextureLoader struct {
	ResourcePath string
}

func (tl *TextureLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flipY := false
	if p, ok := params.(*metadata.ImageResourceParams); ok {
		flipY = p.FlipY
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}

	pixels, width, height := normalizeRGBA(img, flipY)

	return &metadata.Resource{
		Name:     "image",
		FullPath: path,
		DataSize: uint64(len(pixels)),
		Data: &metadata.ImageResourceData{
			ChannelCount: 4,
			Width:        uint32(width),
			Height:       uint32(height),
			Pixels:       pixels,
		},
	}, nil
}

func (tl *TextureLoader) Unload(resource *metadata.Resource) error {
	if resource.Data != nil {
		resource.Data = nil
		resource.DataSize = 0
	}
	return nil
}

// normalizeRGBA converts any decoded image into tightly packed RGBA,
// optionally flipping it vertically for backends with Y-up texture space.
func normalizeRGBA(img image.Image, flipY bool) ([]uint8, int, int) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, xdraw.Src)

	if !flipY {
		return rgba.Pix, width, height
	}

	flipped := make([]uint8, len(rgba.Pix))
	rowSize := rgba.Stride
	for y := 0; y < height; y++ {
		src := rgba.Pix[y*rowSize : (y+1)*rowSize]
		copy(flipped[(height-1-y)*rowSize:], src)
	}
	return flipped, width, height
}
