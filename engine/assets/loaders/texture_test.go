package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

func writePNG(t *testing.T, width, height int, top, bottom color.RGBA) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		c := top
		if y >= height/2 {
			c = bottom
		}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "atlas.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTextureLoaderLoad(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	path := writePNG(t, 4, 4, red, blue)

	loader := &TextureLoader{}
	res, err := loader.Load(path, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: false})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	data, ok := res.Data.(*metadata.ImageResourceData)
	if !ok {
		t.Fatalf("resource data has wrong type %T", res.Data)
	}
	if data.Width != 4 || data.Height != 4 {
		t.Errorf("dims = %dx%d, want 4x4", data.Width, data.Height)
	}
	if data.ChannelCount != 4 {
		t.Errorf("channels = %d, want 4", data.ChannelCount)
	}
	if len(data.Pixels) != 4*4*4 {
		t.Fatalf("pixel buffer = %d bytes, want 64", len(data.Pixels))
	}
	// Top-left pixel is red.
	if data.Pixels[0] != 255 || data.Pixels[2] != 0 {
		t.Errorf("top-left pixel = %v", data.Pixels[:4])
	}
}

func TestTextureLoaderFlipY(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	path := writePNG(t, 4, 4, red, blue)

	loader := &TextureLoader{}
	res, err := loader.Load(path, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	data := res.Data.(*metadata.ImageResourceData)
	// After the flip the first row is the blue bottom half.
	if data.Pixels[0] != 0 || data.Pixels[2] != 255 {
		t.Errorf("top-left pixel after flip = %v", data.Pixels[:4])
	}
}

func TestTextureLoaderMissingFile(t *testing.T) {
	loader := &TextureLoader{}
	if _, err := loader.Load(filepath.Join(t.TempDir(), "nope.png"), metadata.ResourceTypeImage, nil); err == nil {
		t.Fatalf("expected an error for a missing image")
	}
}
