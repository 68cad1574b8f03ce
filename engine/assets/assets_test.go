package assets

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

func TestDetermineAssetType(t *testing.T) {
	tests := []struct {
		path string
		want metadata.ResourceType
	}{
		{path: "assets/fonts/ubuntu_mono.fnt", want: metadata.ResourceTypeBitmapFont},
		{path: "assets/fonts/ubuntu_mono_0.png", want: metadata.ResourceTypeImage},
		{path: "assets/fonts/ubuntu_mono_0.PNG", want: metadata.ResourceTypeImage},
		{path: "assets/pipeline.toml", want: metadata.ResourceTypeConfig},
		{path: "assets/readme.txt", want: metadata.ResourceTypeNone},
	}

	for _, tt := range tests {
		if got := determineAssetType(tt.path); got != tt.want {
			t.Errorf("determineAssetType(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}

func TestLoadAssetUnknownResource(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "fonts"), 0o755); err != nil {
		t.Fatal(err)
	}

	am, err := NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(am.Shutdown)

	if _, err := am.LoadAsset("missing_font", metadata.ResourceTypeBitmapFont, nil); err == nil {
		t.Fatalf("expected an error for an unindexed asset")
	}
	if _, err := am.LoadAsset("anything", metadata.ResourceTypeCustom, nil); err == nil {
		t.Fatalf("expected an error for an unsupported resource type")
	}
}

func TestLoadAssetIndexedFont(t *testing.T) {
	dir := t.TempDir()
	fontsDir := filepath.Join(dir, "fonts")
	if err := os.MkdirAll(fontsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	fnt := `info face="Tiny" size=8 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=10 base=7 scaleW=64 scaleH=64 pages=1 packed=0 alphaChnl=1 redChnl=0 greenChnl=0 blueChnl=0
page id=0 file="tiny_0.png"
chars count=1
char id=65 x=0 y=0 width=6 height=8 xoffset=0 yoffset=0 xadvance=7 page=0 chnl=15
`
	if err := os.WriteFile(filepath.Join(fontsDir, "tiny.fnt"), []byte(fnt), 0o644); err != nil {
		t.Fatal(err)
	}

	am, err := NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(am.Shutdown)

	res, err := am.LoadAsset("tiny", metadata.ResourceTypeBitmapFont, nil)
	if err != nil {
		t.Fatalf("LoadAsset: %v", err)
	}
	data, ok := res.Data.(*metadata.BitmapFontResourceData)
	if !ok {
		t.Fatalf("resource data has wrong type %T", res.Data)
	}
	if data.Data.Face != "Tiny" {
		t.Errorf("face = %q", data.Data.Face)
	}
}

func TestLoadAssetImageOutsideFontsDir(t *testing.T) {
	dir := t.TempDir()
	texturesDir := filepath.Join(dir, "textures")
	if err := os.MkdirAll(texturesDir, 0o755); err != nil {
		t.Fatal(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	file, err := os.Create(filepath.Join(texturesDir, "logo.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	file.Close()

	am, err := NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(am.Shutdown)

	res, err := am.LoadAsset("logo.png", metadata.ResourceTypeImage, nil)
	if err != nil {
		t.Fatalf("LoadAsset: %v", err)
	}
	data, ok := res.Data.(*metadata.ImageResourceData)
	if !ok {
		t.Fatalf("resource data has wrong type %T", res.Data)
	}
	if data.Width != 2 || data.Height != 2 {
		t.Errorf("dims = %dx%d, want 2x2", data.Width, data.Height)
	}
}
