package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
assets_dir = "my_assets"
default_font_size = 14.0
max_bitmap_font_count = 4
max_texture_count = 32

[[fonts]]
name = "UbuntuMono"
size = 32
resource = "ubuntu_mono"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AssetsDir != "my_assets" {
		t.Errorf("assets dir = %q", cfg.AssetsDir)
	}
	if cfg.DefaultFontSize != 14.0 {
		t.Errorf("default font size = %f", cfg.DefaultFontSize)
	}
	if cfg.MaxBitmapFontCount != 4 || cfg.MaxTextureCount != 32 {
		t.Errorf("limits = %d/%d", cfg.MaxBitmapFontCount, cfg.MaxTextureCount)
	}
	if len(cfg.Fonts) != 1 || cfg.Fonts[0].Name != "UbuntuMono" || cfg.Fonts[0].Resource != "ubuntu_mono" {
		t.Errorf("fonts = %+v", cfg.Fonts)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, ``)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AssetsDir != "assets" {
		t.Errorf("default assets dir = %q", cfg.AssetsDir)
	}
	if cfg.MaxBitmapFontCount == 0 || cfg.MaxTextureCount == 0 {
		t.Errorf("limits must default to non-zero: %d/%d", cfg.MaxBitmapFontCount, cfg.MaxTextureCount)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed toml", content: `assets_dir = [`},
		{name: "zero font capacity", content: `max_bitmap_font_count = 0`},
		{name: "font without name", content: "[[fonts]]\nresource = \"x\""},
		{name: "font without resource", content: "[[fonts]]\nname = \"x\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected an error for a missing config")
	}
}
