package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type FontConfig struct {
	Name     string `toml:"name"`
	Size     uint16 `toml:"size"`
	Resource string `toml:"resource"`
}

/**
 * @brief Pipeline configuration, loaded from a TOML file. Covers the asset
 * root, capacity limits of the lookup systems and the fonts registered at
 * startup.
 */
type Config struct {
	AssetsDir          string       `toml:"assets_dir"`
	DefaultFontSize    float32      `toml:"default_font_size"`
	MaxBitmapFontCount uint8        `toml:"max_bitmap_font_count"`
	MaxTextureCount    uint32       `toml:"max_texture_count"`
	Fonts              []FontConfig `toml:"fonts"`
}

// Load reads and validates the pipeline configuration at the given path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AssetsDir:          "assets",
		DefaultFontSize:    16.0,
		MaxBitmapFontCount: 16,
		MaxTextureCount:    256,
	}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}

	if cfg.MaxBitmapFontCount == 0 {
		return nil, fmt.Errorf("config '%s': max_bitmap_font_count must be > 0", path)
	}
	if cfg.MaxTextureCount == 0 {
		return nil, fmt.Errorf("config '%s': max_texture_count must be > 0", path)
	}
	for i, f := range cfg.Fonts {
		if f.Name == "" {
			return nil, fmt.Errorf("config '%s': fonts[%d] is missing a name", path, i)
		}
		if f.Resource == "" {
			return nil, fmt.Errorf("config '%s': font '%s' is missing a resource", path, f.Name)
		}
	}

	return cfg, nil
}
