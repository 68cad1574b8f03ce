package engine

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/ukiyo/engine/assets"
	"github.com/spaghettifunk/ukiyo/engine/config"
	"github.com/spaghettifunk/ukiyo/engine/core"
	"github.com/spaghettifunk/ukiyo/engine/renderer/batch"
	"github.com/spaghettifunk/ukiyo/engine/renderer/extract"
	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
	"github.com/spaghettifunk/ukiyo/engine/systems"
)

/**
 * @brief Pipeline wires the asset manager and the lookup systems together
 * and runs extraction passes over primitive lists. One pipeline per UI
 * surface; the systems it owns are shared read-only during a pass.
 */
type Pipeline struct {
	Config        *config.Config
	AssetManager  *assets.AssetManager
	TextureSystem *systems.TextureSystem
	FontSystem    *systems.FontSystem
}

func New(cfg *config.Config) (*Pipeline, error) {
	am, err := assets.NewAssetManager()
	if err != nil {
		return nil, err
	}
	if err := am.Initialize(cfg.AssetsDir); err != nil {
		return nil, err
	}

	ts, err := systems.NewTextureSystem(&systems.TextureSystemConfig{
		MaxTextureCount: cfg.MaxTextureCount,
	}, am)
	if err != nil {
		return nil, err
	}
	if err := ts.Initialize(); err != nil {
		return nil, err
	}

	fontConfigs := make([]*metadata.BitmapFontConfig, 0, len(cfg.Fonts))
	for _, f := range cfg.Fonts {
		fontConfigs = append(fontConfigs, &metadata.BitmapFontConfig{
			Name:         f.Name,
			Size:         f.Size,
			ResourceName: f.Resource,
		})
	}

	fs, err := systems.NewFontSystem(&systems.FontSystemConfig{
		DefaultBitmapFontCount: uint8(len(fontConfigs)),
		BitmapFontConfigs:      fontConfigs,
		MaxBitmapFontCount:     cfg.MaxBitmapFontCount,
		AutoRelease:            true,
	}, ts, am)
	if err != nil {
		return nil, err
	}
	if err := fs.Initialize(); err != nil {
		return nil, err
	}

	core.LogInfo("pipeline initialized with asset root '%s', %d font(s)", cfg.AssetsDir, len(cfg.Fonts))

	p := &Pipeline{
		Config:        cfg,
		AssetManager:  am,
		TextureSystem: ts,
		FontSystem:    fs,
	}
	go p.watchAssets()

	return p, nil
}

// watchAssets reloads resident resources when their files change on disk.
// Exits when the asset manager shuts down and closes the event channel.
func (p *Pipeline) watchAssets() {
	for e := range p.AssetManager.Events() {
		p.handleAssetEvent(e)
	}
}

func (p *Pipeline) handleAssetEvent(e fsnotify.Event) {
	if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	name := filepath.Base(e.Name)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg":
		if p.TextureSystem.Find(name) == nil {
			return
		}
		if err := p.TextureSystem.Reload(name); err != nil {
			core.LogWarn("hot reload of texture '%s' failed: %s", name, err.Error())
			return
		}
		core.LogInfo("texture '%s' reloaded", name)
	case ".fnt":
		resource := strings.TrimSuffix(name, filepath.Ext(name))
		if err := p.FontSystem.ReloadBitmapFont(resource); err != nil {
			core.LogDebug("font resource '%s' changed but was not reloaded: %s", resource, err.Error())
			return
		}
		core.LogInfo("bitmap font resource '%s' reloaded", resource)
	}
}

// Extract runs one extraction pass over the primitive list.
func (p *Pipeline) Extract(primitives []*metadata.RenderPrimitive) []*metadata.ExtractedQuad {
	return extract.Extract(primitives, p.FontSystem, p.FontSystem, p.TextureSystem)
}

// Batch turns an extraction pass's output into upload-ready geometry.
func (p *Pipeline) Batch(quads []*metadata.ExtractedQuad) (*batch.Geometry, error) {
	return batch.Build(quads, p.FontSystem)
}

func (p *Pipeline) Shutdown() error {
	if err := p.FontSystem.Shutdown(); err != nil {
		return err
	}
	if err := p.TextureSystem.Shutdown(); err != nil {
		return err
	}
	p.AssetManager.Shutdown()
	return nil
}
