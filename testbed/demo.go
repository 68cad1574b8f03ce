package testbed

import (
	"github.com/spaghettifunk/ukiyo/engine"
	"github.com/spaghettifunk/ukiyo/engine/config"
	"github.com/spaghettifunk/ukiyo/engine/core"
	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

// Run loads the demo configuration, builds a small primitive list and
// pushes it through one extraction pass plus the batcher, logging what
// came out. Exercises the whole pipeline end to end against real assets.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	pipeline, err := engine.New(cfg)
	if err != nil {
		return err
	}
	defer pipeline.Shutdown()

	face := ""
	if len(cfg.Fonts) > 0 {
		face = cfg.Fonts[0].Name
	}

	primitives := []*metadata.RenderPrimitive{
		{
			Type:             metadata.RenderPrimitiveQuad,
			BackgroundColour: metadata.NewColour(0.1, 0.1, 0.12, 1.0),
			Layout:           metadata.LayoutBox{PosX: 0, PosY: 0, Width: 640, Height: 480, ZIndex: 0},
		},
		{
			Type:             metadata.RenderPrimitiveText,
			BackgroundColour: metadata.NewColour(0.9, 0.9, 0.9, 1.0),
			Layout:           metadata.LayoutBox{PosX: 16, PosY: 16, Width: 600, Height: 120, ZIndex: 1},
			FontSize:         cfg.DefaultFontSize,
			Content:          "The quick brown fox\njumps over the lazy dog",
			FontFace:         face,
		},
	}

	quads := pipeline.Extract(primitives)
	core.LogInfo("extraction pass produced %d quad(s) from %d primitive(s)", len(quads), len(primitives))

	geometry, err := pipeline.Batch(quads)
	if err != nil {
		return err
	}
	core.LogInfo("batched %d vertices and %d indices", len(geometry.Vertices), len(geometry.Indices))

	return nil
}
