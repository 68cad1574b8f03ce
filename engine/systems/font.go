package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/ukiyo/engine/assets"
	"github.com/spaghettifunk/ukiyo/engine/core"
	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

type FontSystemConfig struct {
	DefaultBitmapFontCount uint8
	BitmapFontConfigs      []*metadata.BitmapFontConfig
	MaxBitmapFontCount     uint8
	AutoRelease            bool
}

type BitmapFontLookup struct {
	ID             uint16
	ReferenceCount uint16
	// Font stays nil between registration and load completion; lookups
	// through Get observe "not resident" during that window.
	Font           *metadata.FontData
	LoadedResource *metadata.Resource
}

/**
 * @brief FontSystem maps logical font faces to loaded font resources. It is
 * both the registry (face name -> handle) and the store (handle -> font
 * data) that the extraction stage resolves through. Reads are guarded by a
 * RWMutex so extraction passes may run concurrently as long as no font is
 * being (re)loaded mid-pass.
 */
type FontSystem struct {
	Config           *FontSystemConfig
	BitmapFontLookup map[string]uint16
	BitmapFonts      []*BitmapFontLookup
	// resource name -> load config, for hot reloads of changed .fnt files
	resources map[string]*metadata.BitmapFontConfig
	// subsystems
	textureSystem *TextureSystem
	assetManager  *assets.AssetManager

	mutex sync.RWMutex
}

func NewFontSystem(config *FontSystemConfig, ts *TextureSystem, am *assets.AssetManager) (*FontSystem, error) {
	fs := &FontSystem{
		Config:           config,
		BitmapFontLookup: make(map[string]uint16),
		BitmapFonts:      make([]*BitmapFontLookup, config.MaxBitmapFontCount),
		resources:        make(map[string]*metadata.BitmapFontConfig),
		textureSystem:    ts,
		assetManager:     am,
	}
	return fs, nil
}

func (fs *FontSystem) Initialize() error {
	if fs.Config.MaxBitmapFontCount == 0 {
		err := fmt.Errorf("font_system_initialize - config.max_bitmap_font_count must be > 0")
		return err
	}
	// Invalidate all entries.
	for i := 0; i < int(fs.Config.MaxBitmapFontCount); i++ {
		fs.BitmapFonts[i] = &BitmapFontLookup{
			ID:             metadata.InvalidIDUint16,
			ReferenceCount: 0,
		}
	}
	// Load up any default fonts.
	for i := 0; i < int(fs.Config.DefaultBitmapFontCount); i++ {
		if err := fs.LoadBitmapFont(fs.Config.BitmapFontConfigs[i]); err != nil {
			core.LogError("failed to load bitmap font: %s", fs.Config.BitmapFontConfigs[i].Name)
			return err
		}
	}
	return nil
}

func (fs *FontSystem) Shutdown() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	for i := uint16(0); i < uint16(fs.Config.MaxBitmapFontCount); i++ {
		lookup := fs.BitmapFonts[i]
		if lookup.ID != metadata.InvalidIDUint16 && lookup.Font != nil {
			fs.cleanupFontData(lookup.Font)
			lookup.Font = nil
			lookup.ID = metadata.InvalidIDUint16
		}
	}
	fs.BitmapFontLookup = make(map[string]uint16)
	fs.resources = make(map[string]*metadata.BitmapFontConfig)
	return nil
}

// RegisterFont creates the registry mapping for a face before its asset
// has been loaded. Extraction against the returned handle yields nothing
// to draw until LoadBitmapFont completes for the same face.
func (fs *FontSystem) RegisterFont(face string) (metadata.FontHandle, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	return fs.registerLocked(face)
}

func (fs *FontSystem) registerLocked(face string) (metadata.FontHandle, error) {
	if id, ok := fs.BitmapFontLookup[face]; ok && id != metadata.InvalidIDUint16 {
		return metadata.FontHandle(id), nil
	}

	id := metadata.InvalidIDUint16
	for i := uint16(0); i < uint16(fs.Config.MaxBitmapFontCount); i++ {
		if fs.BitmapFonts[i].ID == metadata.InvalidIDUint16 {
			id = i
			break
		}
	}
	if id == metadata.InvalidIDUint16 {
		err := fmt.Errorf("no space left to allocate a new bitmap font. Increase maximum number allowed in font system config")
		return metadata.InvalidFontHandle, err
	}

	fs.BitmapFonts[id].ID = id
	fs.BitmapFontLookup[face] = id
	return metadata.FontHandle(id), nil
}

// LoadBitmapFont loads the .fnt asset plus its atlas page texture and
// attaches the data to the face's registry entry, creating the entry when
// the face was never registered.
func (fs *FontSystem) LoadBitmapFont(config *metadata.BitmapFontConfig) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if id, ok := fs.BitmapFontLookup[config.Name]; ok && id != metadata.InvalidIDUint16 && fs.BitmapFonts[id].Font != nil {
		core.LogWarn("a font named '%s' already exists and will not be loaded again", config.Name)
		// Not a hard error, return success since it already exists and can be used.
		return nil
	}

	return fs.loadLocked(config)
}

// ReloadBitmapFont re-runs the load for whichever font was loaded from the
// named resource, replacing its data in place. No-op error when no loaded
// font uses the resource.
func (fs *FontSystem) ReloadBitmapFont(resourceName string) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	config, ok := fs.resources[resourceName]
	if !ok {
		return fmt.Errorf("no loaded font uses resource '%s'", resourceName)
	}
	return fs.loadLocked(config)
}

func (fs *FontSystem) loadLocked(config *metadata.BitmapFontConfig) error {
	handle, err := fs.registerLocked(config.Name)
	if err != nil {
		return err
	}
	lookup := fs.BitmapFonts[handle]

	res, err := fs.assetManager.LoadAsset(config.ResourceName, metadata.ResourceTypeBitmapFont, nil)
	if err != nil {
		core.LogError("failed to load bitmap font")
		return err
	}
	resourceData := res.Data.(*metadata.BitmapFontResourceData)

	if lookup.Font != nil {
		fs.cleanupFontData(lookup.Font)
	}

	// Acquire the atlas texture. When the page image has not landed on disk
	// yet, reserve a writeable placeholder sized to the atlas; the
	// hot-reload path fills it in once the image appears.
	// TODO: only accounts for one page at the moment.
	pageFile := resourceData.Pages[0].File
	text, err := fs.textureSystem.Aquire(pageFile, true)
	if err != nil {
		core.LogWarn("atlas page '%s' for font '%s' is not loadable yet, reserving a writeable placeholder", pageFile, config.Name)
		text, err = fs.textureSystem.AquireWriteable(
			pageFile,
			uint32(resourceData.Data.AtlasSizeX),
			uint32(resourceData.Data.AtlasSizeY),
			4,
		)
		if err != nil {
			return err
		}
	}
	if resourceData.Data.Atlas == nil {
		resourceData.Data.Atlas = &metadata.TextureMap{}
	}
	resourceData.Data.Atlas.Texture = text

	fs.setupFontData(resourceData.Data)

	fs.resources[config.ResourceName] = config
	lookup.LoadedResource = res
	lookup.Font = resourceData.Data

	return nil
}

func (fs *FontSystem) setupFontData(font *metadata.FontData) {
	font.Atlas.FilterMagnify = metadata.TextureFilterModeLinear
	font.Atlas.FilterMinify = metadata.TextureFilterModeLinear
	font.Atlas.RepeatU = metadata.TextureRepeatClampToEdge
	font.Atlas.RepeatV = metadata.TextureRepeatClampToEdge

	// Check for a tab glyph, as there may not always be one exported. If there is, store its
	// x_advance and just use that. If there is not, then create one based off spacex4
	if font.TabXAdvance == 0 {
		for i := 0; i < len(font.Glyphs); i++ {
			if font.Glyphs[i].Codepoint == '\t' {
				font.TabXAdvance = float32(font.Glyphs[i].XAdvance)
				break
			}
		}
		if font.TabXAdvance == 0 {
			for i := 0; i < len(font.Glyphs); i++ {
				if font.Glyphs[i].Codepoint == ' ' {
					font.TabXAdvance = float32(uint16(font.Glyphs[i].XAdvance) * 4)
					break
				}
			}
			if font.TabXAdvance == 0 {
				// If _still_ not there, then a space wasn't present either, so just
				// hardcode something, in this case font size * 4.
				font.TabXAdvance = float32(font.Size * 4)
			}
		}
	}
}

func (fs *FontSystem) cleanupFontData(font *metadata.FontData) {
	if font.Atlas != nil && font.Atlas.Texture != nil {
		fs.textureSystem.Release(font.Atlas.Texture.Name)
		font.Atlas.Texture = nil
	}
}

// GetHandle resolves a logical face name to its registry handle. The
// second return value is false when the face was never registered, which
// callers in the extraction path treat as a fatal contract violation.
func (fs *FontSystem) GetHandle(face string) (metadata.FontHandle, bool) {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	id, ok := fs.BitmapFontLookup[face]
	if !ok || id == metadata.InvalidIDUint16 {
		return metadata.InvalidFontHandle, false
	}
	return metadata.FontHandle(id), true
}

// Get fetches the loaded font data for a handle. Returns nil while the
// font's asset load is still pending, the legitimate "not ready" case.
func (fs *FontSystem) Get(handle metadata.FontHandle) *metadata.FontData {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	if uint16(handle) >= uint16(fs.Config.MaxBitmapFontCount) {
		return nil
	}
	lookup := fs.BitmapFonts[handle]
	if lookup.ID == metadata.InvalidIDUint16 {
		return nil
	}
	return lookup.Font
}

// Acquire hands the caller the font data for a face, incrementing the
// reference count. Used by owners of long-lived text objects.
func (fs *FontSystem) Acquire(face string) (*metadata.FontData, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	id, ok := fs.BitmapFontLookup[face]
	if !ok || id == metadata.InvalidIDUint16 {
		err := fmt.Errorf("a bitmap font named '%s' was not found. Font acquisition failed", face)
		return nil, err
	}

	lookup := fs.BitmapFonts[id]
	if lookup.Font == nil {
		err := fmt.Errorf("the bitmap font named '%s' is not loaded yet. Font acquisition failed", face)
		return nil, err
	}
	lookup.ReferenceCount++
	return lookup.Font, nil
}

// Release undoes an Acquire. The entry stays resident; asset lifetime is
// owned by the asset system.
func (fs *FontSystem) Release(face string) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	id, ok := fs.BitmapFontLookup[face]
	if !ok || id == metadata.InvalidIDUint16 {
		return
	}
	lookup := fs.BitmapFonts[id]
	if lookup.ReferenceCount > 0 {
		lookup.ReferenceCount--
	}
}
