package systems

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/spaghettifunk/ukiyo/engine/assets"
	"github.com/spaghettifunk/ukiyo/engine/core"
	"github.com/spaghettifunk/ukiyo/engine/renderer/metadata"
)

type TextureSystemConfig struct {
	MaxTextureCount uint32
}

type TextureReference struct {
	ReferenceCount uint16
	AutoRelease    bool
}

type TextureSystem struct {
	Config             *TextureSystemConfig
	Lookup             map[string]uint32
	RegisteredTextures []*metadata.Texture
	References         []*TextureReference
	// subsystems
	assetManager *assets.AssetManager

	mutex sync.RWMutex
}

func NewTextureSystem(config *TextureSystemConfig, am *assets.AssetManager) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		return nil, err
	}
	ts := &TextureSystem{
		Config:             config,
		Lookup:             make(map[string]uint32),
		RegisteredTextures: make([]*metadata.Texture, config.MaxTextureCount),
		References:         make([]*TextureReference, config.MaxTextureCount),
		assetManager:       am,
	}
	return ts, nil
}

func (ts *TextureSystem) Initialize() error {
	// Invalidate all entries.
	for i := uint32(0); i < ts.Config.MaxTextureCount; i++ {
		ts.RegisteredTextures[i] = &metadata.Texture{
			ID:         metadata.InvalidID,
			Generation: metadata.InvalidID,
		}
		ts.References[i] = &TextureReference{}
	}
	return nil
}

func (ts *TextureSystem) Shutdown() error {
	for i := uint32(0); i < ts.Config.MaxTextureCount; i++ {
		if ts.RegisteredTextures[i].ID != metadata.InvalidID {
			ts.RegisteredTextures[i].InternalData = nil
			ts.RegisteredTextures[i].ID = metadata.InvalidID
		}
	}
	ts.Lookup = make(map[string]uint32)
	return nil
}

// Aquire fetches the named texture, loading its image asset on first use
// and incrementing its reference count afterwards.
func (ts *TextureSystem) Aquire(name string, autoRelease bool) (*metadata.Texture, error) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	if id, ok := ts.Lookup[name]; ok && id != metadata.InvalidID {
		ts.References[id].ReferenceCount++
		return ts.RegisteredTextures[id], nil
	}

	id, err := ts.freeSlot()
	if err != nil {
		return nil, err
	}

	res, err := ts.assetManager.LoadAsset(name, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: false})
	if err != nil {
		core.LogError("failed to load image resource for texture '%s'", name)
		return nil, err
	}
	imageData := res.Data.(*metadata.ImageResourceData)

	texture := ts.RegisteredTextures[id]
	texture.ID = id
	texture.Name = name
	texture.Width = imageData.Width
	texture.Height = imageData.Height
	texture.ChannelCount = imageData.ChannelCount
	texture.Generation = 0
	texture.InternalData = imageData.Pixels

	ts.References[id].ReferenceCount = 1
	ts.References[id].AutoRelease = autoRelease
	ts.Lookup[name] = id

	return texture, nil
}

// AquireWriteable reserves an empty texture the caller will fill later.
// An anonymous texture gets a generated unique name.
func (ts *TextureSystem) AquireWriteable(name string, width, height uint32, channelCount uint8) (*metadata.Texture, error) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	if name == "" {
		name = fmt.Sprintf("__writeable_texture_%s__", uuid.New().String())
	}

	id, err := ts.freeSlot()
	if err != nil {
		return nil, err
	}

	texture := ts.RegisteredTextures[id]
	texture.ID = id
	texture.Name = name
	texture.Width = width
	texture.Height = height
	texture.ChannelCount = channelCount
	texture.Generation = 0

	ts.References[id].ReferenceCount = 1
	ts.References[id].AutoRelease = false
	ts.Lookup[name] = id

	return texture, nil
}

// Reload re-reads a resident texture's image asset from disk and swaps
// its pixel data in place, bumping the generation. Used by the hot-reload
// path and to fill writeable placeholder atlases once their image lands.
func (ts *TextureSystem) Reload(name string) error {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	id, ok := ts.Lookup[name]
	if !ok || id == metadata.InvalidID {
		return fmt.Errorf("cannot reload texture '%s': not resident", name)
	}

	res, err := ts.assetManager.LoadAsset(name, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: false})
	if err != nil {
		return err
	}
	imageData := res.Data.(*metadata.ImageResourceData)

	texture := ts.RegisteredTextures[id]
	texture.Width = imageData.Width
	texture.Height = imageData.Height
	texture.ChannelCount = imageData.ChannelCount
	if !ts.WriteData(texture, imageData.Pixels) {
		return fmt.Errorf("failed to write reloaded data for texture '%s'", name)
	}
	return nil
}

func (ts *TextureSystem) WriteData(texture *metadata.Texture, data []uint8) bool {
	if texture == nil || texture.ID == metadata.InvalidID {
		return false
	}
	texture.InternalData = data
	texture.Generation++
	return true
}

// Find returns the resident texture with the given name without touching
// reference counts. Nil when the texture is not (yet) resident.
func (ts *TextureSystem) Find(name string) *metadata.Texture {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	id, ok := ts.Lookup[name]
	if !ok || id == metadata.InvalidID {
		return nil
	}
	return ts.RegisteredTextures[id]
}

func (ts *TextureSystem) Release(name string) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	id, ok := ts.Lookup[name]
	if !ok || id == metadata.InvalidID {
		core.LogWarn("func texture system Release called for unknown texture '%s'", name)
		return
	}

	ref := ts.References[id]
	if ref.ReferenceCount > 0 {
		ref.ReferenceCount--
	}
	if ref.ReferenceCount == 0 && ref.AutoRelease {
		ts.RegisteredTextures[id].InternalData = nil
		ts.RegisteredTextures[id].ID = metadata.InvalidID
		ts.RegisteredTextures[id].Generation = metadata.InvalidID
		delete(ts.Lookup, name)
		core.LogDebug("texture '%s' released", name)
	}
}

func (ts *TextureSystem) freeSlot() (uint32, error) {
	for i := uint32(0); i < ts.Config.MaxTextureCount; i++ {
		if ts.RegisteredTextures[i].ID == metadata.InvalidID {
			return i, nil
		}
	}
	return metadata.InvalidID, fmt.Errorf("no space left to allocate a new texture. Increase maximum number allowed in texture system config")
}
