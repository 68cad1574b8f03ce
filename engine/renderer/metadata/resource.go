package metadata

import gomath "math"

/** @brief An invalid 32-bit identifier. */
const InvalidID uint32 = gomath.MaxUint32

/** @brief An invalid 16-bit identifier. */
const InvalidIDUint16 uint16 = gomath.MaxUint16

/** @brief An invalid 64-bit identifier. */
const InvalidIDUint64 uint64 = gomath.MaxUint64

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief No resource type. Used for files the pipeline does not consume. */
	ResourceTypeNone ResourceType = iota
	/** @brief Text resource type. */
	ResourceTypeText
	/** @brief Binary resource type. */
	ResourceTypeBinary
	/** @brief Image resource type (font atlas pages). */
	ResourceTypeImage
	/** @brief Bitmap font resource type. */
	ResourceTypeBitmapFont
	/** @brief Pipeline configuration resource type. */
	ResourceTypeConfig
	/** @brief Custom resource type. Used by loaders outside the core pipeline. */
	ResourceTypeCustom
)

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The identifier of the loader which handles this resource. */
	LoaderID uint32
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/** @brief The data held by an image-type resource. Pixels are tightly packed RGBA. */
type ImageResourceData struct {
	ChannelCount uint8
	Width        uint32
	Height       uint32
	Pixels       []uint8
}

/** @brief Parameters used when loading an image resource. */
type ImageResourceParams struct {
	FlipY bool
}
