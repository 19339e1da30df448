package domain

// TagMap holds decoded metadata tags keyed by human-readable name. Values are
// always JSON-safe: scalars, strings, sequences, or nested mappings.
type TagMap map[string]any

// GpsRecord is a pair of signed decimal degrees. It is only ever constructed
// when both coordinates converted successfully; a partial coordinate is
// represented by the absence of the record, never by zero values.
type GpsRecord struct {
	Latitude  float64
	Longitude float64
}

// MetadataSummary is the structural description of one inspected asset.
// It is constructed fresh per inspection and never mutated after return.
// A nil Format together with populated Warnings means the asset could not
// be read, as opposed to an asset that simply carries no metadata.
type MetadataSummary struct {
	Filename string
	Format   *Format
	Width    int
	Height   int
	Mode     string
	Frames   int
	HasAlpha bool

	EXIF   TagMap
	GPSRaw TagMap
	GPS    *GpsRecord

	ICCPresent bool
	ICCBytes   *int
	XMPPresent bool
	XMPBytes   *int

	// RawEXIFBytes is the length of an attached EXIF blob found outside the
	// codec's native tag table (WEBP/PNG carriers), when one exists.
	RawEXIFBytes *int

	// OtherKeys lists unrecognized side-channel chunk keys, sorted.
	OtherKeys []string

	// Warnings collects non-fatal extraction failures in encounter order.
	Warnings []string
}

// StripPolicy selects how much metadata the stripping engine removes.
// Pixel data, alpha, transparency and animation semantics are preserved
// under either policy.
type StripPolicy int

const (
	// StripEXIFOnly removes EXIF directories but keeps ICC/XMP/misc chunks
	// where the container-level strategy allows it.
	StripEXIFOnly StripPolicy = iota

	// StripAll removes EXIF, ICC, XMP and miscellaneous side-channel chunks.
	StripAll
)
