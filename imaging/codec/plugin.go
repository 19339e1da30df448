package codec

import (
	"image"
	"io"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/domain"
)

// Capabilities records which optional codecs were resolved at process start.
// It is computed once in main and passed down as a value, so tests can run
// deterministically with the plugin "off".
type Capabilities struct {
	HEIF bool // HEIC/HEIF decode
	AVIF bool // AVIF decode and encode
}

// Supports reports whether the given HEIF-family format can be decoded.
func (c Capabilities) Supports(f domain.Format) bool {
	switch f {
	case domain.FormatHEIC, domain.FormatHEIF:
		return c.HEIF
	case domain.FormatAVIF:
		return c.AVIF
	default:
		return true
	}
}

// Plugin hook points. A build with the `heif` tag populates these from the
// gen2brain wasm codecs; the default build leaves them nil.
var (
	heifDecode       func(io.Reader) (image.Image, error)
	heifDecodeConfig func(io.Reader) (image.Config, error)
	avifDecode       func(io.Reader) (image.Image, error)
	avifDecodeConfig func(io.Reader) (image.Config, error)
	avifEncode       func(io.Writer, image.Image) error
)

// DetectCapabilities resolves the available optional codecs. Call once at
// startup; the result feeds the classifier and the stripping engine.
func DetectCapabilities() Capabilities {
	return Capabilities{
		HEIF: heifDecode != nil,
		AVIF: avifDecode != nil,
	}
}
