//go:build heif

package codec

import (
	"image"
	"io"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/heic"
)

func init() {
	heifDecode = heic.Decode
	heifDecodeConfig = heic.DecodeConfig
	avifDecode = avif.Decode
	avifDecodeConfig = avif.DecodeConfig
	avifEncode = func(w io.Writer, m image.Image) error {
		return avif.Encode(w, m)
	}
}
