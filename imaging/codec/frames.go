package codec

import (
	"encoding/binary"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/gifscan"
)

// gifFrameCount counts image descriptors in a GIF stream. It never decodes
// pixel data; a truncated stream yields the count seen so far.
func gifFrameCount(data []byte) int {
	frames := 0
	gifscan.Walk(data, gifscan.Visitor{Frame: func() { frames++ }})
	return frames
}

// webpAnimFrames walks the RIFF chunk list of a WebP container and reports
// the ANMF frame count plus whether the VP8X animation flag is set.
func webpAnimFrames(data []byte) (int, bool) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return 0, false
	}

	animated := false
	frames := 0

	offset := 12
	for offset+8 <= len(data) {
		fourCC := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		offset += 8

		switch fourCC {
		case "VP8X":
			if size >= 1 && offset < len(data) && data[offset]&0x02 != 0 {
				animated = true
			}
		case "ANMF":
			frames++
		}

		// chunks are padded to even sizes
		offset += size + size&1
	}

	return frames, animated
}
