package sidecar

import (
	"strings"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/gifscan"
)

// scanGIF reports the extension blocks of a GIF stream. GIF carries no ICC
// profiles; XMP is stored as an application extension with the "XMP Data"
// identifier, and comments/loop extensions become miscellaneous keys.
func scanGIF(data []byte, info *Info) {
	gifscan.Walk(data, gifscan.Visitor{
		Comment: func() {
			info.addKey("comment")
		},
		AppExt: func(id string, payloadLen int) {
			switch {
			case id == "NETSCAPE2.0":
				info.addKey("loop")
			case strings.HasPrefix(id, "XMP Data"):
				info.setXMP(payloadLen)
			default:
				info.addKey(strings.TrimRight(id, "\x00 "))
			}
		},
	})
}
