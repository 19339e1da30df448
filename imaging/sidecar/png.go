package sidecar

import (
	"bytes"
	"fmt"

	pngstructure "github.com/dsoprea/go-png-image-structure/v2"
)

const pngXMPKeyword = "XML:com.adobe.xmp"

// scanPNG walks the chunk list of a PNG stream. iCCP carries the (compressed)
// ICC profile, iTXt with the Adobe keyword carries XMP, and the assorted
// ancillary chunks map to miscellaneous keys. tRNS is deliberately excluded:
// transparency is visual state, not metadata.
func scanPNG(data []byte, info *Info) {
	pmp := pngstructure.NewPngMediaParser()
	intfc, err := pmp.ParseBytes(data)
	if err != nil {
		info.Warnings = append(info.Warnings, fmt.Sprintf("PNG chunk scan: %v", err))
		return
	}
	cs, ok := intfc.(*pngstructure.ChunkSlice)
	if !ok {
		info.Warnings = append(info.Warnings, "PNG chunk scan: unexpected parse result")
		return
	}

	for _, chunk := range cs.Chunks() {
		switch chunk.Type {
		case "iCCP":
			// profile name, NUL, compression method, compressed profile
			if i := bytes.IndexByte(chunk.Data, 0); i >= 0 && len(chunk.Data) > i+2 {
				info.setICC(len(chunk.Data) - i - 2)
			} else {
				info.setICC(-1)
			}
		case "iTXt":
			if i := bytes.IndexByte(chunk.Data, 0); i >= 0 {
				keyword := string(chunk.Data[:i])
				if keyword == pngXMPKeyword {
					// keyword, NUL, two method bytes, two empty
					// language/translated fields, then the packet
					payload := len(chunk.Data) - i - 5
					if payload < 0 {
						payload = -1
					}
					info.setXMP(payload)
				} else {
					info.addKey(keyword)
				}
			}
		case "tEXt", "zTXt":
			if i := bytes.IndexByte(chunk.Data, 0); i >= 0 {
				info.addKey(string(chunk.Data[:i]))
			}
		case "gAMA":
			info.addKey("gamma")
		case "cHRM":
			info.addKey("chromaticity")
		case "sRGB":
			info.addKey("srgb")
		case "pHYs":
			info.addKey("dpi")
		case "tIME":
			info.addKey("time")
		case "bKGD":
			info.addKey("background")
		case "sBIT":
			info.addKey("significant_bits")
		}
	}
}
