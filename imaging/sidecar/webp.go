package sidecar

import "encoding/binary"

// scanWebP walks the RIFF chunk list of a WebP container. ICC, EXIF and XMP
// each live in a dedicated fourCC chunk; the animation control chunk is
// surfaced as a miscellaneous key.
func scanWebP(data []byte, info *Info) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return
	}

	offset := 12
	for offset+8 <= len(data) {
		fourCC := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		offset += 8
		if size < 0 || offset+size > len(data) {
			info.Warnings = append(info.Warnings, "WebP chunk scan: truncated chunk")
			return
		}

		switch fourCC {
		case "ICCP":
			info.setICC(size)
		case "XMP ":
			info.setXMP(size)
		case "ANIM":
			info.addKey("animation")
		case "EXIF", "VP8 ", "VP8L", "VP8X", "ALPH", "ANMF":
			// image data, alpha plane, frames and the EXIF blob (handled
			// by the tag-tree decoder) are not side-channel keys
		default:
			info.addKey(fourCC)
		}

		offset += size + size&1
	}
}
