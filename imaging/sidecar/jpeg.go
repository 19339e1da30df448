package sidecar

import (
	"bytes"
	"fmt"

	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

var (
	jpegExifPrefix = []byte("Exif\x00\x00")
	jpegXMPPrefix  = []byte("http://ns.adobe.com/xap/1.0/\x00")
	jpegICCPrefix  = []byte("ICC_PROFILE\x00")
)

// scanJPEG walks the marker segments of a JPEG stream. ICC profiles span one
// or more APP2 segments whose payload lengths are summed; XMP rides in an
// APP1 segment with the Adobe namespace header.
func scanJPEG(data []byte, info *Info) {
	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseBytes(data)
	if err != nil {
		info.Warnings = append(info.Warnings, fmt.Sprintf("JPEG segment scan: %v", err))
		return
	}
	sl, ok := intfc.(*jpegstructure.SegmentList)
	if !ok {
		info.Warnings = append(info.Warnings, "JPEG segment scan: unexpected parse result")
		return
	}

	for _, seg := range sl.Segments() {
		switch seg.MarkerId {
		case 0xE1: // APP1: EXIF or XMP
			if bytes.HasPrefix(seg.Data, jpegXMPPrefix) {
				info.setXMP(len(seg.Data) - len(jpegXMPPrefix))
			}
		case 0xE2: // APP2: ICC profile, 14-byte chunking header per segment
			if bytes.HasPrefix(seg.Data, jpegICCPrefix) {
				info.setICC(len(seg.Data) - 14)
			}
		case 0xE0:
			info.addKey("jfif")
		case 0xED:
			info.addKey("photoshop")
		case 0xEE:
			info.addKey("adobe")
		case 0xFE:
			info.addKey("comment")
		default:
			if seg.MarkerId > 0xE2 && seg.MarkerId <= 0xEF {
				info.addKey(fmt.Sprintf("app%d", seg.MarkerId-0xE0))
			}
		}
	}
}
