package sidecar

import (
	"fmt"

	exif3 "github.com/dsoprea/go-exif/v3"
)

const (
	tiffTagXMP = 0x02BC // 700
	tiffTagICC = 0x8773 // 34675
)

// scanTIFF reads the IFD entries of a TIFF file; ICC and XMP are ordinary
// tags there rather than container chunks.
func scanTIFF(data []byte, info *Info) {
	defer func() {
		if r := recover(); r != nil {
			info.Warnings = append(info.Warnings, fmt.Sprintf("TIFF tag scan aborted: %v", r))
		}
	}()

	entries, _, err := exif3.GetFlatExifData(data, nil)
	if err != nil {
		info.Warnings = append(info.Warnings, fmt.Sprintf("TIFF tag scan: %v", err))
		return
	}

	for _, e := range entries {
		switch e.TagId {
		case tiffTagXMP:
			info.setXMP(valueLen(e.Value))
		case tiffTagICC:
			info.setICC(valueLen(e.Value))
		}
	}
}

func valueLen(v any) int {
	if b, ok := v.([]byte); ok {
		return len(b)
	}
	if s, ok := v.(string); ok {
		return len(s)
	}
	return -1
}
