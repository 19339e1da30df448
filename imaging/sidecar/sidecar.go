// Package sidecar locates auxiliary metadata blocks (ICC profiles, XMP
// packets, text chunks, comments) inside image containers without decoding
// pixel data.
package sidecar

import (
	"sort"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/domain"
)

// Info reports which side-channel blocks a container carries. Byte lengths
// are nil when presence is known but the length is not determinable.
type Info struct {
	ICCPresent bool
	ICCBytes   *int
	XMPPresent bool
	XMPBytes   *int

	// OtherKeys lists recognized-but-miscellaneous chunk keys, sorted and
	// de-duplicated. Structural chunks and transparency keys are excluded.
	OtherKeys []string

	Warnings []string
}

func (in *Info) setICC(n int) {
	in.ICCPresent = true
	if n >= 0 {
		total := n
		if in.ICCBytes != nil {
			total += *in.ICCBytes
		}
		in.ICCBytes = &total
	}
}

func (in *Info) setXMP(n int) {
	in.XMPPresent = true
	if n >= 0 && in.XMPBytes == nil {
		in.XMPBytes = &n
	}
}

func (in *Info) addKey(key string) {
	if key == "" {
		return
	}
	for _, k := range in.OtherKeys {
		if k == key {
			return
		}
	}
	in.OtherKeys = append(in.OtherKeys, key)
}

// Scan walks the container structure appropriate for the format. Unknown or
// pixel-only formats yield an empty Info; scan failures degrade to warnings.
func Scan(format domain.Format, data []byte) Info {
	var info Info

	switch format {
	case domain.FormatJPEG:
		scanJPEG(data, &info)
	case domain.FormatPNG:
		scanPNG(data, &info)
	case domain.FormatGIF:
		scanGIF(data, &info)
	case domain.FormatWEBP:
		scanWebP(data, &info)
	case domain.FormatTIFF:
		scanTIFF(data, &info)
	}

	sort.Strings(info.OtherKeys)
	return info
}
