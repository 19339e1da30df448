package codec

import (
	"bytes"
	"fmt"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/domain"
)

var (
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	riffSignature = []byte("RIFF")
	webpSignature = []byte("WEBP")
)

// Sniff identifies the container family from magic bytes alone. It returns
// the empty Format when the content is inconclusive.
func Sniff(data []byte) domain.Format {
	if len(data) < 2 {
		return ""
	}

	// JPEG: FF D8 FF
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return domain.FormatJPEG
	}

	if bytes.HasPrefix(data, pngSignature) {
		return domain.FormatPNG
	}

	// GIF87a / GIF89a
	if len(data) >= 6 && string(data[0:4]) == "GIF8" &&
		(data[4] == '7' || data[4] == '9') && data[5] == 'a' {
		return domain.FormatGIF
	}

	// RIFF....WEBP
	if len(data) >= 12 && bytes.HasPrefix(data, riffSignature) &&
		bytes.Equal(data[8:12], webpSignature) {
		return domain.FormatWEBP
	}

	// TIFF: II*\0 (little-endian) or MM\0* (big-endian)
	if len(data) >= 4 {
		if data[0] == 'I' && data[1] == 'I' && data[2] == 0x2A && data[3] == 0x00 {
			return domain.FormatTIFF
		}
		if data[0] == 'M' && data[1] == 'M' && data[2] == 0x00 && data[3] == 0x2A {
			return domain.FormatTIFF
		}
	}

	if data[0] == 'B' && data[1] == 'M' {
		return domain.FormatBMP
	}

	// netpbm: "P1".."P6" followed by whitespace
	if data[0] == 'P' && len(data) >= 3 && data[1] >= '1' && data[1] <= '6' && isPNMSpace(data[2]) {
		switch data[1] {
		case '1', '4':
			return domain.FormatPBM
		case '2', '5':
			return domain.FormatPGM
		default:
			return domain.FormatPPM
		}
	}

	// ISO BMFF: size + "ftyp" + major brand
	if len(data) >= 12 && string(data[4:8]) == "ftyp" {
		switch string(data[8:12]) {
		case "avif", "avis":
			return domain.FormatAVIF
		case "heic", "heix", "hevc", "hevx":
			return domain.FormatHEIC
		case "mif1", "msf1", "heim", "heis":
			return domain.FormatHEIF
		}
	}

	return ""
}

func isPNMSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '#'
}

// Classify determines the format and frame count for an asset. Content
// sniffing wins over the filename hint; the extension only breaks ties when
// sniffing is inconclusive. Filenames outside the extension allow-list are
// rejected before any decode. HEIF-family formats additionally require the
// optional codec plugin.
func Classify(data []byte, filename string, caps Capabilities) (domain.Format, int, error) {
	extFormat, ok := domain.FormatForFilename(filename)
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, filename)
	}

	format := Sniff(data)
	if format == "" {
		format = extFormat
	}

	if format.HEIFFamily() && !caps.Supports(format) {
		return "", 0, fmt.Errorf("%w: %s decoding needs the optional HEIF codec plugin (build with -tags heif)",
			domain.ErrCodecUnavailable, format)
	}

	frames := 1
	switch format {
	case domain.FormatGIF:
		if n := gifFrameCount(data); n > 0 {
			frames = n
		}
	case domain.FormatWEBP:
		if n, animated := webpAnimFrames(data); animated && n > 0 {
			frames = n
		}
	}

	return format, frames, nil
}
