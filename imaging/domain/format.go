package domain

import (
	"path/filepath"
	"strings"
)

// Format identifies an image container family.
type Format string

const (
	FormatJPEG Format = "JPEG"
	FormatPNG  Format = "PNG"
	FormatWEBP Format = "WEBP"
	FormatTIFF Format = "TIFF"
	FormatGIF  Format = "GIF"
	FormatBMP  Format = "BMP"
	FormatPBM  Format = "PBM"
	FormatPGM  Format = "PGM"
	FormatPPM  Format = "PPM"
	FormatHEIC Format = "HEIC"
	FormatHEIF Format = "HEIF"
	FormatAVIF Format = "AVIF"
)

// extensionFormats is the allow-list of recognized input extensions.
var extensionFormats = map[string]Format{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".webp": FormatWEBP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".gif":  FormatGIF,
	".heic": FormatHEIC,
	".heif": FormatHEIF,
	".bmp":  FormatBMP,
	".pbm":  FormatPBM,
	".pgm":  FormatPGM,
	".ppm":  FormatPPM,
	".avif": FormatAVIF,
}

// FormatForFilename maps a filename to a format via its extension,
// case-insensitively. The second return is false for filenames outside
// the recognized extension set.
func FormatForFilename(name string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	f, ok := extensionFormats[ext]
	return f, ok
}

// IsImageFilename reports whether the filename carries a recognized image extension.
func IsImageFilename(name string) bool {
	_, ok := FormatForFilename(name)
	return ok
}

// HEIFFamily reports whether the format needs the optional HEIF codec plugin.
func (f Format) HEIFFamily() bool {
	return f == FormatHEIC || f == FormatHEIF || f == FormatAVIF
}

// Multiframe reports whether the container can carry more than one frame.
func (f Format) Multiframe() bool {
	return f == FormatGIF || f == FormatWEBP
}

// PNMFamily reports whether the format is one of the netpbm variants.
func (f Format) PNMFamily() bool {
	return f == FormatPBM || f == FormatPGM || f == FormatPPM
}
