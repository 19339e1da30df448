package application

import (
	"image"
	"image/color"
	"path/filepath"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/codec"
	"github.com/RawdodReverend/EXIF-STRIP/imaging/domain"
	"github.com/RawdodReverend/EXIF-STRIP/imaging/exifdata"
	"github.com/RawdodReverend/EXIF-STRIP/imaging/sidecar"
)

// Inspector builds structural metadata summaries. It holds no per-request
// state; one instance serves concurrent requests.
type Inspector struct {
	reg *codec.Registry
}

func NewInspector(reg *codec.Registry) *Inspector {
	return &Inspector{reg: reg}
}

// Inspect aggregates the classifier, the codec's header introspection, the
// tag-tree decoder and the side-channel scanner into one summary. It always
// returns a summary: decode failures become warnings with a nil format, so
// callers can tell "no metadata" apart from "could not read file".
func (ins *Inspector) Inspect(data []byte, filename string) *domain.MetadataSummary {
	s := &domain.MetadataSummary{
		Filename: filepath.Base(filename),
		Frames:   1,
		EXIF:     domain.TagMap{},
		GPSRaw:   domain.TagMap{},
		Warnings: []string{},
	}

	format, frames, err := codec.Classify(data, filename, ins.reg.Capabilities())
	if err != nil {
		s.Warnings = append(s.Warnings, err.Error())
		return s
	}

	cfg, err := ins.reg.DecodeConfig(format, data)
	if err != nil {
		s.Warnings = append(s.Warnings, err.Error())
		return s
	}

	s.Format = &format
	s.Width = cfg.Width
	s.Height = cfg.Height
	s.Frames = frames
	s.Mode, s.HasAlpha = modeOf(cfg)

	res := exifdata.Extract(data)
	s.EXIF = res.Tags
	s.GPSRaw = res.GPSRaw
	s.GPS = res.GPS
	s.RawEXIFBytes = res.RawBlobBytes
	s.Warnings = append(s.Warnings, res.Warnings...)

	sc := sidecar.Scan(format, data)
	s.ICCPresent = sc.ICCPresent
	s.ICCBytes = sc.ICCBytes
	s.XMPPresent = sc.XMPPresent
	s.XMPBytes = sc.XMPBytes
	s.OtherKeys = sc.OtherKeys
	s.Warnings = append(s.Warnings, sc.Warnings...)

	return s
}

// modeOf maps a decoded color model onto a compact mode name plus an alpha
// flag. Palette alpha counts: an indexed image with any translucent entry
// reports alpha.
func modeOf(cfg image.Config) (string, bool) {
	switch m := cfg.ColorModel.(type) {
	case color.Palette:
		for _, c := range m {
			if _, _, _, a := c.RGBA(); a < 0xFFFF {
				return "P", true
			}
		}
		return "P", false
	default:
	}

	switch cfg.ColorModel {
	case color.YCbCrModel:
		return "RGB", false
	case color.NYCbCrAModel:
		// lossy WebP with an alpha plane decodes to this model
		return "RGBA", true
	case color.GrayModel:
		return "L", false
	case color.Gray16Model:
		return "I;16", false
	case color.RGBAModel, color.NRGBAModel:
		return "RGBA", true
	case color.RGBA64Model, color.NRGBA64Model:
		return "RGBA", true
	case color.CMYKModel:
		return "CMYK", false
	default:
		return "RGB", false
	}
}
