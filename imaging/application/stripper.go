package application

import (
	"bytes"

	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
	"github.com/rs/zerolog/log"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/codec"
	"github.com/RawdodReverend/EXIF-STRIP/imaging/domain"
)

// StripperConfig tunes the re-encode path. Zero values select the defaults
// (quality 95, 256-color adaptive palettes).
type StripperConfig struct {
	JPEGQuality    int
	GIFPaletteSize int
}

// Stripper produces metadata-free copies of image assets. Stateless;
// safe for concurrent use.
type Stripper struct {
	reg *codec.Registry
	cfg StripperConfig
}

func NewStripper(reg *codec.Registry, cfg StripperConfig) *Stripper {
	return &Stripper{reg: reg, cfg: cfg}
}

// Strip removes metadata from one asset and returns the cleaned bytes plus
// any warnings about lossy degradation (an animated input collapsing to its
// first frame).
//
// JPEG under the EXIF-only policy takes the lossless fast path: the EXIF
// marker segment is excised from the byte stream without touching the
// entropy-coded data. Everything else (and any fast-path failure) goes
// through decode/re-encode: each frame is rebuilt from raw samples into a
// fresh buffer and written to a new container, so no latent metadata chunk
// can survive the round trip.
func (s *Stripper) Strip(data []byte, filename string, policy domain.StripPolicy) ([]byte, []string, error) {
	format, _, err := codec.Classify(data, filename, s.reg.Capabilities())
	if err != nil {
		return nil, nil, err
	}

	if format == domain.FormatJPEG && policy == domain.StripEXIFOnly {
		if out, ok := losslessJPEGStrip(data); ok {
			return out, nil, nil
		}
		log.Debug().Str("file", filename).Msg("lossless JPEG strip unavailable, re-encoding")
	}

	anim, decodeErr := s.reg.DecodeAnimation(format, data)
	if anim == nil {
		return nil, nil, decodeErr
	}
	warnings := degradeAnimation(anim, decodeErr)
	if len(warnings) > 0 {
		log.Debug().Str("file", filename).Err(decodeErr).Msg("degrading to single-frame output")
	}

	for i := range anim.Frames {
		anim.Frames[i].Image = codec.RebuildFrame(anim.Frames[i].Image)
	}

	opts := codec.EncodeOptions{
		JPEGQuality:    s.cfg.JPEGQuality,
		GIFPaletteSize: s.cfg.GIFPaletteSize,
		DropTransparency: policy == domain.StripAll && len(anim.Frames) == 1 &&
			(format == domain.FormatPNG || format == domain.FormatGIF),
	}

	var buf bytes.Buffer
	if err := s.reg.Encode(&buf, format, anim, opts); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), warnings, nil
}

// degradeAnimation collapses a partially decoded animation (animated WebP)
// to its first frame and reports the degradation so callers can surface it
// on the outcome instead of delivering a silently de-animated file.
func degradeAnimation(anim *codec.Animation, decodeErr error) []string {
	if decodeErr == nil {
		return nil
	}
	anim.Frames = anim.Frames[:1]
	return []string{decodeErr.Error()}
}

// losslessJPEGStrip drops the EXIF segment from a JPEG stream without
// re-encoding. Any parse or write failure reports false so the caller can
// fall through to the decode/re-encode path.
func losslessJPEGStrip(data []byte) (out []byte, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()

	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseBytes(data)
	if err != nil {
		return nil, false
	}
	sl, castOK := intfc.(*jpegstructure.SegmentList)
	if !castOK {
		return nil, false
	}

	if _, err := sl.DropExif(); err != nil {
		return nil, false
	}

	var buf bytes.Buffer
	if err := sl.Write(&buf); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
