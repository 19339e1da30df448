package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/spakin/netpbm"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	xwebp "golang.org/x/image/webp"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/domain"
)

// Limits bounds decoder work on malformed or hostile input. Enforcement
// happens on the header dimensions before any pixel data is decoded.
type Limits struct {
	MaxPixels    int64
	MaxDimension int
}

// Frame is one decoded pixel plane plus its playback attributes. Delay is in
// hundredths of a second; Disposal uses the GIF disposal codes. Both are zero
// for single-frame containers.
type Frame struct {
	Image    image.Image
	Delay    int
	Disposal byte
}

// Animation is an ordered frame sequence; order is playback order.
type Animation struct {
	Frames    []Frame
	LoopCount int
}

// EncodeOptions tunes the re-encode path. The GIF palette size is
// configurable rather than load-bearing; 0 means 256.
type EncodeOptions struct {
	JPEGQuality    int
	GIFPaletteSize int

	// DropTransparency flattens a paletted transparency key to opaque,
	// used by the strip-all policy on single-frame PNG/GIF output.
	DropTransparency bool
}

// Registry dispatches decode and encode calls per format, honoring the
// optional-codec capabilities resolved at startup.
type Registry struct {
	caps   Capabilities
	limits Limits
}

func NewRegistry(caps Capabilities, limits Limits) *Registry {
	return &Registry{caps: caps, limits: limits}
}

func (r *Registry) Capabilities() Capabilities { return r.caps }

// DecodeConfig reads the image header only: dimensions and color model.
func (r *Registry) DecodeConfig(format domain.Format, data []byte) (image.Config, error) {
	br := bytes.NewReader(data)

	var (
		cfg image.Config
		err error
	)
	switch format {
	case domain.FormatJPEG:
		cfg, err = jpeg.DecodeConfig(br)
	case domain.FormatPNG:
		cfg, err = png.DecodeConfig(br)
	case domain.FormatGIF:
		cfg, err = gif.DecodeConfig(br)
	case domain.FormatWEBP:
		cfg, err = xwebp.DecodeConfig(br)
	case domain.FormatTIFF:
		cfg, err = tiff.DecodeConfig(br)
	case domain.FormatBMP:
		cfg, err = bmp.DecodeConfig(br)
	case domain.FormatPBM, domain.FormatPGM, domain.FormatPPM:
		cfg, err = pnmDecodeConfig(br)
	case domain.FormatHEIC, domain.FormatHEIF:
		if heifDecodeConfig == nil {
			return image.Config{}, fmt.Errorf("%w: %s", domain.ErrCodecUnavailable, format)
		}
		cfg, err = heifDecodeConfig(br)
	case domain.FormatAVIF:
		if avifDecodeConfig == nil {
			return image.Config{}, fmt.Errorf("%w: %s", domain.ErrCodecUnavailable, format)
		}
		cfg, err = avifDecodeConfig(br)
	default:
		return image.Config{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, format)
	}
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}

	if err := r.checkLimits(cfg); err != nil {
		return image.Config{}, err
	}
	return cfg, nil
}

func (r *Registry) checkLimits(cfg image.Config) error {
	if r.limits.MaxDimension > 0 && (cfg.Width > r.limits.MaxDimension || cfg.Height > r.limits.MaxDimension) {
		return fmt.Errorf("%w: dimensions %dx%d exceed limit %d",
			domain.ErrDecodeFailed, cfg.Width, cfg.Height, r.limits.MaxDimension)
	}
	if r.limits.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > r.limits.MaxPixels {
		return fmt.Errorf("%w: pixel count %d exceeds limit %d",
			domain.ErrDecodeFailed, int64(cfg.Width)*int64(cfg.Height), r.limits.MaxPixels)
	}
	return nil
}

// Decode decodes the first (or only) frame after enforcing header limits.
func (r *Registry) Decode(format domain.Format, data []byte) (image.Image, error) {
	if _, err := r.DecodeConfig(format, data); err != nil {
		return nil, err
	}

	br := bytes.NewReader(data)

	var (
		img image.Image
		err error
	)
	switch format {
	case domain.FormatJPEG:
		img, err = jpeg.Decode(br)
	case domain.FormatPNG:
		img, err = png.Decode(br)
	case domain.FormatGIF:
		img, err = gif.Decode(br)
	case domain.FormatWEBP:
		img, err = xwebp.Decode(br)
	case domain.FormatTIFF:
		img, err = tiff.Decode(br)
	case domain.FormatBMP:
		img, err = bmp.Decode(br)
	case domain.FormatPBM, domain.FormatPGM, domain.FormatPPM:
		img, err = netpbm.Decode(br, nil)
	case domain.FormatHEIC, domain.FormatHEIF:
		img, err = heifDecode(br)
	case domain.FormatAVIF:
		img, err = avifDecode(br)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}
	return img, nil
}

// DecodeAnimation decodes every frame of a multi-frame container. For GIF
// this captures per-frame delay and disposal; for everything else the result
// is a single frame. Animated WebP cannot be iterated by the available codec,
// so it degrades to the first frame with an error the caller may treat as a
// warning.
func (r *Registry) DecodeAnimation(format domain.Format, data []byte) (*Animation, error) {
	if format == domain.FormatGIF {
		if _, err := r.DecodeConfig(format, data); err != nil {
			return nil, err
		}
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
		}

		anim := &Animation{LoopCount: g.LoopCount}
		for i, pm := range g.Image {
			f := Frame{Image: pm}
			if i < len(g.Delay) {
				f.Delay = g.Delay[i]
			}
			if i < len(g.Disposal) {
				f.Disposal = g.Disposal[i]
			}
			anim.Frames = append(anim.Frames, f)
		}
		return anim, nil
	}

	img, err := r.Decode(format, data)
	if err != nil {
		return nil, err
	}
	anim := &Animation{Frames: []Frame{{Image: img}}}

	if format == domain.FormatWEBP {
		if n, animated := webpAnimFrames(data); animated && n > 1 {
			return anim, fmt.Errorf("animated WebP: only the first of %d frames can be rebuilt", n)
		}
	}
	return anim, nil
}

// Encode writes the frames as a fresh, metadata-free container of the given
// format. Multi-frame output is only produced for GIF.
func (r *Registry) Encode(w io.Writer, format domain.Format, anim *Animation, opts EncodeOptions) error {
	if anim == nil || len(anim.Frames) == 0 {
		return fmt.Errorf("%w: no frames to encode", domain.ErrReencodeFailed)
	}

	if format == domain.FormatGIF && len(anim.Frames) > 1 {
		if err := encodeAnimatedGIF(w, anim, opts); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrReencodeFailed, err)
		}
		return nil
	}

	img := anim.Frames[0].Image
	if opts.DropTransparency {
		img = opaquePalette(img)
	}

	var err error
	switch format {
	case domain.FormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = 95
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case domain.FormatPNG:
		err = png.Encode(w, img)
	case domain.FormatGIF:
		err = gif.Encode(w, ensurePaletted(img, opts.paletteSize()), nil)
	case domain.FormatWEBP:
		err = webp.Encode(w, img, &webp.Options{Lossless: true, Exact: true})
	case domain.FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case domain.FormatBMP:
		err = bmp.Encode(w, img)
	case domain.FormatPBM:
		err = netpbm.Encode(w, img, &netpbm.EncodeOptions{Format: netpbm.PBM, MaxValue: 1})
	case domain.FormatPGM:
		err = netpbm.Encode(w, img, &netpbm.EncodeOptions{Format: netpbm.PGM, MaxValue: 255})
	case domain.FormatPPM:
		err = netpbm.Encode(w, img, &netpbm.EncodeOptions{Format: netpbm.PPM, MaxValue: 255})
	case domain.FormatAVIF:
		if avifEncode == nil {
			return fmt.Errorf("%w: no AVIF encoder registered (build with -tags heif)", domain.ErrReencodeFailed)
		}
		err = avifEncode(w, img)
	case domain.FormatHEIC, domain.FormatHEIF:
		return fmt.Errorf("%w: no %s encoder is available", domain.ErrReencodeFailed, format)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedType, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrReencodeFailed, err)
	}
	return nil
}

func (o EncodeOptions) paletteSize() int {
	if o.GIFPaletteSize <= 0 || o.GIFPaletteSize > 256 {
		return 256
	}
	return o.GIFPaletteSize
}

// pnmDecodeConfig derives an image.Config for netpbm input. The netpbm codec
// has no cheap header-only path for all variants, so decode and measure;
// these files are uncompressed and small relative to their pixel count.
func pnmDecodeConfig(r io.Reader) (image.Config, error) {
	img, err := netpbm.Decode(r, nil)
	if err != nil {
		return image.Config{}, err
	}
	b := img.Bounds()
	return image.Config{
		ColorModel: img.ColorModel(),
		Width:      b.Dx(),
		Height:     b.Dy(),
	}, nil
}
