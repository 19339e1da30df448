package codec

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

// RebuildFrame copies an image's raw samples into a freshly allocated buffer
// of the same mode and dimensions. The copy carries pixels only, so nothing a
// codec attached to the original (EXIF, ICC, text chunks) can survive into
// the re-encode.
func RebuildFrame(src image.Image) image.Image {
	b := src.Bounds()

	switch s := src.(type) {
	case *image.Paletted:
		dst := image.NewPaletted(b, clonePalette(s.Palette))
		copy(dst.Pix, s.Pix)
		return dst
	case *image.Gray:
		dst := image.NewGray(b)
		copy(dst.Pix, s.Pix)
		return dst
	case *image.Gray16:
		dst := image.NewGray16(b)
		copy(dst.Pix, s.Pix)
		return dst
	case *image.RGBA:
		dst := image.NewRGBA(b)
		copy(dst.Pix, s.Pix)
		return dst
	case *image.NRGBA:
		dst := image.NewNRGBA(b)
		copy(dst.Pix, s.Pix)
		return dst
	case *image.RGBA64:
		dst := image.NewRGBA64(b)
		copy(dst.Pix, s.Pix)
		return dst
	case *image.NRGBA64:
		dst := image.NewNRGBA64(b)
		copy(dst.Pix, s.Pix)
		return dst
	case *image.CMYK:
		dst := image.NewCMYK(b)
		copy(dst.Pix, s.Pix)
		return dst
	default:
		// YCbCr and anything exotic: resample into NRGBA.
		dst := image.NewNRGBA(b)
		draw.Draw(dst, b, src, b.Min, draw.Src)
		return dst
	}
}

func clonePalette(p color.Palette) color.Palette {
	out := make(color.Palette, len(p))
	copy(out, p)
	return out
}

// opaquePalette flattens a paletted image's transparency key: every palette
// entry is forced fully opaque. Non-paletted images pass through unchanged.
func opaquePalette(img image.Image) image.Image {
	pm, ok := img.(*image.Paletted)
	if !ok {
		return img
	}

	flat := image.NewPaletted(pm.Bounds(), make(color.Palette, len(pm.Palette)))
	copy(flat.Pix, pm.Pix)
	for i, c := range pm.Palette {
		r, g, b, _ := c.RGBA()
		flat.Palette[i] = color.NRGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xFFFF}
	}
	return flat
}

// ensurePaletted returns the image itself when already palette or grayscale
// mapped, and otherwise quantizes it to an adaptive palette of the given size.
func ensurePaletted(img image.Image, paletteSize int) *image.Paletted {
	if pm, ok := img.(*image.Paletted); ok {
		return pm
	}

	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok {
		pm := image.NewPaletted(b, grayPalette())
		for i, v := range g.Pix {
			pm.Pix[i] = v
		}
		return pm
	}

	q := quantize.MedianCutQuantizer{}
	palette := q.Quantize(make([]color.Color, 0, paletteSize), img)
	pm := image.NewPaletted(b, palette)
	draw.FloydSteinberg.Draw(pm, b, img, b.Min)
	return pm
}

func grayPalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}

// encodeAnimatedGIF re-encodes all frames together so that frame order,
// per-frame delay and disposal are reproduced exactly.
func encodeAnimatedGIF(w io.Writer, anim *Animation, opts EncodeOptions) error {
	out := &gif.GIF{LoopCount: anim.LoopCount}

	var canvas image.Rectangle
	for _, f := range anim.Frames {
		pm := ensurePaletted(f.Image, opts.paletteSize())
		out.Image = append(out.Image, pm)
		out.Delay = append(out.Delay, f.Delay)
		out.Disposal = append(out.Disposal, f.Disposal)
		canvas = canvas.Union(pm.Bounds())
	}
	out.Config = image.Config{Width: canvas.Max.X, Height: canvas.Max.Y}

	return gif.EncodeAll(w, out)
}
