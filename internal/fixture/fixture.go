// Package fixture builds tiny image payloads for tests.
package fixture

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

// TIFFWithGPS returns a little-endian TIFF payload carrying a camera make
// ("GoCam") and a GPS sub-directory at 10 deg 30' N, 20 deg 15' E, which is
// decimal (10.5, 20.25).
func TIFFWithGPS() []byte {
	return tiffWithGPS(1)
}

// TIFFWithBrokenGPS is TIFFWithGPS with the latitude minutes rational's
// denominator zeroed: the GPS tags are present but the coordinate cannot be
// reduced to a number.
func TIFFWithBrokenGPS() []byte {
	return tiffWithGPS(0)
}

func tiffWithGPS(latMinuteDen uint32) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian

	w16 := func(v uint16) { _ = binary.Write(&buf, le, v) }
	w32 := func(v uint32) { _ = binary.Write(&buf, le, v) }
	entry := func(tag, typ uint16, count, value uint32) {
		w16(tag)
		w16(typ)
		w32(count)
		w32(value)
	}
	entryRaw := func(tag, typ uint16, count uint32, value [4]byte) {
		w16(tag)
		w16(typ)
		w32(count)
		buf.Write(value[:])
	}
	rational := func(num, den uint32) {
		w32(num)
		w32(den)
	}

	const (
		ifd0Off = 8
		makeOff = ifd0Off + 2 + 2*12 + 4 // 38
		gpsOff  = makeOff + 6            // 44
		latOff  = gpsOff + 2 + 5*12 + 4  // 110
		lonOff  = latOff + 24            // 134
	)

	buf.WriteString("II")
	w16(42)
	w32(ifd0Off)

	w16(2)
	entry(0x010F, 2, 6, makeOff) // Make, ASCII
	entry(0x8825, 4, 1, gpsOff)  // GPS IFD pointer
	w32(0)

	buf.WriteString("GoCam\x00")

	w16(5)
	entryRaw(0x0000, 1, 4, [4]byte{2, 2, 0, 0})       // GPSVersionID
	entryRaw(0x0001, 2, 2, [4]byte{'N', 0, 0, 0})     // GPSLatitudeRef
	entry(0x0002, 5, 3, latOff)                       // GPSLatitude
	entryRaw(0x0003, 2, 2, [4]byte{'E', 0, 0, 0})     // GPSLongitudeRef
	entry(0x0004, 5, 3, lonOff)                       // GPSLongitude
	w32(0)

	rational(10, 1)
	rational(30, latMinuteDen)
	rational(0, 1)

	rational(20, 1)
	rational(15, 1)
	rational(0, 1)

	return buf.Bytes()
}

// BaseJPEG encodes a small gradient JPEG with no metadata segments.
func BaseJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(40 * y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// JPEGWithEXIF splices an EXIF APP1 segment (wrapping TIFFWithGPS) right
// after the SOI marker of a freshly encoded JPEG.
func JPEGWithEXIF(w, h int) []byte {
	return SpliceJPEGSegment(BaseJPEG(w, h), 0xE1, append([]byte("Exif\x00\x00"), TIFFWithGPS()...))
}

// SpliceJPEGSegment inserts one marker segment directly after SOI.
func SpliceJPEGSegment(jpegData []byte, marker byte, payload []byte) []byte {
	segLen := len(payload) + 2
	out := make([]byte, 0, len(jpegData)+4+len(payload))
	out = append(out, jpegData[:2]...)
	out = append(out, 0xFF, marker, byte(segLen>>8), byte(segLen))
	out = append(out, payload...)
	out = append(out, jpegData[2:]...)
	return out
}

// BasePNG encodes a small NRGBA PNG. The top-left pixel is fully
// transparent so alpha handling can be asserted.
func BasePNG(w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(50 * x), G: uint8(50 * y), B: 200, A: 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// PNGChunk renders a chunk with its length and CRC framing.
func PNGChunk(typ string, data []byte) []byte {
	out := make([]byte, 8, 12+len(data))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(data)))
	copy(out[4:8], typ)
	out = append(out, data...)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	return binary.BigEndian.AppendUint32(out, crc.Sum32())
}

// PNGWithChunks splices raw chunks in front of the IEND chunk.
func PNGWithChunks(pngData []byte, chunks ...[]byte) []byte {
	iend := len(pngData) - 12 // zero-length IEND with framing
	out := make([]byte, 0, len(pngData)+totalLen(chunks))
	out = append(out, pngData[:iend]...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return append(out, pngData[iend:]...)
}

func totalLen(chunks [][]byte) int {
	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	return n
}
