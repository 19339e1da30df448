package sidecar

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"reflect"
	"testing"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/domain"
	"github.com/RawdodReverend/EXIF-STRIP/internal/fixture"
)

func TestScanJPEGSideChannels(t *testing.T) {
	xmpPacket := []byte("<x:xmpmeta/>")
	iccProfile := make([]byte, 32)

	data := fixture.BaseJPEG(8, 8)
	data = fixture.SpliceJPEGSegment(data, 0xE2,
		append(append([]byte("ICC_PROFILE\x00"), 1, 1), iccProfile...))
	data = fixture.SpliceJPEGSegment(data, 0xE1,
		append([]byte("http://ns.adobe.com/xap/1.0/\x00"), xmpPacket...))

	info := Scan(domain.FormatJPEG, data)

	if !info.XMPPresent || info.XMPBytes == nil || *info.XMPBytes != len(xmpPacket) {
		t.Errorf("XMP = (%v, %v), want present with %d bytes", info.XMPPresent, info.XMPBytes, len(xmpPacket))
	}
	if !info.ICCPresent || info.ICCBytes == nil || *info.ICCBytes != len(iccProfile) {
		t.Errorf("ICC = (%v, %v), want present with %d bytes", info.ICCPresent, info.ICCBytes, len(iccProfile))
	}
	if len(info.Warnings) != 0 {
		t.Errorf("Warnings = %v", info.Warnings)
	}
}

func TestScanJPEGSumsICCSegments(t *testing.T) {
	data := fixture.BaseJPEG(8, 8)
	data = fixture.SpliceJPEGSegment(data, 0xE2,
		append(append([]byte("ICC_PROFILE\x00"), 2, 2), make([]byte, 16)...))
	data = fixture.SpliceJPEGSegment(data, 0xE2,
		append(append([]byte("ICC_PROFILE\x00"), 1, 2), make([]byte, 32)...))

	info := Scan(domain.FormatJPEG, data)

	if info.ICCBytes == nil || *info.ICCBytes != 48 {
		t.Errorf("ICCBytes = %v, want 48", info.ICCBytes)
	}
}

func TestScanJPEGClean(t *testing.T) {
	info := Scan(domain.FormatJPEG, fixture.BaseJPEG(8, 8))

	if info.ICCPresent || info.XMPPresent || len(info.OtherKeys) != 0 {
		t.Errorf("clean JPEG reported side channels: %+v", info)
	}
}

func TestScanPNGChunks(t *testing.T) {
	xmpPacket := []byte("<x:xmpmeta/>")
	iccCompressed := make([]byte, 10)

	itxt := append([]byte("XML:com.adobe.xmp"), 0, 0, 0, 0, 0)
	itxt = append(itxt, xmpPacket...)
	iccp := append([]byte("icc\x00\x00"), iccCompressed...)

	data := fixture.PNGWithChunks(fixture.BasePNG(4, 4),
		fixture.PNGChunk("iTXt", itxt),
		fixture.PNGChunk("iCCP", iccp),
		fixture.PNGChunk("tEXt", []byte("Comment\x00hello")),
		fixture.PNGChunk("gAMA", []byte{0, 1, 134, 160}),
	)

	info := Scan(domain.FormatPNG, data)

	if !info.XMPPresent || info.XMPBytes == nil || *info.XMPBytes != len(xmpPacket) {
		t.Errorf("XMP = (%v, %v), want present with %d bytes", info.XMPPresent, info.XMPBytes, len(xmpPacket))
	}
	if !info.ICCPresent || info.ICCBytes == nil || *info.ICCBytes != len(iccCompressed) {
		t.Errorf("ICC = (%v, %v), want present with %d bytes", info.ICCPresent, info.ICCBytes, len(iccCompressed))
	}
	if want := []string{"Comment", "gamma"}; !reflect.DeepEqual(info.OtherKeys, want) {
		t.Errorf("OtherKeys = %v, want %v", info.OtherKeys, want)
	}
}

func TestScanGIFExtensions(t *testing.T) {
	pm := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, pm, nil); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	var ext []byte
	// comment extension
	ext = append(ext, 0x21, 0xFE, 5)
	ext = append(ext, "hello"...)
	ext = append(ext, 0)
	// XMP application extension with a 4-byte payload
	ext = append(ext, 0x21, 0xFF, 11)
	ext = append(ext, "XMP DataXMP"...)
	ext = append(ext, 4, 'x', 'm', 'p', '!', 0)

	spliced := append(append(append([]byte{}, data[:len(data)-1]...), ext...), 0x3B)

	info := Scan(domain.FormatGIF, spliced)

	if !info.XMPPresent || info.XMPBytes == nil || *info.XMPBytes != 4 {
		t.Errorf("XMP = (%v, %v), want present with 4 bytes", info.XMPPresent, info.XMPBytes)
	}
	if want := []string{"comment"}; !reflect.DeepEqual(info.OtherKeys, want) {
		t.Errorf("OtherKeys = %v, want %v", info.OtherKeys, want)
	}
	if info.ICCPresent {
		t.Error("GIF cannot carry an ICC profile")
	}
}

func riffChunk(fourCC string, payload []byte) []byte {
	out := []byte(fourCC)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)
	if len(payload)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

func TestScanWebPChunks(t *testing.T) {
	var payload []byte
	payload = append(payload, riffChunk("ICCP", make([]byte, 20))...)
	payload = append(payload, riffChunk("XMP ", make([]byte, 6))...)
	payload = append(payload, riffChunk("ANIM", make([]byte, 6))...)
	payload = append(payload, riffChunk("VP8 ", make([]byte, 8))...)

	data := []byte("RIFF")
	data = binary.LittleEndian.AppendUint32(data, uint32(4+len(payload)))
	data = append(data, "WEBP"...)
	data = append(data, payload...)

	info := Scan(domain.FormatWEBP, data)

	if !info.ICCPresent || info.ICCBytes == nil || *info.ICCBytes != 20 {
		t.Errorf("ICC = (%v, %v), want present with 20 bytes", info.ICCPresent, info.ICCBytes)
	}
	if !info.XMPPresent || info.XMPBytes == nil || *info.XMPBytes != 6 {
		t.Errorf("XMP = (%v, %v), want present with 6 bytes", info.XMPPresent, info.XMPBytes)
	}
	if want := []string{"animation"}; !reflect.DeepEqual(info.OtherKeys, want) {
		t.Errorf("OtherKeys = %v, want %v", info.OtherKeys, want)
	}
}

func TestScanWebPTruncated(t *testing.T) {
	data := []byte("RIFF\x20\x00\x00\x00WEBP")
	data = append(data, "ICCP"...)
	data = binary.LittleEndian.AppendUint32(data, 1000)

	info := Scan(domain.FormatWEBP, data)

	if len(info.Warnings) == 0 {
		t.Error("expected a truncation warning")
	}
}

func TestScanTIFFWithoutSideChannels(t *testing.T) {
	info := Scan(domain.FormatTIFF, fixture.TIFFWithGPS())

	if info.ICCPresent || info.XMPPresent {
		t.Errorf("clean TIFF reported side channels: %+v", info)
	}
}

func TestScanUnknownFormat(t *testing.T) {
	info := Scan(domain.FormatBMP, []byte("BM anything"))

	if info.ICCPresent || info.XMPPresent || len(info.OtherKeys) != 0 || len(info.Warnings) != 0 {
		t.Errorf("pixel-only format reported data: %+v", info)
	}
}
