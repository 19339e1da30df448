// Package gifscan walks the GIF block structure without decoding pixel data.
package gifscan

import (
	"bytes"
	"io"
)

// Visitor receives callbacks as Walk passes each block. Nil callbacks are
// skipped. AppExt gets the raw application identifier bytes and the total
// payload length of the sub-block chain that follows it.
type Visitor struct {
	Frame   func()
	Comment func()
	AppExt  func(id string, payloadLen int)
}

// Walk scans data block by block and fires the visitor's callbacks. A
// truncated or malformed stream ends the walk at the last well-formed block;
// callbacks already fired stay fired.
func Walk(data []byte, v Visitor) {
	r := bytes.NewReader(data)

	var header [6]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return
	}
	var lsd [7]byte
	if _, err := io.ReadFull(r, lsd[:]); err != nil {
		return
	}
	if !skipColorTable(r, lsd[4]) {
		return
	}

	for {
		introducer, err := r.ReadByte()
		if err != nil {
			return
		}

		switch introducer {
		case 0x21: // extension
			label, err := r.ReadByte()
			if err != nil {
				return
			}
			switch label {
			case 0xFE:
				if v.Comment != nil {
					v.Comment()
				}
				if !skipSubBlocks(r, nil) {
					return
				}
			case 0xFF:
				size, err := r.ReadByte()
				if err != nil {
					return
				}
				appID := make([]byte, size)
				if _, err := io.ReadFull(r, appID); err != nil {
					return
				}
				var payload int
				if !skipSubBlocks(r, &payload) {
					return
				}
				if v.AppExt != nil {
					v.AppExt(string(appID), payload)
				}
			default:
				if !skipSubBlocks(r, nil) {
					return
				}
			}

		case 0x2C: // image descriptor
			if v.Frame != nil {
				v.Frame()
			}
			var desc [9]byte
			if _, err := io.ReadFull(r, desc[:]); err != nil {
				return
			}
			if !skipColorTable(r, desc[8]) {
				return
			}
			if _, err := r.ReadByte(); err != nil { // LZW minimum code size
				return
			}
			if !skipSubBlocks(r, nil) {
				return
			}

		case 0x3B: // trailer
			return

		default:
			return
		}
	}
}

func skipColorTable(r *bytes.Reader, flags byte) bool {
	if flags&0x80 == 0 {
		return true
	}
	tableSize := 3 * (1 << (int(flags&0x07) + 1))
	_, err := r.Seek(int64(tableSize), io.SeekCurrent)
	return err == nil
}

// skipSubBlocks consumes a sub-block chain, optionally accumulating the
// payload size. Returns false on a truncated stream.
func skipSubBlocks(r *bytes.Reader, total *int) bool {
	for {
		size, err := r.ReadByte()
		if err != nil {
			return false
		}
		if size == 0 {
			return true
		}
		if total != nil {
			*total += int(size)
		}
		if _, err := r.Seek(int64(size), io.SeekCurrent); err != nil {
			return false
		}
	}
}
