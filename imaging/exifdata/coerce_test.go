package exifdata

import (
	"math"
	"reflect"
	"testing"

	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

func TestJsonSafe(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: nil},
		{name: "string keeps text", in: "hello", want: "hello"},
		{name: "string drops trailing nuls", in: "hello\x00\x00", want: "hello"},
		{name: "int widens", in: int(7), want: int64(7)},
		{name: "uint16 widens", in: uint16(300), want: int64(300)},
		{name: "bool passes", in: true, want: true},
		{name: "finite float passes", in: 2.5, want: 2.5},
		{name: "nan degrades", in: math.NaN(), want: Unserializable},
		{name: "inf degrades", in: math.Inf(-1), want: Unserializable},
		{name: "utf8 bytes become text", in: []byte("abc\x00"), want: "abc"},
		{name: "binary bytes become placeholder", in: []byte{0xFF, 0xFE, 0x01}, want: "<3 bytes>"},
		{
			name: "rational reduces",
			in:   exifcommon.Rational{Numerator: 1, Denominator: 2},
			want: 0.5,
		},
		{
			name: "zero denominator keeps textual form",
			in:   exifcommon.Rational{Numerator: 3, Denominator: 0},
			want: "3/0",
		},
		{
			name: "signed rational reduces",
			in:   exifcommon.SignedRational{Numerator: -1, Denominator: 4},
			want: -0.25,
		},
		{
			name: "rational slice",
			in: []exifcommon.Rational{
				{Numerator: 1, Denominator: 2},
				{Numerator: 1, Denominator: 4},
			},
			want: []any{0.5, 0.25},
		},
		{name: "uint16 slice", in: []uint16{1, 2}, want: []any{int64(1), int64(2)}},
		{
			name: "nested sequence",
			in:   []any{"a", []any{int32(1), math.NaN()}},
			want: []any{"a", []any{int64(1), Unserializable}},
		},
		{
			name: "map values coerced",
			in:   map[string]any{"n": uint64(9)},
			want: map[string]any{"n": int64(9)},
		},
		{name: "opaque falls back to string", in: struct{ A int }{A: 1}, want: "{1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jsonSafe(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("jsonSafe(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
