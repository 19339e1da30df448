package exifdata

import (
	"math"
	"testing"
)

func TestDmsToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		deg, min float64
		sec      float64
		ref      string
		want     float64
		wantOK   bool
	}{
		{name: "north", deg: 10, min: 30, sec: 0, ref: "N", want: 10.5, wantOK: true},
		{name: "south negates", deg: 10, min: 30, sec: 0, ref: "S", want: -10.5, wantOK: true},
		{name: "west negates", deg: 20, min: 15, sec: 0, ref: "W", want: -20.25, wantOK: true},
		{name: "east", deg: 20, min: 15, sec: 0, ref: "E", want: 20.25, wantOK: true},
		{name: "seconds contribute", deg: 1, min: 0, sec: 36, ref: "N", want: 1.01, wantOK: true},
		{name: "ref trimmed and uppercased", deg: 10, min: 30, sec: 0, ref: " s\x00", want: -10.5, wantOK: true},
		{name: "unknown ref stays positive", deg: 10, min: 0, sec: 0, ref: "?", want: 10, wantOK: true},
		{name: "nan voids", deg: math.NaN(), min: 30, sec: 0, ref: "N", wantOK: false},
		{name: "inf voids", deg: 10, min: math.Inf(1), sec: 0, ref: "N", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dmsToDecimal(tt.deg, tt.min, tt.sec, tt.ref)
			if ok != tt.wantOK {
				t.Fatalf("dmsToDecimal ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("dmsToDecimal = %v, want %v", got, tt.want)
			}
		})
	}
}
