package exifdata

import (
	"math"
	"strings"
)

// dmsToDecimal converts a degrees/minutes/seconds triple plus a hemisphere
// reference into signed decimal degrees. The conversion is all-or-nothing:
// any non-finite component voids the coordinate and the second return is
// false. The sign is negated for S and W references.
func dmsToDecimal(degrees, minutes, seconds float64, ref string) (float64, bool) {
	for _, c := range []float64{degrees, minutes, seconds} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return 0, false
		}
	}

	val := degrees + minutes/60 + seconds/3600
	switch strings.ToUpper(strings.TrimSpace(strings.TrimRight(ref, "\x00"))) {
	case "S", "W":
		val = -val
	}
	return val, true
}
