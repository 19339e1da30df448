package exifdata

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// Unserializable is the sentinel emitted for tag values with no defined
// JSON-safe conversion.
const Unserializable = "<unserializable>"

// jsonSafe coerces a decoded tag value into a JSON-safe representation. The
// rules form a closed, ordered set over the variant shapes the EXIF decoders
// produce (scalar, bytes, rational, sequence, mapping, opaque); anything that
// matches no rule degrades to a best-effort string or the sentinel. It never
// panics, whatever the input.
func jsonSafe(v any) (out any) {
	defer func() {
		if recover() != nil {
			out = Unserializable
		}
	}()

	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return strings.TrimRight(t, "\x00")
	case bool:
		return t
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return finite(float64(t))
	case float64:
		return finite(t)
	case []byte:
		return bytesValue(t)
	case exifcommon.Rational:
		return ratioValue(float64(t.Numerator), float64(t.Denominator))
	case exifcommon.SignedRational:
		return ratioValue(float64(t.Numerator), float64(t.Denominator))
	case []exifcommon.Rational:
		return seq(len(t), func(i int) any { return jsonSafe(t[i]) })
	case []exifcommon.SignedRational:
		return seq(len(t), func(i int) any { return jsonSafe(t[i]) })
	case []uint16:
		return seq(len(t), func(i int) any { return int64(t[i]) })
	case []uint32:
		return seq(len(t), func(i int) any { return int64(t[i]) })
	case []int64:
		return seq(len(t), func(i int) any { return t[i] })
	case []float64:
		return seq(len(t), func(i int) any { return finite(t[i]) })
	case []string:
		return seq(len(t), func(i int) any { return jsonSafe(t[i]) })
	case []any:
		return seq(len(t), func(i int) any { return jsonSafe(t[i]) })
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = jsonSafe(val)
		}
		return m
	default:
		s := fmt.Sprint(v)
		if s == "" {
			return Unserializable
		}
		return s
	}
}

func seq(n int, at func(int) any) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}

func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Unserializable
	}
	return f
}

// bytesValue renders a byte string as UTF-8 text when it is valid, and as a
// "<N bytes>" placeholder otherwise.
func bytesValue(b []byte) any {
	trimmed := strings.TrimRight(string(b), "\x00")
	if utf8.ValidString(trimmed) {
		return trimmed
	}
	return fmt.Sprintf("<%d bytes>", len(b))
}

// ratioValue reduces a rational to a float; an undefined or non-finite ratio
// keeps the textual num/den form instead of raising.
func ratioValue(num, den float64) any {
	if den == 0 {
		return fmt.Sprintf("%.0f/0", num)
	}
	return finite(num / den)
}
