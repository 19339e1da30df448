package domain

import "errors"

var (
	// ErrUnsupportedType marks filenames outside the recognized extension set,
	// rejected before any decode is attempted.
	ErrUnsupportedType = errors.New("unsupported or unknown image type")

	// ErrCodecUnavailable marks formats whose optional codec plugin is not loaded.
	ErrCodecUnavailable = errors.New("codec unavailable")

	// ErrDecodeFailed marks bytes that could not be parsed as a valid image.
	ErrDecodeFailed = errors.New("decode failed")

	// ErrReencodeFailed marks a decode that succeeded but whose cleaned
	// output could not be written.
	ErrReencodeFailed = errors.New("re-encode failed")
)

// ErrorKind names the failure class of an error for user-visible outcomes,
// in the form used by batch error markers ("<ErrorKind>: <message>").
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return "UnsupportedType"
	case errors.Is(err, ErrCodecUnavailable):
		return "CodecUnavailable"
	case errors.Is(err, ErrDecodeFailed):
		return "DecodeFailed"
	case errors.Is(err, ErrReencodeFailed):
		return "ReencodeFailed"
	default:
		return "ProcessingError"
	}
}
