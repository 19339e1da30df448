package domain

import "fmt"

// ErrorMarkerSuffix is appended to the original filename for failed batch items.
const ErrorMarkerSuffix = ".ERROR.txt"

// WarningMarkerSuffix names the companion marker for items that succeeded
// with lossy degradation.
const WarningMarkerSuffix = ".WARNING.txt"

// BatchItem is one (filename, raw bytes) pair submitted for cleaning.
type BatchItem struct {
	Filename string
	Data     []byte
}

// BatchOutcome is the resolved result for exactly one submitted item: either
// the cleaned bytes under the original filename, or a textual error marker
// under filename + ErrorMarkerSuffix. Warnings record degradations applied
// to a successful item. Err is retained for callers that need to classify
// failures programmatically.
type BatchOutcome struct {
	Name     string
	Data     []byte
	Warnings []string
	Err      error
}

// FailureOutcome builds the error-marker outcome for a failed item.
func FailureOutcome(filename string, err error) BatchOutcome {
	text := fmt.Sprintf("%s: %v", ErrorKind(err), err)
	return BatchOutcome{
		Name: filename + ErrorMarkerSuffix,
		Data: []byte(text),
		Err:  err,
	}
}
