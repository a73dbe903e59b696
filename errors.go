package easydisplay

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFont is returned by Text when no font has been loaded.
	ErrNoFont = errors.New("easydisplay: no font loaded")

	// ErrTarget is returned by New for a target that implements neither
	// BufferedTarget nor StreamingTarget.
	ErrTarget = errors.New("easydisplay: target is neither buffered nor streaming")
)

// FormatError reports an image file the decoders do not support. Nothing has
// been drawn when it is returned.
type FormatError struct {
	Format string // "PBM", "BMP" or "DAT"
	Field  string // What was wrong, e.g. "signature" or "depth"
	Value  any    // The offending value
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("easydisplay: unsupported %s %s: %v", e.Format, e.Field, e.Value)
}
