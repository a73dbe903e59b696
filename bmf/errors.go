package bmf

import (
	"fmt"
)

// FormatError reports a malformed font file or an invalid builder input.
// Value holds the offending value.
type FormatError struct {
	Field string
	Value any
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bmf: invalid %s: %v", e.Field, e.Value)
}
