package tail

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the target does not exist or is not a regular
// file. Callers match it with errors.Is.
var ErrNotFound = errors.New("log file not found")

// ErrInvalidQuery reports a query that violates the engine's preconditions,
// currently only N < 1.
var ErrInvalidQuery = errors.New("invalid tail query")

// SizeLimitError reports a file whose size at open time exceeds the
// configured maximum. No bytes are read when this is returned.
type SizeLimitError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("file too large: %s is %d bytes (max: %d bytes)", e.Path, e.Size, e.Limit)
}
