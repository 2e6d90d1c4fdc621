package align

import "fmt"

// LengthMismatchError reports rankings of unequal length passed to KendallTau.
type LengthMismatchError struct {
	Len1 int
	Len2 int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("rank sequences must have same length: %d vs %d", e.Len1, e.Len2)
}
