package math3d

import "fmt"

// DegenerateTransformError reports a numerically degenerate operation, such
// as inverting a singular matrix or normalizing a zero-length vector.
type DegenerateTransformError struct {
	Op     string
	Reason string
}

func (e *DegenerateTransformError) Error() string {
	return fmt.Sprintf("math3d: degenerate %s: %s", e.Op, e.Reason)
}
