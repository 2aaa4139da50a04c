package coordspace

import "fmt"

// OverflowError is returned by checked arithmetic when an axis exceeds the
// representable i128 range. Context identifies the axis and the operation
// that produced it: overflow is surfaced to the caller, never silently
// wrapped.
type OverflowError struct {
	Operation string
	Context   string
	Axis      string
}

func (e *OverflowError) Error() string {
	if e.Axis != "" {
		return fmt.Sprintf("coordspace: %s overflowed on axis %s (%s)", e.Operation, e.Axis, e.Context)
	}
	return fmt.Sprintf("coordspace: %s overflowed (%s)", e.Operation, e.Context)
}
