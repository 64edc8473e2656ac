package path

import (
	"errors"
	"fmt"
)

// Common error values for the query dispatcher
var (
	ErrDispatcherClosed = errors.New("dispatcher is closed")
)

// QueryError is the error type returned by filesystem query operations. It
// carries the operation name, the queried path and the underlying OS-level
// cause, which is surfaced verbatim and reachable through errors.Is/As.
type QueryError struct {
	Op   string
	Path string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
