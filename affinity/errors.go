package affinity

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrInvalidArgument is matched by every argument shape error.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports a malformed argument. No OS call has been made
// when one is returned.
type ArgumentError struct {
	Index  int
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %d: %s", e.Index, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// OperationError reports that the windowing system refused the change.
// Err holds the platform status when one was available.
type OperationError struct {
	Handle   Handle
	Affinity uint32
	Err      error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("set display affinity %s on %s failed", Name(e.Affinity), e.Handle)
	}
	return fmt.Sprintf("set display affinity %s on %s: %v", Name(e.Affinity), e.Handle, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Code returns the platform error number, if the failure carried one.
func (e *OperationError) Code() (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return errno, true
	}
	return 0, false
}
