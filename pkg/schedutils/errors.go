package schedutils

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for caller-supplied values outside their
	// valid domain. It is always detected before any kernel call is made.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfMemory is returned when a CPU set of the requested width cannot
	// be allocated.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrNotSupported is returned on platforms without the Linux scheduler
	// syscalls.
	ErrNotSupported = errors.New("scheduler syscalls are only supported on Linux")
)

// OSError reports a call rejected by the kernel. Err carries the errno, so
// errors.Is(err, unix.ESRCH) and friends work as expected.
type OSError struct {
	Op  string
	Err error
}

func (e *OSError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OSError) Unwrap() error {
	return e.Err
}

func newOSError(op string, err error) error {
	return &OSError{Op: op, Err: err}
}
