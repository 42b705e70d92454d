package utils

import (
	"errors"
	"syscall"
)

// ErrnoOf returns the errno buried in err's chain, or 0 when there is
// none.
func ErrnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}

	return 0
}
