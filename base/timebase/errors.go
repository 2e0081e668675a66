package timebase

import (
	"errors"
)

var (
	// ErrValueOutOfRange is returned when a UTC offset override falls
	// outside [-720, 720] minutes; the override state is left unchanged.
	ErrValueOutOfRange = errors.New("failed to set value: value out of range")

	// ErrWriteAccessDenied is returned by override writes when the clock
	// is coupled to the OS and its zone data cannot be overridden.
	ErrWriteAccessDenied = errors.New("failed to set value: write access denied")
)
