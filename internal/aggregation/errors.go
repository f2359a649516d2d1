package aggregation

import "errors"

var (
	// ErrInvalidMode indicates the requested mode is absent or not one of
	// MONTHLY / DATE_RANGE
	ErrInvalidMode = errors.New("invalid aggregation mode")

	// ErrMissingRangeBounds indicates DATE_RANGE mode was requested without
	// both a start and an end date
	ErrMissingRangeBounds = errors.New("date range mode requires start and end dates")

	// ErrStoreUnavailable indicates the measurement store could not be
	// queried. The underlying cause is attached; retry policy belongs to
	// the caller.
	ErrStoreUnavailable = errors.New("measurement store unavailable")
)
