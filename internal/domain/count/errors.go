package count

import "errors"

var (
	// ErrInvalidInput indicates invalid count input.
	ErrInvalidInput = errors.New("invalid count input")
	// ErrInvalidWindow indicates a report window other than 7 or 30 days.
	ErrInvalidWindow = errors.New("report window must be 7 or 30 days")
)
