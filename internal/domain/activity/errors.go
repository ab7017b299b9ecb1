package activity

import "errors"

// ErrInvalidInput indicates an activity entry could not be logged as given.
var ErrInvalidInput = errors.New("invalid activity input")
