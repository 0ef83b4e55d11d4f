package errors

import "errors"

var (
	ErrInvalidSettings = errors.New("revenue settings out of bounds")
)
