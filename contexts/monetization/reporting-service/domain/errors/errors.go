package errors

import "errors"

var (
	ErrDeveloperNotFound = errors.New("developer not found for user")
	ErrInvalidMonth      = errors.New("month must be formatted as YYYY-MM")
)
