package errors

import "errors"

var (
	ErrInvalidKeyName    = errors.New("api key name must not be empty")
	ErrAPIKeyNotFound    = errors.New("api key not found")
	ErrDeveloperNotFound = errors.New("developer not found for user")
	ErrInvalidSample     = errors.New("time sample is invalid")
)
