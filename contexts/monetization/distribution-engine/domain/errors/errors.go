package errors

import "errors"

var (
	ErrInvalidMonth            = errors.New("month must use the YYYY-MM format")
	ErrInvalidSettings         = errors.New("revenue settings are out of bounds")
	ErrInvalidUsage            = errors.New("usage aggregate contains invalid durations")
	ErrDuplicateRun            = errors.New("distribution already ran for this month")
	ErrRunNotFound             = errors.New("distribution run not found")
	ErrPayoutNotFound          = errors.New("payout not found")
	ErrInvalidPayoutStatus     = errors.New("payout status is not recognized")
	ErrInvalidPayoutTransition = errors.New("payout status transition is not allowed")
)
