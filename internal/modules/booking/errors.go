package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrUnknownService    = errors.New("unknown service")
	ErrSlotUnavailable   = errors.New("slot not available")
	ErrSlotConflict      = errors.New("slot already booked")
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
)
