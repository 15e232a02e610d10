package schedule

import "errors"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidTime  = errors.New("invalid time")
	ErrInvalidEntry = errors.New("invalid calendar entry")
	ErrNotFound     = errors.New("calendar entry not found")
	ErrSlotBooked   = errors.New("slot has a booking")
)
