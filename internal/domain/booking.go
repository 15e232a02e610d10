package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to another.
// pending -> confirmed -> completed; anything not yet final may be cancelled.
func CanTransition(from, to BookingStatus) bool {
	switch to {
	case BookingConfirmed:
		return from == BookingPending
	case BookingCompleted:
		return from == BookingConfirmed
	case BookingCancelled:
		return from == BookingPending || from == BookingConfirmed
	}
	return false
}

type Booking struct {
	ID        int64         `json:"-" gorm:"primaryKey"`
	Ref       string        `json:"id" gorm:"column:ref;uniqueIndex;size:64"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Service   string        `json:"service"`
	Price     float64       `json:"price"`
	Duration  int           `json:"duration"` // minutes
	Date      string        `json:"date" gorm:"index;size:10;uniqueIndex:idx_booking_slot,where:status <> 'cancelled'"` // YYYY-MM-DD
	Time      string        `json:"time" gorm:"size:5;uniqueIndex:idx_booking_slot"`                                    // HH:MM
	Status    BookingStatus `json:"status" gorm:"index;size:16"`
	Notes     string        `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy string        `json:"created_by,omitempty" gorm:"size:32"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// StartMinutes returns the booking start as minutes since midnight,
// or -1 when the time field is malformed.
func (b Booking) StartMinutes() int {
	if len(b.Time) < 5 {
		return -1
	}
	h := int(b.Time[0]-'0')*10 + int(b.Time[1]-'0')
	m := int(b.Time[3]-'0')*10 + int(b.Time[4]-'0')
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// EndMinutes returns the exclusive booking end as minutes since midnight.
func (b Booking) EndMinutes() int {
	start := b.StartMinutes()
	if start < 0 {
		return -1
	}
	d := b.Duration
	if d <= 0 {
		d = 30
	}
	return start + d
}

// Overlaps reports whether two bookings on the same date occupy
// intersecting [start, end) windows.
func (b Booking) Overlaps(other Booking) bool {
	if b.Date != other.Date {
		return false
	}
	s1, e1 := b.StartMinutes(), b.EndMinutes()
	s2, e2 := other.StartMinutes(), other.EndMinutes()
	if s1 < 0 || s2 < 0 {
		return false
	}
	return s1 < e2 && s2 < e1
}
