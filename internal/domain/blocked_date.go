package domain

import "time"

type BlockedDateType string

const (
	// BlockTypeBlocked closes the shop for one day or an inclusive range.
	BlockTypeBlocked BlockedDateType = "blocked"
	// BlockTypeOpenException opens a normally-closed day, with its own hours.
	BlockTypeOpenException BlockedDateType = "open_exception"
	// BlockTypeBreakOverride changes or removes the lunch break for one day.
	BlockTypeBreakOverride BlockedDateType = "break_override"
)

// BreakRemoved is the sentinel stored in BreakStart/BreakEnd when a
// break override removes the lunch break entirely.
const BreakRemoved = "none"

type BlockedDate struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Description string          `json:"description"`
	Type        BlockedDateType `json:"type" gorm:"index;size:20"`
	StartDate   string          `json:"startDate" gorm:"index;size:10"`
	EndDate     string          `json:"endDate,omitempty" gorm:"size:10"`
	OpenStart   string          `json:"openStart,omitempty" gorm:"size:5"`
	OpenEnd     string          `json:"openEnd,omitempty" gorm:"size:5"`
	BreakStart  string          `json:"breakStart,omitempty" gorm:"size:5"`
	BreakEnd    string          `json:"breakEnd,omitempty" gorm:"size:5"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (BlockedDate) TableName() string { return "blocked_dates" }

// Covers reports whether the entry applies to the given YYYY-MM-DD day.
// Ranges are inclusive on both ends; ISO day strings compare lexically.
func (b BlockedDate) Covers(date string) bool {
	if b.StartDate == date {
		return true
	}
	if b.EndDate != "" && b.StartDate <= date && date <= b.EndDate {
		return true
	}
	return false
}
