package domain

import "time"

// SlotOverride marks a single slot manually blocked by staff for one day.
// Overrides live in the shared store so every device sees the same schedule.
type SlotOverride struct {
	ID        int64     `json:"-" gorm:"primaryKey"`
	Date      string    `json:"date" gorm:"uniqueIndex:idx_override_date_time;size:10"`
	Time      string    `json:"time" gorm:"uniqueIndex:idx_override_date_time;size:5"`
	CreatedAt time.Time `json:"-"`
}

func (SlotOverride) TableName() string { return "slot_overrides" }
