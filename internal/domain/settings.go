package domain

import "time"

// WorkingHours drives slot generation: the daily open window, the
// optional lunch break and the weekdays the shop works (0=Sunday .. 6=Saturday).
type WorkingHours struct {
	Open        string `json:"open"`
	Close       string `json:"close"`
	EnableBreak bool   `json:"enableBreak"`
	BreakStart  string `json:"breakStart"`
	BreakEnd    string `json:"breakEnd"`
	WorkingDays []int  `json:"workingDays"`
}

// IsWorkingDay reports whether the weekday (time.Weekday numbering)
// belongs to the configured working days.
func (w WorkingHours) IsWorkingDay(weekday time.Weekday) bool {
	for _, d := range w.WorkingDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

type WhatsApp struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

// Settings is the single shop configuration row.
type Settings struct {
	ID           int64        `json:"-" gorm:"primaryKey"`
	WorkingHours WorkingHours `json:"workingHours" gorm:"serializer:json"`
	WhatsApp     WhatsApp     `json:"whatsapp" gorm:"serializer:json"`
	UpdatedAt    time.Time    `json:"-"`
}

func (Settings) TableName() string { return "settings" }

// DefaultSettings mirrors the shop's historical defaults: open Tue-Sat
// 09:00-19:00 with a 12:00-14:00 lunch break.
func DefaultSettings() Settings {
	return Settings{
		ID: 1,
		WorkingHours: WorkingHours{
			Open:        "09:00",
			Close:       "19:00",
			EnableBreak: true,
			BreakStart:  "12:00",
			BreakEnd:    "14:00",
			WorkingDays: []int{2, 3, 4, 5, 6},
		},
		WhatsApp: WhatsApp{
			Number:  "+351918749689",
			Message: "Olá {name}, aqui é da Barbearia João Angeiras.",
		},
	}
}
