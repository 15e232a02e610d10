package schedule

// Slot is one grid entry of a day, with the reason it cannot be booked
// when it is not available.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"` // booked | break | blocked | past
}

const (
	ReasonBooked  = "booked"
	ReasonBreak   = "break"
	ReasonBlocked = "blocked"
	ReasonPast    = "past"
)

const (
	DayOpen   = "open"
	DayClosed = "closed"
)

type DayScheduleResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Slots  []Slot `json:"slots"`
}

type AvailabilityResponse struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type CreateBlockedDateRequest struct {
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=blocked open_exception break_override"`
	StartDate   string `json:"startDate" binding:"required,day"`
	EndDate     string `json:"endDate" binding:"omitempty,day"`
	OpenStart   string `json:"openStart"`
	OpenEnd     string `json:"openEnd"`
	BreakStart  string `json:"breakStart"`
	BreakEnd    string `json:"breakEnd"`
}

type PutOverridesRequest struct {
	Date  string   `json:"date" binding:"required,day"`
	Times []string `json:"times" binding:"dive,clock"`
}
