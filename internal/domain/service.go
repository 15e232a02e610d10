package domain

// Service is a bookable catalog entry (haircut, beard trim, ...).
type Service struct {
	ID       int64   `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"uniqueIndex;size:100"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"` // minutes
}

func (Service) TableName() string { return "services" }

// DefaultServices is the catalog seeded on first run and used by
// clients as an offline fallback.
func DefaultServices() []Service {
	return []Service{
		{Name: "Corte de Cabelo", Price: 11, Duration: 30},
		{Name: "Barba", Price: 5, Duration: 20},
		{Name: "Corte + Barba", Price: 15, Duration: 50},
	}
}
