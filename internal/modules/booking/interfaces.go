package booking

import (
	"context"

	"barbershop/internal/domain"
	"barbershop/internal/notification"
	"barbershop/internal/repository"
)

type BookingRepository interface {
	CreateIfFree(ctx context.Context, b *domain.Booking) error
	GetByRef(ctx context.Context, ref string) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, ref string, status domain.BookingStatus) error
	Delete(ctx context.Context, ref string) error
	GetStats(ctx context.Context, today, weekStart, weekEnd string) (repository.Stats, error)
}

type ServiceCatalog interface {
	GetByName(ctx context.Context, name string) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
}

// AvailabilityChecker is the schedule engine's yes/no answer for a slot.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, date, clock string, duration int) (bool, error)
}

type SettingsReader interface {
	Load(ctx context.Context) (domain.Settings, error)
}

// NotificationSender pushes agenda changes to connected admin panels.
type NotificationSender interface {
	Broadcast(ev notification.Event)
}
