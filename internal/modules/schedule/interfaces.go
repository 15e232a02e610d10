package schedule

import (
	"context"

	"barbershop/internal/domain"
)

// BookingReader exposes the bookings the slot engine must treat as taken.
type BookingReader interface {
	ListByDate(ctx context.Context, date string) ([]domain.Booking, error)
}

type BlockedDateRepository interface {
	List(ctx context.Context) ([]domain.BlockedDate, error)
	Create(ctx context.Context, b *domain.BlockedDate) error
	Delete(ctx context.Context, id int64) error
}

type SettingsReader interface {
	Load(ctx context.Context) (domain.Settings, error)
}

type OverrideRepository interface {
	BlockedTimes(ctx context.Context, date string) ([]string, error)
	Replace(ctx context.Context, date string, times []string) error
}
