package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"barbershop/internal/domain"
)

// ErrSlotTaken is returned when a booking would overlap an existing
// non-cancelled booking on the same day.
var ErrSlotTaken = errors.New("slot already booked")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingFilters narrows List results; zero values mean "no filter".
type BookingFilters struct {
	Date   string
	Status domain.BookingStatus
}

// CreateIfFree inserts the booking unless it overlaps a non-cancelled
// booking on the same date. On postgres the transaction first takes a
// per-date advisory lock, so concurrent requests for the same day are
// serialized before the overlap check; the idx_booking_slot partial
// unique index backstops exact-start duplicates at the database level
// on every driver.
func (r *BookingRepository) CreateIfFree(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", b.Date).Error; err != nil {
				return err
			}
		}
		var existing []domain.Booking
		err := tx.Where("date = ? AND status <> ?", b.Date, domain.BookingCancelled).
			Find(&existing).Error
		if err != nil {
			return err
		}
		for _, other := range existing {
			if b.Overlaps(other) {
				return ErrSlotTaken
			}
		}
		if err := tx.Create(b).Error; err != nil {
			if isDuplicateSlot(err) {
				return ErrSlotTaken
			}
			return err
		}
		return nil
	})
}

// isDuplicateSlot recognizes a unique violation on idx_booking_slot from
// either driver: gorm translates it on postgres, modernc sqlite surfaces
// the raw constraint message.
func isDuplicateSlot(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func (r *BookingRepository) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Where("ref = ?", ref).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns bookings matching the filters, newest day first and
// chronological within a day.
func (r *BookingRepository) List(ctx context.Context, f BookingFilters) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []domain.Booking
	if err := q.Order("date DESC, time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListByDate returns the non-cancelled bookings for one day.
func (r *BookingRepository) ListByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("date = ? AND status <> ?", date, domain.BookingCancelled).
		Order("time ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, ref string, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("ref = ?", ref).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, ref string) error {
	tx := r.db.WithContext(ctx).Where("ref = ?", ref).Delete(&domain.Booking{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Stats aggregates the dashboard counters.
type Stats struct {
	Today   int64   `json:"today"`
	Week    int64   `json:"week"`
	Pending int64   `json:"pending"`
	Revenue float64 `json:"revenue"`
}

// GetStats counts non-cancelled bookings for today and for the Monday-start
// week, pending bookings overall, and sums the week's booked revenue.
func (r *BookingRepository) GetStats(ctx context.Context, today, weekStart, weekEnd string) (Stats, error) {
	var s Stats
	db := r.db.WithContext(ctx).Model(&domain.Booking{})

	err := db.Session(&gorm.Session{}).
		Where("date = ? AND status <> ?", today, domain.BookingCancelled).
		Count(&s.Today).Error
	if err != nil {
		return s, err
	}

	err = db.Session(&gorm.Session{}).
		Where("date >= ? AND date <= ? AND status <> ?", weekStart, weekEnd, domain.BookingCancelled).
		Count(&s.Week).Error
	if err != nil {
		return s, err
	}

	err = db.Session(&gorm.Session{}).
		Where("status = ?", domain.BookingPending).
		Count(&s.Pending).Error
	if err != nil {
		return s, err
	}

	var revenue *float64
	err = db.Session(&gorm.Session{}).
		Select("SUM(price)").
		Where("date >= ? AND date <= ? AND status <> ?", weekStart, weekEnd, domain.BookingCancelled).
		Scan(&revenue).Error
	if err != nil {
		return s, err
	}
	if revenue != nil {
		s.Revenue = *revenue
	}
	return s, nil
}
