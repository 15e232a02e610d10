package repository

import (
	"context"

	"gorm.io/gorm"

	"barbershop/internal/domain"
)

type SlotOverrideRepository struct {
	db *gorm.DB
}

func NewSlotOverrideRepository(db *gorm.DB) *SlotOverrideRepository {
	return &SlotOverrideRepository{db: db}
}

// BlockedTimes returns the manually blocked slot times for a day.
func (r *SlotOverrideRepository) BlockedTimes(ctx context.Context, date string) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).
		Model(&domain.SlotOverride{}).
		Where("date = ?", date).
		Order("time ASC").
		Pluck("time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// Replace sets the full blocked list for a day in one transaction; an
// empty list resets the day to the default schedule.
func (r *SlotOverrideRepository) Replace(ctx context.Context, date string, times []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date = ?", date).Delete(&domain.SlotOverride{}).Error; err != nil {
			return err
		}
		for _, t := range times {
			if err := tx.Create(&domain.SlotOverride{Date: date, Time: t}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
