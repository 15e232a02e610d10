package repository

import (
	"context"

	"gorm.io/gorm"

	"barbershop/internal/domain"
)

type BlockedDateRepository struct {
	db *gorm.DB
}

func NewBlockedDateRepository(db *gorm.DB) *BlockedDateRepository {
	return &BlockedDateRepository{db: db}
}

// List returns every calendar override, ordered by start date then id so
// that day classification is deterministic regardless of insert order.
func (r *BlockedDateRepository) List(ctx context.Context) ([]domain.BlockedDate, error) {
	var out []domain.BlockedDate
	err := r.db.WithContext(ctx).
		Order("start_date ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BlockedDateRepository) Create(ctx context.Context, b *domain.BlockedDate) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BlockedDateRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.BlockedDate{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
