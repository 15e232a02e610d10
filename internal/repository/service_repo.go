package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"barbershop/internal/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ServiceRepository) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Seed inserts the catalog entries that are not present yet.
func (r *ServiceRepository) Seed(ctx context.Context, services []domain.Service) error {
	if len(services) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&services).Error
}
