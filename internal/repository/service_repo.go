package repository

import (
	"context"

	"photomarket/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	tx := r.db.WithContext(ctx).Preload("Photographer").First(&s, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *ServiceRepository) ListByPhotographer(ctx context.Context, photographerID int64) ([]domain.Service, error) {
	var out []domain.Service
	tx := r.db.WithContext(ctx).
		Where("photographer_id = ?", photographerID).
		Order("created_at DESC").
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}
