package repository

import (
	"context"

	"photomarket/internal/domain"

	"gorm.io/gorm"
)

// ScheduleRepository reads the canonical interval catalog. The catalog is
// seeded once (cmd/seed) and treated as read-only afterwards.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) List(ctx context.Context) ([]domain.ScheduleInterval, error) {
	var out []domain.ScheduleInterval
	tx := r.db.WithContext(ctx).Order("start_time, end_time").Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

// FindByRange looks up the catalog row matching the exact "HH:MM" pair.
// gorm.ErrRecordNotFound when no such interval exists.
func (r *ScheduleRepository) FindByRange(ctx context.Context, start, end string) (*domain.ScheduleInterval, error) {
	var iv domain.ScheduleInterval
	tx := r.db.WithContext(ctx).
		Where("start_time = ? AND end_time = ?", start, end).
		First(&iv)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &iv, nil
}

func (r *ScheduleRepository) Create(ctx context.Context, iv *domain.ScheduleInterval) error {
	return r.db.WithContext(ctx).Create(iv).Error
}

func (r *ScheduleRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.ScheduleInterval{}).Count(&cnt)
	return cnt, tx.Error
}
