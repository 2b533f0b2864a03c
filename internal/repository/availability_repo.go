package repository

import (
	"context"

	"photomarket/internal/domain"

	"gorm.io/gorm"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ReplaceDay swaps the whole entry set for (photographer, weekday) in one
// transaction. Readers never observe the day half-replaced.
func (r *AvailabilityRepository) ReplaceDay(ctx context.Context, photographerID int64, weekday int, intervalIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("photographer_id = ? AND weekday = ?", photographerID, weekday).
			Delete(&domain.AvailabilityEntry{}).Error
		if err != nil {
			return err
		}

		if len(intervalIDs) == 0 {
			return nil
		}

		entries := make([]domain.AvailabilityEntry, 0, len(intervalIDs))
		for _, id := range intervalIDs {
			entries = append(entries, domain.AvailabilityEntry{
				PhotographerID: photographerID,
				Weekday:        weekday,
				IntervalID:     id,
			})
		}
		return tx.Create(&entries).Error
	})
}

// GetWeek returns every entry for the photographer with its catalog
// interval preloaded, ordered for stable output.
func (r *AvailabilityRepository) GetWeek(ctx context.Context, photographerID int64) ([]domain.AvailabilityEntry, error) {
	var out []domain.AvailabilityEntry
	tx := r.db.WithContext(ctx).
		Preload("Interval").
		Where("photographer_id = ?", photographerID).
		Order("weekday").
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

// GetDay returns the catalog intervals declared for one weekday, ordered
// by start time.
func (r *AvailabilityRepository) GetDay(ctx context.Context, photographerID int64, weekday int) ([]domain.ScheduleInterval, error) {
	var out []domain.ScheduleInterval
	tx := r.db.WithContext(ctx).
		Model(&domain.ScheduleInterval{}).
		Joins("JOIN photographer_availability pa ON pa.interval_id = schedule_intervals.id").
		Where("pa.photographer_id = ? AND pa.weekday = ?", photographerID, weekday).
		Order("schedule_intervals.start_time").
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}
