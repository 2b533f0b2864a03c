package schedule

import (
	"context"

	"photomarket/internal/domain"
)

// ScheduleCatalog is the read-only interval catalog lookup.
type ScheduleCatalog interface {
	List(ctx context.Context) ([]domain.ScheduleInterval, error)
	FindByRange(ctx context.Context, start, end string) (*domain.ScheduleInterval, error)
}

// AvailabilityRepository persists per-weekday availability entries.
type AvailabilityRepository interface {
	ReplaceDay(ctx context.Context, photographerID int64, weekday int, intervalIDs []int64) error
	GetWeek(ctx context.Context, photographerID int64) ([]domain.AvailabilityEntry, error)
}
