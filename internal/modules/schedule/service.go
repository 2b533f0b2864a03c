package schedule

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Service struct {
	catalog      ScheduleCatalog
	availability AvailabilityRepository
}

func NewService(catalog ScheduleCatalog, availability AvailabilityRepository) *Service {
	return &Service{
		catalog:      catalog,
		availability: availability,
	}
}

// ListCatalog returns every canonical interval photographers can declare.
func (s *Service) ListCatalog(ctx context.Context) ([]SlotRange, error) {
	rows, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]SlotRange, 0, len(rows))
	for _, iv := range rows {
		out = append(out, SlotRange{Start: iv.StartTime, End: iv.EndTime})
	}
	return out, nil
}

// SetDay replaces the photographer's availability for one weekday. Every
// requested slot must match a catalog interval exactly; an unknown pair
// fails the whole call before anything is written, and the replace itself
// is transactional, so the day is never left half-updated.
func (s *Service) SetDay(ctx context.Context, photographerID int64, req SetDayRequest) error {
	if req.Day < 1 || req.Day > 7 {
		return fmt.Errorf("%w: day %d", ErrInvalidWeekday, req.Day)
	}

	intervalIDs := make([]int64, 0, len(req.Slots))
	for _, slot := range req.Slots {
		iv, err := s.catalog.FindByRange(ctx, slot.Start, slot.End)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s-%s", ErrUnknownInterval, slot.Start, slot.End)
			}
			return err
		}
		intervalIDs = append(intervalIDs, iv.ID)
	}

	return s.availability.ReplaceDay(ctx, photographerID, req.Day, intervalIDs)
}

// GetWeek returns all 7 weekdays, each with its declared slots. Days
// without entries come back with an empty slice, not a missing key.
func (s *Service) GetWeek(ctx context.Context, photographerID int64) ([]DayAvailability, error) {
	entries, err := s.availability.GetWeek(ctx, photographerID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int][]SlotRange)
	for _, e := range entries {
		if e.Interval == nil {
			continue
		}
		grouped[e.Weekday] = append(grouped[e.Weekday], SlotRange{
			Start: e.Interval.StartTime,
			End:   e.Interval.EndTime,
		})
	}

	out := make([]DayAvailability, 0, 7)
	for day := 1; day <= 7; day++ {
		slots := grouped[day]
		if slots == nil {
			slots = []SlotRange{}
		}
		out = append(out, DayAvailability{Day: day, Slots: slots})
	}
	return out, nil
}
