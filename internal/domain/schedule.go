package domain

import "time"

// ScheduleInterval is a catalog row describing a fixed time-of-day range
// photographers can declare availability against. Times are stored as
// "HH:MM" strings at minute granularity. Rows are seeded once and never
// mutated after being referenced.
type ScheduleInterval struct {
	ID        int64  `json:"id"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

func (ScheduleInterval) TableName() string { return "schedule_intervals" }

// AvailabilityEntry links a photographer and a weekday to a catalog
// interval. A photographer may hold any number of entries per weekday;
// the set for a (photographer, weekday) pair is always replaced whole.
type AvailabilityEntry struct {
	ID             int64 `json:"id"`
	PhotographerID int64 `json:"photographer_id"`
	Weekday        int   `json:"weekday"` // 1=Monday .. 7=Sunday
	IntervalID     int64 `json:"interval_id"`

	Interval *ScheduleInterval `json:"interval,omitempty" gorm:"foreignKey:IntervalID"`
}

func (AvailabilityEntry) TableName() string { return "photographer_availability" }

// ISOWeekday maps time.Weekday (Sunday=0) to the Monday-first 1..7
// numbering used by availability entries.
func ISOWeekday(w time.Weekday) int {
	if w == time.Sunday {
		return 7
	}
	return int(w)
}
