package domain

import "time"

type BookingState string

const (
	BookingPending   BookingState = "pending"
	BookingActive    BookingState = "active"
	BookingDone      BookingState = "done"
	BookingCancelled BookingState = "cancelled"
)

// allowedTransitions is the complete state graph. Anything not listed
// here is rejected, including every transition out of a terminal state.
var allowedTransitions = map[BookingState][]BookingState{
	BookingPending: {BookingActive, BookingCancelled},
	BookingActive:  {BookingDone, BookingCancelled},
}

// CanTransition reports whether from -> to is a legal state change.
func CanTransition(from, to BookingState) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the state.
func (s BookingState) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// NonTerminalStates are the states that occupy a photographer's time and
// participate in conflict checks.
var NonTerminalStates = []BookingState{BookingPending, BookingActive}

type Booking struct {
	ID             int64        `json:"id"`
	ClientID       int64        `json:"client_id" validate:"required"`
	ServiceID      int64        `json:"service_id" validate:"required"`
	PhotographerID int64        `json:"photographer_id"` // denormalized from the service for conflict checks
	ScheduledStart time.Time    `json:"scheduled_start" validate:"required"`
	DurationMin    int          `json:"duration_minutes" validate:"gt=0"`
	State          BookingState `json:"state"`
	Price          float64      `json:"price"` // snapshot of the service price at creation
	ImagesURL      *string      `json:"images_url,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	Client  *User    `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Service *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// OccupiedEnd is the exclusive end of the half-open interval the booking
// reserves: [ScheduledStart, ScheduledStart+DurationMin).
func (b *Booking) OccupiedEnd() time.Time {
	return b.ScheduledStart.Add(time.Duration(b.DurationMin) * time.Minute)
}

// Overlaps reports whether the booking's occupied interval intersects
// [start, end). Touching endpoints do not count.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.OccupiedEnd()) && end.After(b.ScheduledStart)
}
