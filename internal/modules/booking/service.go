package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photomarket/internal/domain"
	"photomarket/internal/pkg/validator"
	"photomarket/internal/repository"

	"gorm.io/gorm"
)

const (
	dateLayout        = "2006-01-02"
	defaultAgendaDays = 5
)

type Service struct {
	bookings     BookingRepository
	availability AvailabilityReader
	users        UserReader
	services     ServiceReader
	notifs       NotificationSender
	media        MediaStore
}

func NewService(
	bookings BookingRepository,
	availability AvailabilityReader,
	users UserReader,
	services ServiceReader,
	notifs NotificationSender,
	media MediaStore,
) *Service {
	return &Service{
		bookings:     bookings,
		availability: availability,
		users:        users,
		services:     services,
		notifs:       notifs,
		media:        media,
	}
}

// CheckAvailability returns the free start times ("HH:MM") for the
// photographer on the requested date and service duration. An empty
// result is a normal outcome, not an error.
func (s *Service) CheckAvailability(ctx context.Context, req CheckAvailabilityRequest) ([]string, error) {
	if req.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	weekday := domain.ISOWeekday(date.Weekday())
	intervals, err := s.availability.GetDay(ctx, req.PhotographerID, weekday)
	if err != nil {
		return nil, err
	}

	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)
	booked, err := s.bookings.ListForPhotographerBetween(
		ctx, req.PhotographerID, dayStart, dayEnd, domain.NonTerminalStates,
	)
	if err != nil {
		return nil, err
	}

	return FreeSlots(intervals, booked, date, req.Duration, time.Now()), nil
}

// Create validates the client, the service and the slot, then inserts a
// pending booking snapshotting the service price. The ledger re-checks
// the overlap inside its own transaction; the photographer is notified
// fire-and-forget.
func (s *Service) Create(ctx context.Context, clientID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}

	ok, err := s.users.Exists(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrClientNotFound
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if !req.Start.After(time.Now()) {
		return nil, ErrPastDate
	}

	b := &domain.Booking{
		ClientID:       clientID,
		ServiceID:      svc.ID,
		PhotographerID: svc.PhotographerID,
		ScheduledStart: req.Start,
		DurationMin:    req.DurationMinutes,
		State:          domain.BookingPending,
		Price:          svc.Price,
	}
	if fields := validator.Validate(b); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrBookingOverlap) {
			return nil, ErrTimeConflict
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, svc.PhotographerID, b.ID, b.ScheduledStart)
	}

	return b, nil
}

// Transition moves the booking to target on behalf of actor. The actor
// must own the booking from the right side (photographer confirms,
// completes and cancels; the client may cancel while still pending), and
// the change must be legal per the state graph. The state is applied
// with a compare-and-set so concurrent transitions cannot both win.
func (s *Service) Transition(ctx context.Context, bookingID int64, actor domain.Actor, target domain.BookingState) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	switch target {
	case domain.BookingActive, domain.BookingDone:
		if actor.UserID != b.PhotographerID {
			return nil, ErrForbidden
		}
	case domain.BookingCancelled:
		switch actor.UserID {
		case b.PhotographerID:
			// may cancel anything the state graph allows
		case b.ClientID:
			if b.State != domain.BookingPending {
				return nil, fmt.Errorf("%w: client may only cancel a pending booking", ErrInvalidTransition)
			}
		default:
			return nil, ErrForbidden
		}
	default:
		return nil, fmt.Errorf("%w: unknown target state %q", ErrValidation, target)
	}

	if !domain.CanTransition(b.State, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.State, target)
	}

	applied, err := s.bookings.UpdateStateFrom(ctx, b.ID, b.State, target)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Lost the race against a concurrent transition.
		return nil, fmt.Errorf("%w: booking state changed concurrently", ErrInvalidTransition)
	}

	updated, err := s.bookings.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		switch target {
		case domain.BookingActive:
			_ = s.notifs.NotifyBookingConfirmed(ctx, updated.ClientID, updated.ID)
		case domain.BookingDone:
			_ = s.notifs.NotifyBookingCompleted(ctx, updated.ClientID, updated.ID)
		case domain.BookingCancelled:
			recipient := updated.ClientID
			if actor.UserID == updated.ClientID {
				recipient = updated.PhotographerID
			}
			_ = s.notifs.NotifyBookingCancelled(ctx, recipient, updated.ID)
		}
	}

	return updated, nil
}

// ClientHistory lists the client's bookings reverse-chronologically.
func (s *Service) ClientHistory(ctx context.Context, clientID int64) ([]repository.BookingHistoryRow, error) {
	return s.bookings.HistoryByClient(ctx, clientID)
}

func (s *Service) PendingByPhotographer(ctx context.Context, photographerID int64) ([]repository.PendingBookingRow, error) {
	return s.bookings.PendingByPhotographer(ctx, photographerID)
}

func (s *Service) PendingByClient(ctx context.Context, clientID int64) ([]repository.PendingBookingRow, error) {
	return s.bookings.PendingByClient(ctx, clientID)
}

// Agenda groups the photographer's active sessions per day for the next
// `days` days starting today. Days without sessions are included.
func (s *Service) Agenda(ctx context.Context, photographerID int64, days int) ([]AgendaDay, error) {
	if days <= 0 {
		days = defaultAgendaDays
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, days)

	rows, err := s.bookings.AgendaForPhotographer(ctx, photographerID, from, to)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]AgendaSession)
	for _, r := range rows {
		key := r.ScheduledStart.Format(dateLayout)
		byDate[key] = append(byDate[key], AgendaSession{
			BookingID:   r.BookingID,
			ClientName:  r.ClientName,
			ServiceName: r.ServiceName,
			Start:       r.ScheduledStart.Format(time.RFC3339),
		})
	}

	out := make([]AgendaDay, 0, days)
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		key := day.Format(dateLayout)
		sessions := byDate[key]
		if sessions == nil {
			sessions = []AgendaSession{}
		}
		out = append(out, AgendaDay{Date: key, Sessions: sessions})
	}
	return out, nil
}

// CompletedWithoutImages lists done sessions still waiting for their
// delivered media.
func (s *Service) CompletedWithoutImages(ctx context.Context, photographerID int64) ([]repository.UnphotographedRow, error) {
	return s.bookings.CompletedWithoutImages(ctx, photographerID)
}

// SessionImages returns signed URLs for the booking's delivered images.
// Only the booking's client or photographer may look.
func (s *Service) SessionImages(ctx context.Context, bookingID int64, actor domain.Actor) ([]string, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if actor.UserID != b.ClientID && actor.UserID != b.PhotographerID {
		return nil, ErrForbidden
	}

	prefix := sessionPrefix(b.PhotographerID, b.ID)
	keys, err := s.media.ListKeys(ctx, prefix)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		u, err := s.media.SignedURL(ctx, key)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// AttachImages records the delivered gallery reference exactly once, on
// a done booking, by its photographer.
func (s *Service) AttachImages(ctx context.Context, bookingID int64, actor domain.Actor, url string) (*domain.Booking, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", ErrValidation)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if actor.UserID != b.PhotographerID {
		return nil, ErrForbidden
	}
	if b.State != domain.BookingDone {
		return nil, fmt.Errorf("%w: images attach to done bookings only", ErrInvalidTransition)
	}

	set, err := s.bookings.SetImagesURLOnce(ctx, b.ID, url)
	if err != nil {
		return nil, err
	}
	if !set {
		return nil, ErrImagesAttached
	}

	return s.bookings.GetByID(ctx, b.ID)
}

func sessionPrefix(photographerID, bookingID int64) string {
	return fmt.Sprintf("photographers/%d/sessions/%d/", photographerID, bookingID)
}
