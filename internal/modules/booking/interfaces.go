package booking

import (
	"context"
	"time"

	"photomarket/internal/domain"
	"photomarket/internal/repository"
)

// BookingRepository is the ledger: the only place bookings are written,
// and the single authority for conflict checks.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStateFrom(ctx context.Context, id int64, from, to domain.BookingState) (bool, error)
	ListForPhotographerBetween(ctx context.Context, photographerID int64, from, to time.Time, states []domain.BookingState) ([]domain.Booking, error)
	HistoryByClient(ctx context.Context, clientID int64) ([]repository.BookingHistoryRow, error)
	PendingByPhotographer(ctx context.Context, photographerID int64) ([]repository.PendingBookingRow, error)
	PendingByClient(ctx context.Context, clientID int64) ([]repository.PendingBookingRow, error)
	AgendaForPhotographer(ctx context.Context, photographerID int64, from, to time.Time) ([]repository.AgendaRow, error)
	CompletedWithoutImages(ctx context.Context, photographerID int64) ([]repository.UnphotographedRow, error)
	SetImagesURLOnce(ctx context.Context, id int64, url string) (bool, error)
}

// AvailabilityReader resolves a photographer's declared intervals for
// one weekday.
type AvailabilityReader interface {
	GetDay(ctx context.Context, photographerID int64, weekday int) ([]domain.ScheduleInterval, error)
}

// UserReader checks booking actors exist.
type UserReader interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// ServiceReader resolves a bookable service and its photographer.
type ServiceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// NotificationSender delivers best-effort booking notifications.
// Lifecycle operations never fail because delivery did.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, photographerID, bookingID int64, start time.Time) error
	NotifyBookingConfirmed(ctx context.Context, clientID, bookingID int64) error
	NotifyBookingCancelled(ctx context.Context, userID, bookingID int64) error
	NotifyBookingCompleted(ctx context.Context, clientID, bookingID int64) error
}

// MediaStore lists delivered session images as signed URLs.
type MediaStore interface {
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	SignedURL(ctx context.Context, key string) (string, error)
}
