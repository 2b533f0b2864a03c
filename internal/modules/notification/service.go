package notification

import (
	"context"
	"fmt"
	"time"

	"photomarket/internal/domain"
	"photomarket/internal/repository"
)

// Service persists notifications and pushes them to connected users.
// Every Notify* helper is best-effort from the caller's point of view:
// booking lifecycle operations ignore the returned error.
type Service struct {
	repo *repository.NotificationRepository
	hub  *Hub
}

func NewService(repo *repository.NotificationRepository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

func (s *Service) Create(ctx context.Context, userID int64, t domain.NotificationType, title, message string, data map[string]any) error {
	n := &domain.Notification{
		UserID:  userID,
		Type:    t,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		_ = s.hub.SendToUser(userID, n)
	}
	return nil
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *Service) NotifyBookingCreated(ctx context.Context, photographerID, bookingID int64, start time.Time) error {
	return s.Create(
		ctx,
		photographerID,
		domain.NotifBookingCreated,
		"New booking request",
		fmt.Sprintf("A client requested a session on %s", start.Format("02.01.2006 15:04")),
		map[string]any{"booking_id": bookingID},
	)
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, clientID, bookingID int64) error {
	return s.Create(
		ctx,
		clientID,
		domain.NotifBookingConfirmed,
		"Booking confirmed",
		"Your booking was confirmed by the photographer",
		map[string]any{"booking_id": bookingID},
	)
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64) error {
	return s.Create(
		ctx,
		userID,
		domain.NotifBookingCancelled,
		"Booking cancelled",
		"The booking was cancelled",
		map[string]any{"booking_id": bookingID},
	)
}

func (s *Service) NotifyBookingCompleted(ctx context.Context, clientID, bookingID int64) error {
	return s.Create(
		ctx,
		clientID,
		domain.NotifBookingCompleted,
		"Session completed",
		"Your session is done, the photos will arrive soon",
		map[string]any{"booking_id": bookingID},
	)
}
