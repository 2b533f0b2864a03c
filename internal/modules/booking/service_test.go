package booking

import (
	"context"
	"testing"
	"time"

	"photomarket/internal/domain"
	"photomarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStateFrom(ctx context.Context, id int64, from, to domain.BookingState) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) ListForPhotographerBetween(ctx context.Context, photographerID int64, from, to time.Time, states []domain.BookingState) ([]domain.Booking, error) {
	args := m.Called(ctx, photographerID, from, to, states)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) HistoryByClient(ctx context.Context, clientID int64) ([]repository.BookingHistoryRow, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BookingHistoryRow), args.Error(1)
}

func (m *mockBookingRepo) PendingByPhotographer(ctx context.Context, photographerID int64) ([]repository.PendingBookingRow, error) {
	args := m.Called(ctx, photographerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PendingBookingRow), args.Error(1)
}

func (m *mockBookingRepo) PendingByClient(ctx context.Context, clientID int64) ([]repository.PendingBookingRow, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PendingBookingRow), args.Error(1)
}

func (m *mockBookingRepo) AgendaForPhotographer(ctx context.Context, photographerID int64, from, to time.Time) ([]repository.AgendaRow, error) {
	args := m.Called(ctx, photographerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AgendaRow), args.Error(1)
}

func (m *mockBookingRepo) CompletedWithoutImages(ctx context.Context, photographerID int64) ([]repository.UnphotographedRow, error) {
	args := m.Called(ctx, photographerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UnphotographedRow), args.Error(1)
}

func (m *mockBookingRepo) SetImagesURLOnce(ctx context.Context, id int64, url string) (bool, error) {
	args := m.Called(ctx, id, url)
	return args.Bool(0), args.Error(1)
}

type mockAvailabilityReader struct {
	mock.Mock
}

func (m *mockAvailabilityReader) GetDay(ctx context.Context, photographerID int64, weekday int) ([]domain.ScheduleInterval, error) {
	args := m.Called(ctx, photographerID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleInterval), args.Error(1)
}

type mockUserReader struct {
	mock.Mock
}

func (m *mockUserReader) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockServiceReader struct {
	mock.Mock
}

func (m *mockServiceReader) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type mockNotificationSender struct {
	mock.Mock
}

func (m *mockNotificationSender) NotifyBookingCreated(ctx context.Context, photographerID, bookingID int64, start time.Time) error {
	args := m.Called(ctx, photographerID, bookingID, start)
	return args.Error(0)
}

func (m *mockNotificationSender) NotifyBookingConfirmed(ctx context.Context, clientID, bookingID int64) error {
	args := m.Called(ctx, clientID, bookingID)
	return args.Error(0)
}

func (m *mockNotificationSender) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64) error {
	args := m.Called(ctx, userID, bookingID)
	return args.Error(0)
}

func (m *mockNotificationSender) NotifyBookingCompleted(ctx context.Context, clientID, bookingID int64) error {
	args := m.Called(ctx, clientID, bookingID)
	return args.Error(0)
}

type mockMediaStore struct {
	mock.Mock
}

func (m *mockMediaStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockMediaStore) SignedURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

type serviceMocks struct {
	bookings     *mockBookingRepo
	availability *mockAvailabilityReader
	users        *mockUserReader
	services     *mockServiceReader
	notifs       *mockNotificationSender
	media        *mockMediaStore
}

func newTestService() (*Service, *serviceMocks) {
	m := &serviceMocks{
		bookings:     new(mockBookingRepo),
		availability: new(mockAvailabilityReader),
		users:        new(mockUserReader),
		services:     new(mockServiceReader),
		notifs:       new(mockNotificationSender),
		media:        new(mockMediaStore),
	}
	svc := NewService(m.bookings, m.availability, m.users, m.services, m.notifs, m.media)
	return svc, m
}

func testPhotoService() *domain.Service {
	return &domain.Service{
		ID:             42,
		PhotographerID: 7,
		Name:           "Portrait session",
		Price:          15000,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	start := time.Now().Add(48 * time.Hour)

	m.users.On("Exists", ctx, int64(1)).Return(true, nil)
	m.services.On("GetByID", ctx, int64(42)).Return(testPhotoService(), nil)
	m.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Booking).ID = 100
		}).
		Return(nil)
	m.notifs.On("NotifyBookingCreated", ctx, int64(7), int64(100), start).Return(nil)

	b, err := svc.Create(ctx, 1, CreateBookingRequest{
		ServiceID:       42,
		Start:           start,
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.State)
	assert.Equal(t, int64(7), b.PhotographerID)
	assert.Equal(t, float64(15000), b.Price)
	m.bookings.AssertExpectations(t)
	m.notifs.AssertExpectations(t)
}

func TestCreateBooking_PastDate(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.users.On("Exists", ctx, int64(1)).Return(true, nil)
	m.services.On("GetByID", ctx, int64(42)).Return(testPhotoService(), nil)

	_, err := svc.Create(ctx, 1, CreateBookingRequest{
		ServiceID:       42,
		Start:           time.Now().Add(-time.Hour),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrPastDate)
	m.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_ServiceNotFound(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.users.On("Exists", ctx, int64(1)).Return(true, nil)
	m.services.On("GetByID", ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(ctx, 1, CreateBookingRequest{
		ServiceID:       99,
		Start:           time.Now().Add(48 * time.Hour),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateBooking_ClientNotFound(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.users.On("Exists", ctx, int64(5)).Return(false, nil)

	_, err := svc.Create(ctx, 5, CreateBookingRequest{
		ServiceID:       42,
		Start:           time.Now().Add(48 * time.Hour),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestCreateBooking_OverlapBecomesConflict(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.users.On("Exists", ctx, int64(1)).Return(true, nil)
	m.services.On("GetByID", ctx, int64(42)).Return(testPhotoService(), nil)
	m.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Return(repository.ErrBookingOverlap)

	_, err := svc.Create(ctx, 1, CreateBookingRequest{
		ServiceID:       42,
		Start:           time.Now().Add(48 * time.Hour),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrTimeConflict)
	m.notifs.AssertNotCalled(t, "NotifyBookingCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:             100,
		ClientID:       1,
		ServiceID:      42,
		PhotographerID: 7,
		ScheduledStart: time.Now().Add(48 * time.Hour),
		DurationMin:    60,
		State:          domain.BookingPending,
	}
}

func TestTransition_ConfirmByPhotographer(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()
	confirmed := *b
	confirmed.State = domain.BookingActive

	m.bookings.On("GetByID", ctx, int64(100)).Return(b, nil).Once()
	m.bookings.On("UpdateStateFrom", ctx, int64(100), domain.BookingPending, domain.BookingActive).
		Return(true, nil)
	m.bookings.On("GetByID", ctx, int64(100)).Return(&confirmed, nil).Once()
	m.notifs.On("NotifyBookingConfirmed", ctx, int64(1), int64(100)).Return(nil)

	updated, err := svc.Transition(ctx, 100, domain.Actor{UserID: 7, Role: domain.RolePhotographer}, domain.BookingActive)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingActive, updated.State)
	m.notifs.AssertExpectations(t)
}

func TestTransition_StrangerForbidden(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.bookings.On("GetByID", ctx, int64(100)).Return(pendingBooking(), nil)

	_, err := svc.Transition(ctx, 100, domain.Actor{UserID: 999, Role: domain.RolePhotographer}, domain.BookingActive)

	assert.ErrorIs(t, err, ErrForbidden)
	m.bookings.AssertNotCalled(t, "UpdateStateFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransition_ClientCancelsPending(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()
	cancelled := *b
	cancelled.State = domain.BookingCancelled

	m.bookings.On("GetByID", ctx, int64(100)).Return(b, nil).Once()
	m.bookings.On("UpdateStateFrom", ctx, int64(100), domain.BookingPending, domain.BookingCancelled).
		Return(true, nil)
	m.bookings.On("GetByID", ctx, int64(100)).Return(&cancelled, nil).Once()
	m.notifs.On("NotifyBookingCancelled", ctx, int64(7), int64(100)).Return(nil)

	updated, err := svc.Transition(ctx, 100, domain.Actor{UserID: 1, Role: domain.RoleClient}, domain.BookingCancelled)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, updated.State)
	// counterpart gets the notification, not the actor
	m.notifs.AssertCalled(t, "NotifyBookingCancelled", ctx, int64(7), int64(100))
}

func TestTransition_ClientCannotCancelActive(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()
	b.State = domain.BookingActive

	m.bookings.On("GetByID", ctx, int64(100)).Return(b, nil)

	_, err := svc.Transition(ctx, 100, domain.Actor{UserID: 1, Role: domain.RoleClient}, domain.BookingCancelled)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_TerminalStateRejected(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()
	b.State = domain.BookingDone

	m.bookings.On("GetByID", ctx, int64(100)).Return(b, nil)

	_, err := svc.Transition(ctx, 100, domain.Actor{UserID: 7, Role: domain.RolePhotographer}, domain.BookingCancelled)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_LostRace(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.bookings.On("GetByID", ctx, int64(100)).Return(pendingBooking(), nil)
	m.bookings.On("UpdateStateFrom", ctx, int64(100), domain.BookingPending, domain.BookingActive).
		Return(false, nil)

	_, err := svc.Transition(ctx, 100, domain.Actor{UserID: 7, Role: domain.RolePhotographer}, domain.BookingActive)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_NotFound(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.bookings.On("GetByID", ctx, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Transition(ctx, 404, domain.Actor{UserID: 7, Role: domain.RolePhotographer}, domain.BookingActive)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCheckAvailability_BadDate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckAvailability(context.Background(), CheckAvailabilityRequest{
		PhotographerID: 7,
		Date:           "02.06.2025",
		Duration:       60,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckAvailability_EmptyDayIsNotAnError(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.availability.On("GetDay", ctx, int64(7), mock.AnythingOfType("int")).
		Return([]domain.ScheduleInterval{}, nil)
	m.bookings.On("ListForPhotographerBetween", ctx, int64(7),
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), domain.NonTerminalStates).
		Return([]domain.Booking{}, nil)

	slots, err := svc.CheckAvailability(ctx, CheckAvailabilityRequest{
		PhotographerID: 7,
		Date:           time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Duration:       60,
	})

	require.NoError(t, err)
	require.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestAttachImages_RequiresDoneState(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.bookings.On("GetByID", ctx, int64(100)).Return(pendingBooking(), nil)

	_, err := svc.AttachImages(ctx, 100, domain.Actor{UserID: 7, Role: domain.RolePhotographer}, "https://cdn.example.com/g/1")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAttachImages_OnlyOnce(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()
	b.State = domain.BookingDone

	m.bookings.On("GetByID", ctx, int64(100)).Return(b, nil)
	m.bookings.On("SetImagesURLOnce", ctx, int64(100), "https://cdn.example.com/g/1").
		Return(false, nil)

	_, err := svc.AttachImages(ctx, 100, domain.Actor{UserID: 7, Role: domain.RolePhotographer}, "https://cdn.example.com/g/1")

	assert.ErrorIs(t, err, ErrImagesAttached)
}

func TestSessionImages_StrangerForbidden(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.bookings.On("GetByID", ctx, int64(100)).Return(pendingBooking(), nil)

	_, err := svc.SessionImages(ctx, 100, domain.Actor{UserID: 55, Role: domain.RoleClient})

	assert.ErrorIs(t, err, ErrForbidden)
	m.media.AssertNotCalled(t, "ListKeys", mock.Anything, mock.Anything)
}

func TestSessionImages_SignsEveryKey(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	prefix := "photographers/7/sessions/100/"

	m.bookings.On("GetByID", ctx, int64(100)).Return(pendingBooking(), nil)
	m.media.On("ListKeys", ctx, prefix).Return([]string{prefix + "a.jpg", prefix + "b.jpg"}, nil)
	m.media.On("SignedURL", ctx, prefix+"a.jpg").Return("https://cdn/a.jpg?sig=x", nil)
	m.media.On("SignedURL", ctx, prefix+"b.jpg").Return("https://cdn/b.jpg?sig=y", nil)

	urls, err := svc.SessionImages(ctx, 100, domain.Actor{UserID: 1, Role: domain.RoleClient})

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.jpg?sig=x", "https://cdn/b.jpg?sig=y"}, urls)
}
