package schedule

import (
	"context"
	"testing"

	"photomarket/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) List(ctx context.Context) ([]domain.ScheduleInterval, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleInterval), args.Error(1)
}

func (m *mockCatalog) FindByRange(ctx context.Context, start, end string) (*domain.ScheduleInterval, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleInterval), args.Error(1)
}

type mockAvailability struct {
	mock.Mock
}

func (m *mockAvailability) ReplaceDay(ctx context.Context, photographerID int64, weekday int, intervalIDs []int64) error {
	args := m.Called(ctx, photographerID, weekday, intervalIDs)
	return args.Error(0)
}

func (m *mockAvailability) GetWeek(ctx context.Context, photographerID int64) ([]domain.AvailabilityEntry, error) {
	args := m.Called(ctx, photographerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilityEntry), args.Error(1)
}

func TestSetDay_ResolvesCatalogIntervals(t *testing.T) {
	catalog := new(mockCatalog)
	availability := new(mockAvailability)
	svc := NewService(catalog, availability)
	ctx := context.Background()

	catalog.On("FindByRange", ctx, "08:00", "12:45").
		Return(&domain.ScheduleInterval{ID: 1, StartTime: "08:00", EndTime: "12:45"}, nil)
	catalog.On("FindByRange", ctx, "16:00", "18:15").
		Return(&domain.ScheduleInterval{ID: 2, StartTime: "16:00", EndTime: "18:15"}, nil)
	availability.On("ReplaceDay", ctx, int64(7), 1, []int64{1, 2}).Return(nil)

	err := svc.SetDay(ctx, 7, SetDayRequest{
		Day: 1,
		Slots: []SlotRange{
			{Start: "08:00", End: "12:45"},
			{Start: "16:00", End: "18:15"},
		},
	})

	require.NoError(t, err)
	availability.AssertExpectations(t)
}

func TestSetDay_UnknownInterval(t *testing.T) {
	catalog := new(mockCatalog)
	availability := new(mockAvailability)
	svc := NewService(catalog, availability)
	ctx := context.Background()

	catalog.On("FindByRange", ctx, "08:03", "09:17").Return(nil, gorm.ErrRecordNotFound)

	err := svc.SetDay(ctx, 7, SetDayRequest{
		Day:   1,
		Slots: []SlotRange{{Start: "08:03", End: "09:17"}},
	})

	assert.ErrorIs(t, err, ErrUnknownInterval)
	availability.AssertNotCalled(t, "ReplaceDay", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetDay_InvalidWeekday(t *testing.T) {
	svc := NewService(new(mockCatalog), new(mockAvailability))

	err := svc.SetDay(context.Background(), 7, SetDayRequest{Day: 0})
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	err = svc.SetDay(context.Background(), 7, SetDayRequest{Day: 8})
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestSetDay_EmptySlotsClearsDay(t *testing.T) {
	catalog := new(mockCatalog)
	availability := new(mockAvailability)
	svc := NewService(catalog, availability)
	ctx := context.Background()

	availability.On("ReplaceDay", ctx, int64(7), 3, []int64{}).Return(nil)

	err := svc.SetDay(ctx, 7, SetDayRequest{Day: 3, Slots: nil})

	require.NoError(t, err)
	availability.AssertExpectations(t)
}

func TestGetWeek_AlwaysSevenDays(t *testing.T) {
	catalog := new(mockCatalog)
	availability := new(mockAvailability)
	svc := NewService(catalog, availability)
	ctx := context.Background()

	availability.On("GetWeek", ctx, int64(7)).Return([]domain.AvailabilityEntry{
		{
			PhotographerID: 7,
			Weekday:        1,
			IntervalID:     1,
			Interval:       &domain.ScheduleInterval{ID: 1, StartTime: "08:00", EndTime: "12:45"},
		},
		{
			PhotographerID: 7,
			Weekday:        5,
			IntervalID:     2,
			Interval:       &domain.ScheduleInterval{ID: 2, StartTime: "16:00", EndTime: "18:15"},
		},
	}, nil)

	week, err := svc.GetWeek(ctx, 7)

	require.NoError(t, err)
	require.Len(t, week, 7)
	assert.Equal(t, []SlotRange{{Start: "08:00", End: "12:45"}}, week[0].Slots)
	assert.Equal(t, []SlotRange{{Start: "16:00", End: "18:15"}}, week[4].Slots)
	for _, day := range []int{1, 2, 3, 5, 6} {
		assert.NotNil(t, week[day].Slots)
		assert.Empty(t, week[day].Slots)
	}
}

func TestListCatalog(t *testing.T) {
	catalog := new(mockCatalog)
	svc := NewService(catalog, new(mockAvailability))
	ctx := context.Background()

	catalog.On("List", ctx).Return([]domain.ScheduleInterval{
		{ID: 1, StartTime: "08:00", EndTime: "12:45"},
		{ID: 2, StartTime: "16:00", EndTime: "18:15"},
	}, nil)

	ranges, err := svc.ListCatalog(ctx)

	require.NoError(t, err)
	assert.Equal(t, []SlotRange{
		{Start: "08:00", End: "12:45"},
		{Start: "16:00", End: "18:15"},
	}, ranges)
}
