package repository

import (
	"context"
	"errors"
	"time"

	"photomarket/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrBookingOverlap is returned when an insert would violate the
// no-overlap invariant for a photographer's pending/active bookings.
var ErrBookingOverlap = errors.New("booking interval overlap")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	ClientID       int64     `gorm:"column:client_id"`
	ServiceID      int64     `gorm:"column:service_id"`
	PhotographerID int64     `gorm:"column:photographer_id"`
	ScheduledStart time.Time `gorm:"column:scheduled_start"`
	DurationMin    int       `gorm:"column:duration_min"`
	State          string    `gorm:"column:state"`
	Price          float64   `gorm:"column:price"`
	ImagesURL      *string   `gorm:"column:images_url"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:             m.ID,
		ClientID:       m.ClientID,
		ServiceID:      m.ServiceID,
		PhotographerID: m.PhotographerID,
		ScheduledStart: m.ScheduledStart,
		DurationMin:    m.DurationMin,
		State:          domain.BookingState(m.State),
		Price:          m.Price,
		ImagesURL:      m.ImagesURL,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:             b.ID,
		ClientID:       b.ClientID,
		ServiceID:      b.ServiceID,
		PhotographerID: b.PhotographerID,
		ScheduledStart: b.ScheduledStart,
		DurationMin:    b.DurationMin,
		State:          string(b.State),
		Price:          b.Price,
		ImagesURL:      b.ImagesURL,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// Create inserts the booking after re-checking the no-overlap invariant
// inside one transaction. On PostgreSQL the excl_booking_overlap
// constraint is the authoritative guard: a concurrent insert that slips
// past the check still fails, and the violation is surfaced as
// ErrBookingOverlap. On SQLite the transaction serializes writers.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []bookingModel
		// Candidate window is bounded below by one day; no service runs longer.
		windowStart := m.ScheduledStart.Add(-24 * time.Hour)
		end := m.ScheduledStart.Add(time.Duration(m.DurationMin) * time.Minute)

		q := tx.
			Where("photographer_id = ?", m.PhotographerID).
			Where("state IN ?", []string{string(domain.BookingPending), string(domain.BookingActive)}).
			Where("scheduled_start > ? AND scheduled_start < ?", windowStart, end).
			Find(&existing)
		if q.Error != nil {
			return q.Error
		}

		for _, e := range existing {
			if e.ScheduledStart.Equal(m.ScheduledStart) {
				return ErrBookingOverlap
			}
			booked := toDomainBooking(e)
			if booked.Overlaps(m.ScheduledStart, end) {
				return ErrBookingOverlap
			}
		}

		return tx.Create(&m).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "excl_booking_overlap" {
			// 23P01 exclusion_violation from the gist constraint
			return ErrBookingOverlap
		}
		return err
	}

	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Service.Photographer").
		First(&b, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

// UpdateStateFrom applies from -> to atomically; the WHERE clause on the
// current state makes a lost update impossible under concurrent
// transitions. Returns false when the row was not in `from` anymore.
func (r *BookingRepository) UpdateStateFrom(ctx context.Context, id int64, from, to domain.BookingState) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND state = ?", id, string(from)).
		Update("state", string(to))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ListForPhotographerBetween returns the photographer's bookings with
// scheduled_start in [from, to) restricted to the given states.
func (r *BookingRepository) ListForPhotographerBetween(ctx context.Context, photographerID int64, from, to time.Time, states []domain.BookingState) ([]domain.Booking, error) {
	ss := make([]string, 0, len(states))
	for _, s := range states {
		ss = append(ss, string(s))
	}

	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("photographer_id = ?", photographerID).
		Where("state IN ?", ss).
		Where("scheduled_start >= ? AND scheduled_start < ?", from, to).
		Order("scheduled_start").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

type BookingHistoryRow struct {
	BookingID      int64     `json:"booking_id"`
	ServiceName    string    `json:"service_name"`
	CreatedAt      time.Time `json:"created_at"`
	ScheduledStart time.Time `json:"scheduled_start"`
	DurationMin    int       `json:"duration_minutes"`
	State          string    `json:"state"`
}

func (r *BookingRepository) HistoryByClient(ctx context.Context, clientID int64) ([]BookingHistoryRow, error) {
	var rows []BookingHistoryRow
	q := `
SELECT b.id AS booking_id,
       s.name AS service_name,
       b.created_at,
       b.scheduled_start,
       b.duration_min,
       b.state
FROM bookings b
JOIN services s ON s.id = b.service_id
WHERE b.client_id = ?
ORDER BY b.created_at DESC
`
	tx := r.db.WithContext(ctx).Raw(q, clientID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

type PendingBookingRow struct {
	BookingID        int64     `json:"booking_id"`
	ClientID         int64     `json:"client_id"`
	CreatedAt        time.Time `json:"created_at"`
	ScheduledStart   time.Time `json:"scheduled_start"`
	State            string    `json:"state"`
	ServiceID        int64     `json:"service_id"`
	ServiceName      string    `json:"service_name"`
	Price            float64   `json:"price"`
	CounterpartName  string    `json:"counterpart_name"`
	CounterpartEmail string    `json:"counterpart_email"`
}

// PendingByPhotographer lists pending bookings against the
// photographer's services, with the client as counterpart.
func (r *BookingRepository) PendingByPhotographer(ctx context.Context, photographerID int64) ([]PendingBookingRow, error) {
	var rows []PendingBookingRow
	q := `
SELECT b.id AS booking_id,
       b.client_id,
       b.created_at,
       b.scheduled_start,
       b.state,
       s.id AS service_id,
       s.name AS service_name,
       b.price,
       u.name AS counterpart_name,
       u.email AS counterpart_email
FROM bookings b
JOIN services s ON s.id = b.service_id
JOIN users u ON u.id = b.client_id
WHERE b.photographer_id = ? AND b.state = 'pending'
ORDER BY b.scheduled_start
`
	tx := r.db.WithContext(ctx).Raw(q, photographerID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// PendingByClient lists the client's pending bookings, with the
// photographer as counterpart.
func (r *BookingRepository) PendingByClient(ctx context.Context, clientID int64) ([]PendingBookingRow, error) {
	var rows []PendingBookingRow
	q := `
SELECT b.id AS booking_id,
       b.client_id,
       b.created_at,
       b.scheduled_start,
       b.state,
       s.id AS service_id,
       s.name AS service_name,
       b.price,
       u.name AS counterpart_name,
       u.email AS counterpart_email
FROM bookings b
JOIN services s ON s.id = b.service_id
JOIN users u ON u.id = b.photographer_id
WHERE b.client_id = ? AND b.state = 'pending'
ORDER BY b.scheduled_start
`
	tx := r.db.WithContext(ctx).Raw(q, clientID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

type AgendaRow struct {
	BookingID      int64     `json:"booking_id"`
	ScheduledStart time.Time `json:"scheduled_start"`
	DurationMin    int       `json:"duration_minutes"`
	ClientName     string    `json:"client_name"`
	ServiceName    string    `json:"service_name"`
}

// AgendaForPhotographer returns active sessions in [from, to) with the
// client and service names needed to render an agenda.
func (r *BookingRepository) AgendaForPhotographer(ctx context.Context, photographerID int64, from, to time.Time) ([]AgendaRow, error) {
	var rows []AgendaRow
	q := `
SELECT b.id AS booking_id,
       b.scheduled_start,
       b.duration_min,
       u.name AS client_name,
       s.name AS service_name
FROM bookings b
JOIN services s ON s.id = b.service_id
JOIN users u ON u.id = b.client_id
WHERE b.photographer_id = ?
  AND b.state = 'active'
  AND b.scheduled_start >= ? AND b.scheduled_start < ?
ORDER BY b.scheduled_start
`
	tx := r.db.WithContext(ctx).Raw(q, photographerID, from, to).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

type UnphotographedRow struct {
	BookingID      int64     `json:"booking_id"`
	ScheduledStart time.Time `json:"session_date"`
	ClientName     string    `json:"client_name"`
	ServiceName    string    `json:"service_name"`
}

// CompletedWithoutImages lists done sessions that have no delivered
// media reference yet.
func (r *BookingRepository) CompletedWithoutImages(ctx context.Context, photographerID int64) ([]UnphotographedRow, error) {
	var rows []UnphotographedRow
	q := `
SELECT b.id AS booking_id,
       b.scheduled_start,
       u.name AS client_name,
       s.name AS service_name
FROM bookings b
JOIN services s ON s.id = b.service_id
JOIN users u ON u.id = b.client_id
WHERE b.photographer_id = ? AND b.state = 'done' AND b.images_url IS NULL
ORDER BY b.scheduled_start
`
	tx := r.db.WithContext(ctx).Raw(q, photographerID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// SetImagesURLOnce writes the media reference only when none is present.
// Returns false when the booking already carries one.
func (r *BookingRepository) SetImagesURLOnce(ctx context.Context, id int64, url string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND images_url IS NULL", id).
		Update("images_url", url)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
