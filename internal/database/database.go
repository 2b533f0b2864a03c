package database

import (
	"log"
	"strings"

	"photomarket/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema and, on PostgreSQL, the exclusion constraint
// that makes double-booking impossible at the storage level. Two concurrent
// creates for overlapping slots both pass the in-process check; the
// constraint rejects the loser, so the no-overlap invariant holds across
// server instances.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Service{},
		&domain.ScheduleInterval{},
		&domain.AvailabilityEntry{},
		&domain.Booking{},
		&domain.Notification{},
	)
	if err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		// SQLite path (local dev, tests): the booking repository wraps
		// check-then-insert in a single transaction instead.
		return nil
	}

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS excl_booking_overlap`,
		`ALTER TABLE bookings ADD CONSTRAINT excl_booking_overlap
			EXCLUDE USING gist (
				photographer_id WITH =,
				tstzrange(
					scheduled_start,
					scheduled_start + make_interval(mins => duration_min),
					'[)'
				) WITH &&
			)
			WHERE (state IN ('pending', 'active'))`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
