package main

import (
	"context"
	"log"
	"os"

	"photomarket/internal/database"
	"photomarket/internal/domain"
	"photomarket/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// catalogIntervals is the canonical interval catalog. Half-day and
// full-day blocks at 15-minute boundaries, covering the ranges
// photographers typically offer.
var catalogIntervals = [][2]string{
	{"08:00", "12:00"},
	{"08:00", "12:45"},
	{"09:00", "13:00"},
	{"09:00", "18:00"},
	{"10:00", "14:00"},
	{"10:00", "19:00"},
	{"12:00", "16:00"},
	{"13:00", "17:00"},
	{"14:00", "18:00"},
	{"16:00", "18:15"},
	{"16:00", "20:00"},
	{"17:00", "21:00"},
	{"18:00", "22:00"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "photomarket.db"
	}

	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx := context.Background()
	scheduleRepo := repository.NewScheduleRepository(db)

	count, err := scheduleRepo.Count(ctx)
	if err != nil {
		log.Fatalf("failed to inspect schedule catalog: %v", err)
	}
	if count > 0 {
		log.Printf("schedule catalog already seeded (%d intervals), skipping", count)
	} else {
		for _, pair := range catalogIntervals {
			iv := &domain.ScheduleInterval{StartTime: pair[0], EndTime: pair[1]}
			if err := scheduleRepo.Create(ctx, iv); err != nil {
				log.Fatalf("failed to seed interval %s-%s: %v", pair[0], pair[1], err)
			}
		}
		log.Printf("seeded %d schedule intervals", len(catalogIntervals))
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, db); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		log.Println("seeded demo users and services")
	}

	log.Println("seed complete")
}

// seedDemoData creates a demo photographer with services and weekday
// availability, plus a demo client. Idempotent: skips when the
// photographer already exists.
func seedDemoData(ctx context.Context, db *gorm.DB) error {
	users := repository.NewUserRepository(db)
	services := repository.NewServiceRepository(db)
	schedules := repository.NewScheduleRepository(db)
	availability := repository.NewAvailabilityRepository(db)

	exists, err := users.EmailExists(ctx, "photographer@example.com")
	if err != nil {
		return err
	}
	if exists {
		log.Println("demo data already present, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	photographer := &domain.User{
		Email:        "photographer@example.com",
		PasswordHash: string(hash),
		Role:         domain.RolePhotographer,
		Name:         "Demo Photographer",
	}
	if err := users.Create(ctx, photographer); err != nil {
		return err
	}

	client := &domain.User{
		Email:        "client@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		Name:         "Demo Client",
	}
	if err := users.Create(ctx, client); err != nil {
		return err
	}

	demoServices := []domain.Service{
		{PhotographerID: photographer.ID, Name: "Portrait session", Price: 15000},
		{PhotographerID: photographer.ID, Name: "Family photoshoot", Price: 25000},
		{PhotographerID: photographer.ID, Name: "Event coverage", Price: 60000},
	}
	for i := range demoServices {
		if err := services.Create(ctx, &demoServices[i]); err != nil {
			return err
		}
	}

	morning, err := schedules.FindByRange(ctx, "08:00", "12:45")
	if err != nil {
		return err
	}
	evening, err := schedules.FindByRange(ctx, "16:00", "18:15")
	if err != nil {
		return err
	}

	// working hours Monday through Friday
	for weekday := 1; weekday <= 5; weekday++ {
		err := availability.ReplaceDay(ctx, photographer.ID, weekday, []int64{morning.ID, evening.ID})
		if err != nil {
			return err
		}
	}

	return nil
}
