package main

import (
	"log"
	"os"
	"time"

	"photomarket/internal/database"
	"photomarket/internal/middleware"
	"photomarket/internal/modules/auth"
	"photomarket/internal/modules/booking"
	"photomarket/internal/modules/catalog"
	"photomarket/internal/modules/media"
	"photomarket/internal/modules/notification"
	"photomarket/internal/modules/schedule"
	jwtsvc "photomarket/internal/pkg/jwt"
	"photomarket/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "photomarket.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Shared infrastructure
	jwtService := jwtsvc.New(jwtSecret, 24*time.Hour)
	hub := notification.NewHub()

	mediaBase := os.Getenv("MEDIA_BASE_URL")
	if mediaBase == "" {
		mediaBase = "http://localhost:8080/media"
	}
	mediaStore := media.NewLocalStore(mediaBase, jwtSecret, 15*time.Minute)

	// Services
	authService := auth.NewService(userRepo, jwtService)
	catalogService := catalog.NewService(serviceRepo)
	scheduleService := schedule.NewService(scheduleRepo, availabilityRepo)
	notificationService := notification.NewService(notificationRepo, hub)
	bookingService := booking.NewService(
		bookingRepo,
		availabilityRepo,
		userRepo,
		serviceRepo,
		notificationService,
		mediaStore,
	)

	// Handlers
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	bookingHandler := booking.NewHandler(bookingService)
	notificationHandler := notification.NewHandler(notificationService, hub)

	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorLogger())

	api := router.Group("/api/v1")

	public := api.Group("")
	authHandler.RegisterRoutes(public)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwtService))

	photographer := protected.Group("")
	photographer.Use(middleware.PhotographerOnly())

	catalogHandler.RegisterRoutes(public, photographer)
	scheduleHandler.RegisterRoutes(public, photographer)
	bookingHandler.RegisterRoutes(protected, photographer)
	notificationHandler.RegisterRoutes(protected)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
