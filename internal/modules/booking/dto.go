package booking

import "time"

type CheckAvailabilityRequest struct {
	PhotographerID int64  `json:"photographer_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Duration       int    `json:"duration" binding:"required,gt=0"`
}

type CreateBookingRequest struct {
	ServiceID       int64     `json:"service_id" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,gt=0"`
}

type BookingResponse struct {
	BookingID       int64   `json:"booking_id"`
	ServiceName     string  `json:"service_name"`
	Price           float64 `json:"price"`
	Start           string  `json:"start"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
	ClientName      string  `json:"client_name,omitempty"`
	ClientEmail     string  `json:"client_email,omitempty"`
}

type AgendaSession struct {
	BookingID   int64  `json:"booking_id"`
	ClientName  string `json:"client_name"`
	ServiceName string `json:"service_name"`
	Start       string `json:"start"`
}

type AgendaDay struct {
	Date     string          `json:"date"`
	Sessions []AgendaSession `json:"sessions"`
}
