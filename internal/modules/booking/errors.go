package booking

import "errors"

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrBookingNotFound = errors.New("booking not found")

	ErrPastDate          = errors.New("scheduled start is not in the future")
	ErrTimeConflict      = errors.New("time slot already booked")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrImagesAttached    = errors.New("images already attached")

	ErrForbidden  = errors.New("actor not authorized for this booking")
	ErrValidation = errors.New("validation error")
)
