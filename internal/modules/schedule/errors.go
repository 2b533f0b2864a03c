package schedule

import "errors"

var (
	ErrUnknownInterval = errors.New("no such interval")
	ErrInvalidWeekday  = errors.New("weekday out of range")
	ErrValidation      = errors.New("validation error")
)
