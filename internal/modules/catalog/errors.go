package catalog

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrValidation      = errors.New("validation error")
	ErrNotOwner        = errors.New("service belongs to another photographer")
)
