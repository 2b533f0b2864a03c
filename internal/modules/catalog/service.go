package catalog

import (
	"context"
	"errors"
	"fmt"

	"photomarket/internal/domain"
	"photomarket/internal/pkg/validator"
	"photomarket/internal/repository"

	"gorm.io/gorm"
)

// Service manages the photographers' bookable offerings. Booking price
// snapshots are taken from here at creation time.
type Service struct {
	services *repository.ServiceRepository
}

func NewService(services *repository.ServiceRepository) *Service {
	return &Service{services: services}
}

func (s *Service) Create(ctx context.Context, photographerID int64, req CreateServiceRequest) (*domain.Service, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	svc := &domain.Service{
		PhotographerID: photographerID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
	}
	if fields := validator.Validate(svc); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListByPhotographer(ctx context.Context, photographerID int64) ([]domain.Service, error) {
	return s.services.ListByPhotographer(ctx, photographerID)
}

// Update applies the non-nil fields after an ownership check.
func (s *Service) Update(ctx context.Context, photographerID, serviceID int64, req UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.PhotographerID != photographerID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.ImageURL != nil {
		svc.ImageURL = *req.ImageURL
	}

	if fields := validator.Validate(svc); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}
