package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/torneolink/backend/models"
	"github.com/torneolink/backend/repositories"
)

type VenueInput struct {
	Name      string   `json:"name"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Capacity  *int     `json:"capacity,omitempty"`
	Surface   *string  `json:"surface,omitempty"`
	Active    *bool    `json:"active,omitempty"`
}

type VenueService interface {
	CreateVenue(ctx context.Context, input VenueInput) (*models.Venue, error)
	GetVenue(ctx context.Context, id int) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id int, input VenueInput) (*models.Venue, error)
	ListVenues(ctx context.Context) ([]*models.Venue, error)
}

type venueService struct {
	venueRepo repositories.VenueRepository
}

func NewVenueService(venueRepo repositories.VenueRepository) VenueService {
	return &venueService{venueRepo: venueRepo}
}

func (s *venueService) CreateVenue(ctx context.Context, input VenueInput) (*models.Venue, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: venue name is required", ErrValidationFailed)
	}
	venue := &models.Venue{
		Name:      input.Name,
		Address:   input.Address,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Capacity:  input.Capacity,
		Surface:   input.Surface,
		Active:    true,
	}
	if input.Active != nil {
		venue.Active = *input.Active
	}
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) GetVenue(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, id int, input VenueInput) (*models.Venue, error) {
	venue, err := s.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		venue.Name = input.Name
	}
	if input.Address != nil {
		venue.Address = input.Address
	}
	if input.Latitude != nil {
		venue.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		venue.Longitude = input.Longitude
	}
	if input.Capacity != nil {
		venue.Capacity = input.Capacity
	}
	if input.Surface != nil {
		venue.Surface = input.Surface
	}
	if input.Active != nil {
		venue.Active = *input.Active
	}

	if err := s.venueRepo.Update(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) ListVenues(ctx context.Context) ([]*models.Venue, error) {
	return s.venueRepo.List(ctx)
}
