// Package service contains the business logic for the bus ticketing API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
	"github.com/mstojanov/bus-ticketing/backend/internal/repo"
)

// maxStopNameLen mirrors the column limit for stop names.
const maxStopNameLen = 150

// StopService implements business logic for bus stop operations.
type StopService struct {
	stops repo.StopRepo
}

// NewStopService constructs a StopService backed by the provided StopRepo.
func NewStopService(stops repo.StopRepo) *StopService {
	return &StopService{stops: stops}
}

// List returns all stops.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StopService) List(ctx context.Context) ([]domain.Stop, error) {
	stops, err := s.stops.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.List: %w", err)
	}
	if stops == nil {
		return []domain.Stop{}, nil
	}
	return stops, nil
}

// Create validates and persists a new stop.
// Returns domain.ErrValidation if input violates business rules.
func (s *StopService) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	if err := validateStop(stop); err != nil {
		return domain.Stop{}, err
	}
	result, err := s.stops.Create(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	return result, nil
}

// Update validates and persists changes to an existing stop.
// Returns domain.ErrValidation for invalid input, a domain.NotFoundError if
// the stop does not exist.
func (s *StopService) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	if err := validateStop(stop); err != nil {
		return domain.Stop{}, err
	}
	result, err := s.stops.Update(ctx, stop)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Stop{}, &domain.NotFoundError{Resource: "bus stop", ID: stop.ID}
		}
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a stop by ID.
// Returns a domain.NotFoundError if the stop does not exist, and a
// domain.ErrBusinessRule error when the stop is still part of a line's
// route; deleting it would break the route's position ordering.
func (s *StopService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.stops.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Resource: "bus stop", ID: id}
		}
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	return nil
}

// validateStop enforces rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected) and within the column limit.
func validateStop(stop domain.Stop) error {
	if strings.TrimSpace(stop.Name) == "" {
		return fmt.Errorf("%w: stop name is required", domain.ErrValidation)
	}
	if len(stop.Name) > maxStopNameLen {
		return fmt.Errorf("%w: stop name must be under %d characters", domain.ErrValidation, maxStopNameLen)
	}
	return nil
}
