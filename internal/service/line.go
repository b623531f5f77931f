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

// Column limits for bus line fields.
const (
	maxLineNameLen = 200
	maxLineDescLen = 500
)

// LineService implements business logic for bus line operations: CRUD, the
// full-replace route update, and the retirement policy on delete.
// It holds the stops and tickets repos because replacing a route validates
// every referenced stop, and deleting a line checks for active tickets.
type LineService struct {
	lines   repo.LineRepo
	stops   repo.StopRepo
	routes  repo.RouteRepo
	tickets repo.TicketRepo
}

// NewLineService constructs a LineService backed by the provided repos.
func NewLineService(lines repo.LineRepo, stops repo.StopRepo, routes repo.RouteRepo, tickets repo.TicketRepo) *LineService {
	return &LineService{lines: lines, stops: stops, routes: routes, tickets: tickets}
}

// List returns all lines, each with its ordered route joined in.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LineService) List(ctx context.Context) ([]domain.LineDetail, error) {
	lines, err := s.lines.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LineService.List: %w", err)
	}

	details := make([]domain.LineDetail, 0, len(lines))
	for _, l := range lines {
		route, err := s.routes.ListByLineID(ctx, l.ID)
		if err != nil {
			return nil, fmt.Errorf("service.LineService.List: route for %s: %w", l.ID, err)
		}
		details = append(details, domain.LineDetail{Line: l, Route: routeOrEmpty(route)})
	}
	return details, nil
}

// GetByID returns a single line with its ordered route.
// Returns a domain.NotFoundError if the line does not exist.
func (s *LineService) GetByID(ctx context.Context, id uuid.UUID) (domain.LineDetail, error) {
	line, err := s.lines.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LineDetail{}, &domain.NotFoundError{Resource: "bus line", ID: id}
		}
		return domain.LineDetail{}, fmt.Errorf("service.LineService.GetByID: %w", err)
	}

	route, err := s.routes.ListByLineID(ctx, id)
	if err != nil {
		return domain.LineDetail{}, fmt.Errorf("service.LineService.GetByID: route: %w", err)
	}
	return domain.LineDetail{Line: line, Route: routeOrEmpty(route)}, nil
}

// Create validates and persists a new line. New lines start active with an
// empty route; the route is assigned separately via SetRoute.
func (s *LineService) Create(ctx context.Context, line domain.Line) (domain.LineDetail, error) {
	if err := validateLine(line); err != nil {
		return domain.LineDetail{}, err
	}
	created, err := s.lines.Create(ctx, line)
	if err != nil {
		return domain.LineDetail{}, fmt.Errorf("service.LineService.Create: %w", err)
	}
	return domain.LineDetail{Line: created, Route: []domain.RouteStop{}}, nil
}

// Update validates and persists name/description changes to an existing line.
func (s *LineService) Update(ctx context.Context, line domain.Line) (domain.LineDetail, error) {
	if err := validateLine(line); err != nil {
		return domain.LineDetail{}, err
	}
	updated, err := s.lines.Update(ctx, line)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LineDetail{}, &domain.NotFoundError{Resource: "bus line", ID: line.ID}
		}
		return domain.LineDetail{}, fmt.Errorf("service.LineService.Update: %w", err)
	}

	route, err := s.routes.ListByLineID(ctx, line.ID)
	if err != nil {
		return domain.LineDetail{}, fmt.Errorf("service.LineService.Update: route: %w", err)
	}
	return domain.LineDetail{Line: updated, Route: routeOrEmpty(route)}, nil
}

// Delete applies the retirement policy. If any active ticket still references
// the line it is soft-deactivated (row retained, active=false) so historical
// ticket lookups keep working; otherwise the line and its route entries are
// hard-deleted. The active-ticket check runs exactly once and commits to one
// branch.
func (s *LineService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.lines.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Resource: "bus line", ID: id}
		}
		return fmt.Errorf("service.LineService.Delete: %w", err)
	}

	referenced, err := s.tickets.ExistsActiveByLineID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.LineService.Delete: %w", err)
	}

	if referenced {
		if err := s.lines.Deactivate(ctx, id); err != nil {
			return fmt.Errorf("service.LineService.Delete: deactivate: %w", err)
		}
		return nil
	}
	if err := s.lines.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.LineService.Delete: %w", err)
	}
	return nil
}

// SetRoute replaces the line's entire route with the given ordered stop IDs.
// Stops are validated one by one in list order; the first missing identifier
// is reported in the returned NotFoundError. Duplicates are allowed and kept
// positionally. The replace itself runs as a single transaction in the repo.
func (s *LineService) SetRoute(ctx context.Context, lineID uuid.UUID, stopIDs []uuid.UUID) (domain.LineDetail, error) {
	line, err := s.lines.GetByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LineDetail{}, &domain.NotFoundError{Resource: "bus line", ID: lineID}
		}
		return domain.LineDetail{}, fmt.Errorf("service.LineService.SetRoute: %w", err)
	}

	if len(stopIDs) == 0 {
		return domain.LineDetail{}, fmt.Errorf("%w: route must have at least one stop", domain.ErrValidation)
	}

	for _, stopID := range stopIDs {
		if _, err := s.stops.GetByID(ctx, stopID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.LineDetail{}, &domain.NotFoundError{Resource: "bus stop", ID: stopID}
			}
			return domain.LineDetail{}, fmt.Errorf("service.LineService.SetRoute: %w", err)
		}
	}

	if err := s.routes.Replace(ctx, lineID, stopIDs); err != nil {
		return domain.LineDetail{}, fmt.Errorf("service.LineService.SetRoute: %w", err)
	}

	route, err := s.routes.ListByLineID(ctx, lineID)
	if err != nil {
		return domain.LineDetail{}, fmt.Errorf("service.LineService.SetRoute: route: %w", err)
	}
	return domain.LineDetail{Line: line, Route: routeOrEmpty(route)}, nil
}

// GetRoute returns the line's route entries ordered by position ascending.
// Returns a domain.NotFoundError if the line does not exist.
func (s *LineService) GetRoute(ctx context.Context, lineID uuid.UUID) ([]domain.RouteStop, error) {
	if _, err := s.lines.GetByID(ctx, lineID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "bus line", ID: lineID}
		}
		return nil, fmt.Errorf("service.LineService.GetRoute: %w", err)
	}

	route, err := s.routes.ListByLineID(ctx, lineID)
	if err != nil {
		return nil, fmt.Errorf("service.LineService.GetRoute: %w", err)
	}
	return routeOrEmpty(route), nil
}

// routeOrEmpty normalizes a nil route slice to an empty one.
func routeOrEmpty(route []domain.RouteStop) []domain.RouteStop {
	if route == nil {
		return []domain.RouteStop{}
	}
	return route
}

// validateLine enforces rules common to both Create and Update.
func validateLine(line domain.Line) error {
	if strings.TrimSpace(line.Name) == "" {
		return fmt.Errorf("%w: bus line name is required", domain.ErrValidation)
	}
	if len(line.Name) > maxLineNameLen {
		return fmt.Errorf("%w: bus line name must be under %d characters", domain.ErrValidation, maxLineNameLen)
	}
	if len(line.Description) > maxLineDescLen {
		return fmt.Errorf("%w: description must be under %d characters", domain.ErrValidation, maxLineDescLen)
	}
	return nil
}
