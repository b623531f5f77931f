package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
	"github.com/mstojanov/bus-ticketing/backend/internal/repo"
)

// TicketService implements the ticket lifecycle: purchase, renew, cancel,
// and filtered lookup. It holds the categories and lines repos because a
// purchase must resolve both references before computing the validity window.
type TicketService struct {
	tickets    repo.TicketRepo
	categories repo.CategoryRepo
	lines      repo.LineRepo
}

// NewTicketService constructs a TicketService backed by the provided repos.
func NewTicketService(tickets repo.TicketRepo, categories repo.CategoryRepo, lines repo.LineRepo) *TicketService {
	return &TicketService{tickets: tickets, categories: categories, lines: lines}
}

// Find returns one page of tickets matching the filter plus the total match
// count. Omitted filter fields impose no constraint; present ones are ANDed.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TicketService) Find(ctx context.Context, filter domain.TicketFilter, page domain.PaginationParams) ([]domain.Ticket, int64, error) {
	tickets, total, err := s.tickets.FindFiltered(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TicketService.Find: %w", err)
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, total, nil
}

// GetByID returns a single ticket by ID.
// Returns a domain.NotFoundError if the ticket does not exist.
func (s *TicketService) GetByID(ctx context.Context, id uuid.UUID) (domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Ticket{}, &domain.NotFoundError{Resource: "ticket", ID: id}
		}
		return domain.Ticket{}, fmt.Errorf("service.TicketService.GetByID: %w", err)
	}
	return ticket, nil
}

// Purchase resolves the category (and line, when given), computes the
// validity window, and persists a new active ticket.
//
// The window starts at ValidFrom (defaulting to now) and ends after the
// category's duration: exactly two hours for single-ride categories, else
// the duration in calendar days. PurchaseDate records the call instant
// regardless of ValidFrom.
func (s *TicketService) Purchase(ctx context.Context, in domain.TicketPurchase) (domain.Ticket, error) {
	if err := validatePurchase(in); err != nil {
		return domain.Ticket{}, err
	}

	category, err := s.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Ticket{}, &domain.NotFoundError{Resource: "ticket category", ID: in.CategoryID}
		}
		return domain.Ticket{}, fmt.Errorf("service.TicketService.Purchase: %w", err)
	}

	if in.LineID != nil {
		if _, err := s.lines.GetByID(ctx, *in.LineID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Ticket{}, &domain.NotFoundError{Resource: "bus line", ID: *in.LineID}
			}
			return domain.Ticket{}, fmt.Errorf("service.TicketService.Purchase: %w", err)
		}
	}

	now := time.Now().UTC()
	validFrom := now
	if in.ValidFrom != nil {
		validFrom = in.ValidFrom.UTC()
	}

	ticket := domain.Ticket{
		PassengerName:  in.PassengerName,
		PassengerEmail: in.PassengerEmail,
		CategoryID:     in.CategoryID,
		LineID:         in.LineID,
		PurchaseDate:   now,
		ValidFrom:      validFrom,
		ExpirationDate: category.ExpirationFrom(validFrom),
		Active:         true,
	}

	created, err := s.tickets.Create(ctx, ticket)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("service.TicketService.Purchase: %w", err)
	}
	return created, nil
}

// Renew extends a ticket's validity window and returns the updated ticket.
//
// Single-ride tickets are terminal: renewing one fails with
// domain.ErrBusinessRule and the ticket is left untouched.
//
// The new window is anchored at max(current expiration, now): an unexpired
// ticket extends contiguously from its old expiration (no lost time), an
// expired one restarts from now (no backdating, no gap penalty). Renewal
// always uses day-based arithmetic, resets PurchaseDate to now, and forces
// the ticket active: a renewal reactivates a cancelled ticket.
func (s *TicketService) Renew(ctx context.Context, id uuid.UUID) (domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Ticket{}, &domain.NotFoundError{Resource: "ticket", ID: id}
		}
		return domain.Ticket{}, fmt.Errorf("service.TicketService.Renew: %w", err)
	}

	if ticket.DurationDays == 0 {
		return domain.Ticket{}, fmt.Errorf("%w: single ride tickets cannot be renewed", domain.ErrBusinessRule)
	}

	now := time.Now().UTC()
	newStart := now
	if ticket.ExpirationDate.After(now) {
		newStart = ticket.ExpirationDate
	}

	ticket.ValidFrom = newStart
	ticket.ExpirationDate = newStart.AddDate(0, 0, ticket.DurationDays)
	ticket.PurchaseDate = now
	ticket.Active = true

	updated, err := s.tickets.Update(ctx, ticket)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("service.TicketService.Renew: %w", err)
	}
	return updated, nil
}

// Cancel deactivates a ticket, leaving every other field untouched.
// Cancelling an already-inactive ticket succeeds silently.
// Returns a domain.NotFoundError if the ticket does not exist.
func (s *TicketService) Cancel(ctx context.Context, id uuid.UUID) error {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Resource: "ticket", ID: id}
		}
		return fmt.Errorf("service.TicketService.Cancel: %w", err)
	}

	ticket.Active = false
	if _, err := s.tickets.Update(ctx, ticket); err != nil {
		return fmt.Errorf("service.TicketService.Cancel: %w", err)
	}
	return nil
}

// validatePurchase enforces the required purchase fields. Email format is
// checked at the HTTP boundary; the service only requires presence.
func validatePurchase(in domain.TicketPurchase) error {
	if strings.TrimSpace(in.PassengerName) == "" {
		return fmt.Errorf("%w: passenger name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.PassengerEmail) == "" {
		return fmt.Errorf("%w: passenger email is required", domain.ErrValidation)
	}
	if in.CategoryID == uuid.Nil {
		return fmt.Errorf("%w: ticket category is required", domain.ErrValidation)
	}
	return nil
}
