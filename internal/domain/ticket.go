package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a purchased instance of a category, bound to a passenger and
// optionally a line. LineID is nil for line-agnostic tickets (e.g. an
// all-network pass). Tickets are never hard-deleted; cancellation sets
// Active to false.
//
// CategoryName, DurationDays, and LineName are read-side joins populated by
// the repo so that responses and renewal logic never need a second fetch.
// They are not independently persisted ticket columns.
type Ticket struct {
	ID             uuid.UUID
	PassengerName  string
	PassengerEmail string
	CategoryID     uuid.UUID
	LineID         *uuid.UUID
	PurchaseDate   time.Time
	ValidFrom      time.Time
	ExpirationDate time.Time
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	CategoryName string
	DurationDays int
	LineName     *string
}

// Expired reports whether the ticket's validity window has passed at the
// given instant. Strictly after: a ticket expiring at exactly now is still valid.
func (t Ticket) Expired(now time.Time) bool {
	return now.After(t.ExpirationDate)
}

// DaysRemaining returns the number of whole days left until expiration at
// the given instant, truncated (23h59m remaining counts as 0 days) and
// clamped at zero for expired tickets.
func (t Ticket) DaysRemaining(now time.Time) int {
	days := int(t.ExpirationDate.Sub(now) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

// TicketPurchase carries the fields of a ticket purchase request.
// LineID is nil for line-agnostic tickets; ValidFrom defaults to the
// purchase instant when nil.
type TicketPurchase struct {
	PassengerName  string
	PassengerEmail string
	CategoryID     uuid.UUID
	LineID         *uuid.UUID
	ValidFrom      *time.Time
}

// TicketFilter carries the optional list filters for tickets.
// A nil field imposes no constraint; present fields are ANDed together.
type TicketFilter struct {
	Email  *string
	Active *bool
	LineID *uuid.UUID
}
