package domain

import (
	"time"

	"github.com/google/uuid"
)

// SingleRideWindow is the fixed validity window for single-ride tickets
// (categories with DurationDays == 0).
const SingleRideWindow = 2 * time.Hour

// Category is a fare product: a price plus a validity duration in whole days.
// DurationDays == 0 marks a single-ride category, which uses the fixed
// two-hour window instead of day-based arithmetic.
type Category struct {
	ID           uuid.UUID
	Name         string
	DurationDays int
	Price        float64
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsSingleRide reports whether this category sells single-ride tickets.
func (c Category) IsSingleRide() bool {
	return c.DurationDays == 0
}

// ExpirationFrom computes the expiration of a validity window starting at
// validFrom. Single-ride categories get exactly two hours; day-based
// categories get DurationDays calendar days. The two branches never mix:
// day-based categories never use hour arithmetic and vice versa.
func (c Category) ExpirationFrom(validFrom time.Time) time.Time {
	if c.IsSingleRide() {
		return validFrom.Add(SingleRideWindow)
	}
	return validFrom.AddDate(0, 0, c.DurationDays)
}
