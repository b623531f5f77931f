// Package domain contains the core data types for the bus ticketing backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stop represents a physical bus stop. Stops are independent entities;
// lines reference them through ordered route entries.
// Latitude/Longitude are nil when the stop has not been geocoded.
type Stop struct {
	ID        uuid.UUID
	Name      string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
