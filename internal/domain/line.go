package domain

import (
	"time"

	"github.com/google/uuid"
)

// Line represents a named bus line. Its route is an ordered sequence of
// stops, stored separately as route entries and owned by the line.
// Active is false for lines that have been soft-deactivated because active
// tickets still reference them.
type Line struct {
	ID          uuid.UUID
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LineDetail is a line together with its ordered route, assembled by the
// read path (an explicit joined read, not a stored object graph).
type LineDetail struct {
	Line
	Route []RouteStop
}

// RouteStop is one (stop, position) pairing within a line's ordered route,
// joined with the stop's name for read-side responses.
// Positions are contiguous integers starting at 1 in assignment order.
type RouteStop struct {
	Position int
	StopID   uuid.UUID
	StopName string
}
