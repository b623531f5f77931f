package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
)

// RouteRepo defines the persistence operations for a line's ordered route.
type RouteRepo interface {
	// Replace discards the line's entire prior route and writes the given
	// stop IDs as new entries numbered 1..N in slice order, all inside one
	// transaction. Duplicate stop IDs are allowed and preserved positionally.
	// A partially-applied route is never observably persisted.
	Replace(ctx context.Context, lineID uuid.UUID, stopIDs []uuid.UUID) error

	// ListByLineID returns the line's route entries ordered by position
	// ascending, each joined with the referenced stop's name.
	ListByLineID(ctx context.Context, lineID uuid.UUID) ([]domain.RouteStop, error)
}

// pgRouteRepo is the Postgres implementation of RouteRepo.
type pgRouteRepo struct {
	db db
}

// NewRouteRepo constructs a RouteRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRouteRepo(db db) RouteRepo {
	return &pgRouteRepo{db: db}
}

// Replace performs the delete-all-then-insert-all as one transaction so a
// reader can never observe a half-replaced route.
func (r *pgRouteRepo) Replace(ctx context.Context, lineID uuid.UUID, stopIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.RouteRepo.Replace: begin: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after a successful commit

	const del = `DELETE FROM route_stops WHERE line_id = @line_id`
	if _, err := tx.Exec(ctx, del, pgx.NamedArgs{"line_id": lineID}); err != nil {
		return fmt.Errorf("repo.RouteRepo.Replace: clear: %w", err)
	}

	const ins = `
		INSERT INTO route_stops (line_id, stop_id, position)
		VALUES (@line_id, @stop_id, @position)`
	for i, stopID := range stopIDs {
		args := pgx.NamedArgs{
			"line_id":  lineID,
			"stop_id":  stopID,
			"position": i + 1,
		}
		if _, err := tx.Exec(ctx, ins, args); err != nil {
			return fmt.Errorf("repo.RouteRepo.Replace: insert position %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.RouteRepo.Replace: commit: %w", err)
	}
	return nil
}

func (r *pgRouteRepo) ListByLineID(ctx context.Context, lineID uuid.UUID) ([]domain.RouteStop, error) {
	const q = `
		SELECT rs.position, rs.stop_id, bs.name
		FROM route_stops rs
		JOIN bus_stops bs ON bs.id = rs.stop_id
		WHERE rs.line_id = @line_id
		ORDER BY rs.position ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"line_id": lineID})
	if err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.ListByLineID: %w", err)
	}
	defer rows.Close()

	var entries []domain.RouteStop
	for rows.Next() {
		var (
			e      domain.RouteStop
			stopID pgtype.UUID
		)
		if err := rows.Scan(&e.Position, &stopID, &e.StopName); err != nil {
			return nil, fmt.Errorf("repo.RouteRepo.ListByLineID: scan: %w", err)
		}
		e.StopID = uuid.UUID(stopID.Bytes)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.ListByLineID: rows: %w", err)
	}

	return entries, nil
}
