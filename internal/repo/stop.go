// Package repo contains all database access logic for the bus ticketing API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
//
// Begin is included because the route replace must run as one transaction;
// on a pgx.Tx it opens a savepoint, so the rollback-isolation trick still works.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// StopRepo defines the persistence operations for bus stops.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type StopRepo interface {
	// Create inserts a new stop and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// GetByID retrieves a single stop by its UUID primary key.
	// Returns domain.ErrNotFound if no stop with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error)

	// List returns all stops ordered by name ascending.
	List(ctx context.Context) ([]domain.Stop, error)

	// Update overwrites the mutable fields of an existing stop and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// Delete removes a stop by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

func (r *pgStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		INSERT INTO bus_stops (name, latitude, longitude)
		VALUES (@name, @latitude, @longitude)
		RETURNING id, name, latitude, longitude, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":      stop.Name,
		"latitude":  stop.Latitude, // nil becomes NULL
		"longitude": stop.Longitude,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error) {
	const q = `
		SELECT id, name, latitude, longitude, created_at, updated_at
		FROM bus_stops
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) List(ctx context.Context) ([]domain.Stop, error) {
	const q = `
		SELECT id, name, latitude, longitude, created_at, updated_at
		FROM bus_stops
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.List: %w", err)
	}
	defer rows.Close()

	var stops []domain.Stop
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.List: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.List: rows: %w", err)
	}

	return stops, nil
}

func (r *pgStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		UPDATE bus_stops
		SET name       = @name,
		    latitude   = @latitude,
		    longitude  = @longitude,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, name, latitude, longitude, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":        stop.ID,
		"name":      stop.Name,
		"latitude":  stop.Latitude,
		"longitude": stop.Longitude,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM bus_stops WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		// 23503 foreign_key_violation: route_stops restricts deleting a stop
		// that is still part of a line's route.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("repo.StopRepo.Delete: %w: stop is part of a bus line route", domain.ErrBusinessRule)
		}
		return fmt.Errorf("repo.StopRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StopRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanStop maps a single database row into a domain.Stop.
// It handles the UUID and nullable latitude/longitude conversions.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		st  domain.Stop
		id  pgtype.UUID
		lat pgtype.Float8
		lng pgtype.Float8
	)

	err := s.Scan(&id, &st.Name, &lat, &lng, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}

	st.ID = uuid.UUID(id.Bytes)
	if lat.Valid {
		v := lat.Float64
		st.Latitude = &v
	}
	if lng.Valid {
		v := lng.Float64
		st.Longitude = &v
	}

	return st, nil
}
