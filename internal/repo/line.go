package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
)

// LineRepo defines the persistence operations for bus lines.
type LineRepo interface {
	// Create inserts a new line (active by default) and returns the persisted record.
	Create(ctx context.Context, line domain.Line) (domain.Line, error)

	// GetByID retrieves a single line by its UUID primary key.
	// Returns domain.ErrNotFound if no line with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Line, error)

	// List returns all lines ordered by name ascending.
	List(ctx context.Context) ([]domain.Line, error)

	// Update overwrites name and description of an existing line and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, line domain.Line) (domain.Line, error)

	// Deactivate sets active=false on a line, keeping the row.
	// Returns domain.ErrNotFound if it does not exist.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// Delete hard-deletes a line by ID; its route entries go with it.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgLineRepo is the Postgres implementation of LineRepo.
type pgLineRepo struct {
	db db
}

// NewLineRepo constructs a LineRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLineRepo(db db) LineRepo {
	return &pgLineRepo{db: db}
}

func (r *pgLineRepo) Create(ctx context.Context, line domain.Line) (domain.Line, error) {
	const q = `
		INSERT INTO bus_lines (name, description)
		VALUES (@name, @description)
		RETURNING id, name, description, active, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":        line.Name,
		"description": line.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLine(row)
	if err != nil {
		return domain.Line{}, fmt.Errorf("repo.LineRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgLineRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Line, error) {
	const q = `
		SELECT id, name, description, active, created_at, updated_at
		FROM bus_lines
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanLine(row)
	if err != nil {
		return domain.Line{}, fmt.Errorf("repo.LineRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgLineRepo) List(ctx context.Context) ([]domain.Line, error) {
	const q = `
		SELECT id, name, description, active, created_at, updated_at
		FROM bus_lines
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.LineRepo.List: %w", err)
	}
	defer rows.Close()

	var lines []domain.Line
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LineRepo.List: scan: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LineRepo.List: rows: %w", err)
	}

	return lines, nil
}

func (r *pgLineRepo) Update(ctx context.Context, line domain.Line) (domain.Line, error) {
	const q = `
		UPDATE bus_lines
		SET name        = @name,
		    description = @description,
		    updated_at  = now()
		WHERE id = @id
		RETURNING id, name, description, active, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":          line.ID,
		"name":        line.Name,
		"description": line.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLine(row)
	if err != nil {
		return domain.Line{}, fmt.Errorf("repo.LineRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgLineRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	const q = `
		UPDATE bus_lines
		SET active = false, updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.LineRepo.Deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LineRepo.Deactivate: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgLineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// route_stops rows are removed by the ON DELETE CASCADE on line_id;
	// inactive tickets keep their rows with line_id set to NULL (SET NULL).
	const q = `DELETE FROM bus_lines WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.LineRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LineRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanLine maps a single database row into a domain.Line.
func scanLine(s scanner) (domain.Line, error) {
	var (
		l  domain.Line
		id pgtype.UUID
	)

	err := s.Scan(&id, &l.Name, &l.Description, &l.Active, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Line{}, domain.ErrNotFound
		}
		return domain.Line{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	return l, nil
}
