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

// CategoryRepo defines the persistence operations for ticket categories.
type CategoryRepo interface {
	// Create inserts a new category and returns the persisted record.
	Create(ctx context.Context, cat domain.Category) (domain.Category, error)

	// GetByID retrieves a single category by its UUID primary key.
	// Returns domain.ErrNotFound if no category with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error)

	// List returns all categories ordered by duration_days ascending.
	List(ctx context.Context) ([]domain.Category, error)

	// Update overwrites the mutable fields of an existing category and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, cat domain.Category) (domain.Category, error)

	// Delete removes a category by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgCategoryRepo is the Postgres implementation of CategoryRepo.
type pgCategoryRepo struct {
	db db
}

// NewCategoryRepo constructs a CategoryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCategoryRepo(db db) CategoryRepo {
	return &pgCategoryRepo{db: db}
}

func (r *pgCategoryRepo) Create(ctx context.Context, cat domain.Category) (domain.Category, error) {
	const q = `
		INSERT INTO ticket_categories (name, duration_days, price, description)
		VALUES (@name, @duration_days, @price, @description)
		RETURNING id, name, duration_days, price, description, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":          cat.Name,
		"duration_days": cat.DurationDays,
		"price":         cat.Price,
		"description":   cat.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	const q = `
		SELECT id, name, duration_days, price, description, created_at, updated_at
		FROM ticket_categories
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
		SELECT id, name, duration_days, price, description, created_at, updated_at
		FROM ticket_categories
		ORDER BY duration_days ASC, name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: %w", err)
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CategoryRepo.List: scan: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: rows: %w", err)
	}

	return cats, nil
}

func (r *pgCategoryRepo) Update(ctx context.Context, cat domain.Category) (domain.Category, error) {
	const q = `
		UPDATE ticket_categories
		SET name          = @name,
		    duration_days = @duration_days,
		    price         = @price,
		    description   = @description,
		    updated_at    = now()
		WHERE id = @id
		RETURNING id, name, duration_days, price, description, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":            cat.ID,
		"name":          cat.Name,
		"duration_days": cat.DurationDays,
		"price":         cat.Price,
		"description":   cat.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM ticket_categories WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CategoryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CategoryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanCategory maps a single database row into a domain.Category.
// price is NUMERIC(10,2) in the schema; pgtype.Numeric carries it losslessly
// and Float64Value converts it for the domain type.
func scanCategory(s scanner) (domain.Category, error) {
	var (
		c     domain.Category
		id    pgtype.UUID
		price pgtype.Numeric
	)

	err := s.Scan(&id, &c.Name, &c.DurationDays, &price, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	f, err := price.Float64Value()
	if err != nil {
		return domain.Category{}, fmt.Errorf("price: %w", err)
	}
	c.Price = f.Float64

	return c, nil
}
