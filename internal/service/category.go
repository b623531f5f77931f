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

// CategoryService implements business logic for ticket category operations.
type CategoryService struct {
	categories repo.CategoryRepo
}

// NewCategoryService constructs a CategoryService backed by the provided CategoryRepo.
func NewCategoryService(categories repo.CategoryRepo) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns all categories.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CategoryService.List: %w", err)
	}
	if cats == nil {
		return []domain.Category{}, nil
	}
	return cats, nil
}

// Create validates and persists a new category.
// Returns domain.ErrValidation if input violates business rules.
func (s *CategoryService) Create(ctx context.Context, cat domain.Category) (domain.Category, error) {
	if err := validateCategory(cat); err != nil {
		return domain.Category{}, err
	}
	result, err := s.categories.Create(ctx, cat)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.Create: %w", err)
	}
	return result, nil
}

// Update validates and persists changes to an existing category.
// Returns domain.ErrValidation for invalid input, a domain.NotFoundError if
// the category does not exist.
func (s *CategoryService) Update(ctx context.Context, cat domain.Category) (domain.Category, error) {
	if err := validateCategory(cat); err != nil {
		return domain.Category{}, err
	}
	result, err := s.categories.Update(ctx, cat)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Category{}, &domain.NotFoundError{Resource: "ticket category", ID: cat.ID}
		}
		return domain.Category{}, fmt.Errorf("service.CategoryService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a category by ID.
// Returns a domain.NotFoundError if the category does not exist.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Resource: "ticket category", ID: id}
		}
		return fmt.Errorf("service.CategoryService.Delete: %w", err)
	}
	return nil
}

// validateCategory enforces rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - DurationDays must be >= 0 (0 marks a single-ride category).
//   - Price must be >= 0.
func validateCategory(cat domain.Category) error {
	if strings.TrimSpace(cat.Name) == "" {
		return fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}
	if cat.DurationDays < 0 {
		return fmt.Errorf("%w: duration days must be >= 0", domain.ErrValidation)
	}
	if cat.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", domain.ErrValidation)
	}
	return nil
}
