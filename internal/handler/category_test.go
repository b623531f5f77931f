package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
	"github.com/mstojanov/bus-ticketing/backend/internal/handler"
)

// mockCategoryServicer is a test double for handler.CategoryServicer.
type mockCategoryServicer struct {
	list   func(ctx context.Context) ([]domain.Category, error)
	create func(ctx context.Context, cat domain.Category) (domain.Category, error)
	update func(ctx context.Context, cat domain.Category) (domain.Category, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCategoryServicer) List(ctx context.Context) ([]domain.Category, error) {
	return m.list(ctx)
}
func (m *mockCategoryServicer) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	return m.create(ctx, c)
}
func (m *mockCategoryServicer) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	return m.update(ctx, c)
}
func (m *mockCategoryServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.CategoryServicer = (*mockCategoryServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func newCategoryHandler(svc handler.CategoryServicer) http.Handler {
	return handler.NewServer(nil, nil, svc, nil).Routes()
}

func categoryFixture() domain.Category {
	return domain.Category{
		ID:           uuid.New(),
		Name:         "Monthly",
		DurationDays: 30,
		Price:        45.00,
		Description:  "30-day pass",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

// ---- GET /api/ticket-categories --------------------------------------------

func TestListCategories_200(t *testing.T) {
	cats := []domain.Category{categoryFixture(), categoryFixture()}
	svc := &mockCategoryServicer{
		list: func(_ context.Context) ([]domain.Category, error) { return cats, nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ticket-categories", nil)
	rec := httptest.NewRecorder()

	newCategoryHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, float64(30), resp[0]["durationDays"])
	assert.Equal(t, 45.00, resp[0]["price"])
}

// ---- POST /api/ticket-categories -------------------------------------------

func TestCreateCategory_201(t *testing.T) {
	fixture := categoryFixture()
	svc := &mockCategoryServicer{
		create: func(_ context.Context, c domain.Category) (domain.Category, error) {
			assert.Equal(t, "Monthly", c.Name)
			assert.Equal(t, 30, c.DurationDays)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":         "Monthly",
		"durationDays": 30,
		"price":        45.00,
		"description":  "30-day pass",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ticket-categories", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newCategoryHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateCategory_201_SingleRide(t *testing.T) {
	fixture := categoryFixture()
	fixture.Name = "Single Ride"
	fixture.DurationDays = 0
	svc := &mockCategoryServicer{
		create: func(_ context.Context, c domain.Category) (domain.Category, error) {
			assert.Equal(t, 0, c.DurationDays)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":         "Single Ride",
		"durationDays": 0,
		"price":        1.20,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ticket-categories", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newCategoryHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateCategory_422_NegativeValues(t *testing.T) {
	svc := &mockCategoryServicer{}

	body := jsonBody(t, map[string]any{
		"name":         "Broken",
		"durationDays": -1,
		"price":        -5.0,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ticket-categories", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newCategoryHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "durationDays")
	assert.Contains(t, rec.Body.String(), "price")
}

// ---- PUT /api/ticket-categories/{id} ---------------------------------------

func TestUpdateCategory_200(t *testing.T) {
	fixture := categoryFixture()
	fixture.Price = 50.00
	svc := &mockCategoryServicer{
		update: func(_ context.Context, c domain.Category) (domain.Category, error) {
			assert.Equal(t, fixture.ID, c.ID)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":         "Monthly",
		"durationDays": 30,
		"price":        50.00,
	})

	req := httptest.NewRequest(http.MethodPut, "/api/ticket-categories/"+fixture.ID.String(), body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newCategoryHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 50.00, resp["price"])
}

func TestUpdateCategory_404(t *testing.T) {
	svc := &mockCategoryServicer{
		update: func(_ context.Context, c domain.Category) (domain.Category, error) {
			return domain.Category{}, &domain.NotFoundError{Resource: "ticket category", ID: c.ID}
		},
	}

	body := jsonBody(t, map[string]any{"name": "Monthly", "durationDays": 30, "price": 45.0})

	req := httptest.NewRequest(http.MethodPut, "/api/ticket-categories/"+uuid.New().String(), body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newCategoryHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /api/ticket-categories/{id} ------------------------------------

func TestDeleteCategory_204(t *testing.T) {
	svc := &mockCategoryServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/ticket-categories/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	newCategoryHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
