package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
)

// categoryRequest is the JSON body for creating or updating a ticket category.
// DurationDays == 0 marks a single-ride category.
type categoryRequest struct {
	Name         string  `json:"name"`
	DurationDays int     `json:"durationDays"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
}

// categoryResponse is the JSON representation of a ticket category.
type categoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DurationDays int       `json:"durationDays"`
	Price        float64   `json:"price"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		DurationDays: c.DurationDays,
		Price:        c.Price,
		Description:  c.Description,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (req categoryRequest) violations() []FieldViolation {
	var fields []FieldViolation
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, FieldViolation{Field: "name", Message: "must not be blank"})
	}
	if req.DurationDays < 0 {
		fields = append(fields, FieldViolation{Field: "durationDays", Message: "must not be negative"})
	}
	if req.Price < 0 {
		fields = append(fields, FieldViolation{Field: "price", Message: "must not be negative"})
	}
	return fields
}

// ListCategories handles GET /api/ticket-categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "ticket categories not found")
		return
	}
	resp := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, toCategoryResponse(c))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// CreateCategory handles POST /api/ticket-categories.
func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}
	if fields := req.violations(); fields != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, validationBody("invalid ticket category", fields))
		return
	}

	cat, err := s.categories.Create(r.Context(), domain.Category{
		Name:         strings.TrimSpace(req.Name),
		DurationDays: req.DurationDays,
		Price:        req.Price,
		Description:  req.Description,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "ticket category not found")
		return
	}
	writeJSON(w, r, http.StatusCreated, toCategoryResponse(cat))
}

// UpdateCategory handles PUT /api/ticket-categories/{id}. Changing a
// category's duration or price never rewrites already-purchased tickets;
// their windows were fixed at purchase time.
func (s *Server) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid ticket category id"))
		return
	}
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}
	if fields := req.violations(); fields != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, validationBody("invalid ticket category", fields))
		return
	}

	cat, err := s.categories.Update(r.Context(), domain.Category{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		DurationDays: req.DurationDays,
		Price:        req.Price,
		Description:  req.Description,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "ticket category not found")
		return
	}
	writeJSON(w, r, http.StatusOK, toCategoryResponse(cat))
}

// DeleteCategory handles DELETE /api/ticket-categories/{id}.
func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid ticket category id"))
		return
	}
	if err := s.categories.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "ticket category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
