package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
)

// stopRequest is the JSON body for creating or updating a bus stop.
type stopRequest struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// stopResponse is the JSON representation of a bus stop.
type stopResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toStopResponse(s domain.Stop) stopResponse {
	return stopResponse{
		ID:        s.ID,
		Name:      s.Name,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (req stopRequest) violations() []FieldViolation {
	var fields []FieldViolation
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, FieldViolation{Field: "name", Message: "must not be blank"})
	}
	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90) {
		fields = append(fields, FieldViolation{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180) {
		fields = append(fields, FieldViolation{Field: "longitude", Message: "must be between -180 and 180"})
	}
	return fields
}

// ListStops handles GET /api/bus-stops.
func (s *Server) ListStops(w http.ResponseWriter, r *http.Request) {
	stops, err := s.stops.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "bus stops not found")
		return
	}
	resp := make([]stopResponse, 0, len(stops))
	for _, st := range stops {
		resp = append(resp, toStopResponse(st))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// CreateStop handles POST /api/bus-stops.
func (s *Server) CreateStop(w http.ResponseWriter, r *http.Request) {
	var req stopRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}
	if fields := req.violations(); fields != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, validationBody("invalid bus stop", fields))
		return
	}

	stop, err := s.stops.Create(r.Context(), domain.Stop{
		Name:      strings.TrimSpace(req.Name),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "bus stop not found")
		return
	}
	writeJSON(w, r, http.StatusCreated, toStopResponse(stop))
}

// UpdateStop handles PUT /api/bus-stops/{id}.
func (s *Server) UpdateStop(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid bus stop id"))
		return
	}
	var req stopRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}
	if fields := req.violations(); fields != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, validationBody("invalid bus stop", fields))
		return
	}

	stop, err := s.stops.Update(r.Context(), domain.Stop{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "bus stop not found")
		return
	}
	writeJSON(w, r, http.StatusOK, toStopResponse(stop))
}

// DeleteStop handles DELETE /api/bus-stops/{id}.
func (s *Server) DeleteStop(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid bus stop id"))
		return
	}
	if err := s.stops.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "bus stop not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
