package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
)

// lineRequest is the JSON body for creating or updating a bus line.
// There is no active field: lines start active and are only deactivated by
// the retirement policy on delete.
type lineRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// routeRequest is the JSON body for replacing a line's route: the full
// ordered list of stop ids. The previous route is discarded wholesale.
type routeRequest struct {
	StopIDs []uuid.UUID `json:"stopIds"`
}

// routeStopResponse is one entry of a line's ordered route.
type routeStopResponse struct {
	Order    int       `json:"order"`
	StopID   uuid.UUID `json:"stopId"`
	StopName string    `json:"stopName"`
}

// lineResponse is the JSON representation of a bus line with its route.
type lineResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Active      bool                `json:"active"`
	Route       []routeStopResponse `json:"route"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func toRouteResponse(route []domain.RouteStop) []routeStopResponse {
	resp := make([]routeStopResponse, 0, len(route))
	for _, rs := range route {
		resp = append(resp, routeStopResponse{Order: rs.Position, StopID: rs.StopID, StopName: rs.StopName})
	}
	return resp
}

func toLineResponse(l domain.LineDetail) lineResponse {
	return lineResponse{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Active:      l.Active,
		Route:       toRouteResponse(l.Route),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func (req lineRequest) violations() []FieldViolation {
	if strings.TrimSpace(req.Name) == "" {
		return []FieldViolation{{Field: "name", Message: "must not be blank"}}
	}
	return nil
}

// ListLines handles GET /api/bus-lines.
func (s *Server) ListLines(w http.ResponseWriter, r *http.Request) {
	lines, err := s.lines.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "bus lines not found")
		return
	}
	resp := make([]lineResponse, 0, len(lines))
	for _, l := range lines {
		resp = append(resp, toLineResponse(l))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// GetLine handles GET /api/bus-lines/{id}.
func (s *Server) GetLine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid bus line id"))
		return
	}
	line, err := s.lines.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "bus line not found")
		return
	}
	writeJSON(w, r, http.StatusOK, toLineResponse(line))
}

// CreateLine handles POST /api/bus-lines.
func (s *Server) CreateLine(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}
	if fields := req.violations(); fields != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, validationBody("invalid bus line", fields))
		return
	}

	line, err := s.lines.Create(r.Context(), domain.Line{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "bus line not found")
		return
	}
	writeJSON(w, r, http.StatusCreated, toLineResponse(line))
}

// UpdateLine handles PUT /api/bus-lines/{id}. The route is not touched here;
// it has its own endpoint.
func (s *Server) UpdateLine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid bus line id"))
		return
	}
	var req lineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}
	if fields := req.violations(); fields != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, validationBody("invalid bus line", fields))
		return
	}

	line, err := s.lines.Update(r.Context(), domain.Line{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "bus line not found")
		return
	}
	writeJSON(w, r, http.StatusOK, toLineResponse(line))
}

// DeleteLine handles DELETE /api/bus-lines/{id}. Whether this deactivates or
// hard-deletes depends on whether active tickets still reference the line;
// either way the endpoint responds 204.
func (s *Server) DeleteLine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid bus line id"))
		return
	}
	if err := s.lines.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "bus line not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetLineRoute handles PUT /api/bus-lines/{id}/route, replacing the whole
// route with the given ordered stop list.
func (s *Server) SetLineRoute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid bus line id"))
		return
	}
	var req routeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}

	line, err := s.lines.SetRoute(r.Context(), id, req.StopIDs)
	if err != nil {
		s.writeServiceError(w, r, err, "bus line not found")
		return
	}
	writeJSON(w, r, http.StatusOK, toLineResponse(line))
}

// GetLineRoute handles GET /api/bus-lines/{id}/route.
func (s *Server) GetLineRoute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid bus line id"))
		return
	}
	route, err := s.lines.GetRoute(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "bus line not found")
		return
	}
	writeJSON(w, r, http.StatusOK, toRouteResponse(route))
}
