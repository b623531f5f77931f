package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
)

// purchaseRequest is the JSON body for purchasing a ticket.
// Email format is enforced by the openapi Email type's unmarshaller.
// busLineId is optional (nil means a line-agnostic ticket); validFrom
// defaults to the purchase instant when omitted.
type purchaseRequest struct {
	PassengerName  string              `json:"passengerName"`
	PassengerEmail openapi_types.Email `json:"passengerEmail"`
	CategoryID     uuid.UUID           `json:"categoryId"`
	BusLineID      *uuid.UUID          `json:"busLineId"`
	ValidFrom      *time.Time          `json:"validFrom"`
}

// ticketResponse is the JSON representation of a ticket. Expired and
// DaysRemaining are derived from the expiration date at response time, never
// stored.
type ticketResponse struct {
	ID             uuid.UUID  `json:"id"`
	PassengerName  string     `json:"passengerName"`
	PassengerEmail string     `json:"passengerEmail"`
	CategoryID     uuid.UUID  `json:"categoryId"`
	CategoryName   string     `json:"categoryName"`
	BusLineID      *uuid.UUID `json:"busLineId,omitempty"`
	BusLineName    *string    `json:"busLineName,omitempty"`
	PurchaseDate   time.Time  `json:"purchaseDate"`
	ValidFrom      time.Time  `json:"validFrom"`
	ExpirationDate time.Time  `json:"expirationDate"`
	Active         bool       `json:"active"`
	Expired        bool       `json:"expired"`
	DaysRemaining  int        `json:"daysRemaining"`
}

// ticketPageResponse is the paginated envelope for ticket listings.
type ticketPageResponse struct {
	Items []ticketResponse `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int64            `json:"total"`
}

func toTicketResponse(t domain.Ticket, now time.Time) ticketResponse {
	return ticketResponse{
		ID:             t.ID,
		PassengerName:  t.PassengerName,
		PassengerEmail: t.PassengerEmail,
		CategoryID:     t.CategoryID,
		CategoryName:   t.CategoryName,
		BusLineID:      t.LineID,
		BusLineName:    t.LineName,
		PurchaseDate:   t.PurchaseDate,
		ValidFrom:      t.ValidFrom,
		ExpirationDate: t.ExpirationDate,
		Active:         t.Active,
		Expired:        t.Expired(now),
		DaysRemaining:  t.DaysRemaining(now),
	}
}

func (req purchaseRequest) violations() []FieldViolation {
	var fields []FieldViolation
	if strings.TrimSpace(req.PassengerName) == "" {
		fields = append(fields, FieldViolation{Field: "passengerName", Message: "must not be blank"})
	}
	if req.PassengerEmail == "" {
		fields = append(fields, FieldViolation{Field: "passengerEmail", Message: "must not be blank"})
	}
	if req.CategoryID == uuid.Nil {
		fields = append(fields, FieldViolation{Field: "categoryId", Message: "must be provided"})
	}
	return fields
}

// ListTickets handles GET /api/tickets with optional filters
// (email, active, busLineId) and pagination (page, limit, sort).
func (s *Server) ListTickets(w http.ResponseWriter, r *http.Request) {
	active, err := queryBool(r, "active")
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	filter := domain.TicketFilter{
		Email:  queryString(r, "email"),
		Active: active,
	}
	if raw := queryString(r, "busLineId"); raw != nil {
		lineID, err := uuid.Parse(*raw)
		if err != nil {
			writeJSON(w, r, http.StatusBadRequest, requestBody("invalid busLineId"))
			return
		}
		filter.LineID = &lineID
	}
	page := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"), queryString(r, "sort"))

	tickets, total, err := s.tickets.Find(r.Context(), filter, page)
	if err != nil {
		s.writeServiceError(w, r, err, "tickets not found")
		return
	}

	now := time.Now().UTC()
	items := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, toTicketResponse(t, now))
	}
	writeJSON(w, r, http.StatusOK, ticketPageResponse{
		Items: items,
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	})
}

// GetTicket handles GET /api/tickets/{id}.
func (s *Server) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid ticket id"))
		return
	}
	ticket, err := s.tickets.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "ticket not found")
		return
	}
	writeJSON(w, r, http.StatusOK, toTicketResponse(ticket, time.Now().UTC()))
}

// PurchaseTicket handles POST /api/tickets.
func (s *Server) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}
	if fields := req.violations(); fields != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, validationBody("invalid ticket purchase", fields))
		return
	}

	ticket, err := s.tickets.Purchase(r.Context(), domain.TicketPurchase{
		PassengerName:  strings.TrimSpace(req.PassengerName),
		PassengerEmail: string(req.PassengerEmail),
		CategoryID:     req.CategoryID,
		LineID:         req.BusLineID,
		ValidFrom:      req.ValidFrom,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "ticket not found")
		return
	}
	writeJSON(w, r, http.StatusCreated, toTicketResponse(ticket, time.Now().UTC()))
}

// RenewTicket handles POST /api/tickets/{id}/renew.
func (s *Server) RenewTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid ticket id"))
		return
	}
	ticket, err := s.tickets.Renew(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "ticket not found")
		return
	}
	writeJSON(w, r, http.StatusOK, toTicketResponse(ticket, time.Now().UTC()))
}

// CancelTicket handles DELETE /api/tickets/{id}. The ticket row survives;
// cancellation only flips it inactive.
func (s *Server) CancelTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, requestBody("invalid ticket id"))
		return
	}
	if err := s.tickets.Cancel(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "ticket not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
