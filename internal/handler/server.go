// Package handler implements the HTTP handlers for the bus ticketing API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (stop.go, line.go, etc.) but all share the same Server struct so they
// can access its dependencies. Routes assembles them into a chi router.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
)

// The servicer interfaces define the business operations the handlers depend
// on. Defining them here (in the consumer package) follows the Go convention:
// "accept interfaces, return concrete types". It lets handler tests inject a
// mock without touching the database or service layer.

// StopServicer defines the business operations the stop handlers depend on.
type StopServicer interface {
	List(ctx context.Context) ([]domain.Stop, error)
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LineServicer defines the business operations the line handlers depend on,
// including the route replace and the retirement-policy delete.
type LineServicer interface {
	List(ctx context.Context) ([]domain.LineDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.LineDetail, error)
	Create(ctx context.Context, line domain.Line) (domain.LineDetail, error)
	Update(ctx context.Context, line domain.Line) (domain.LineDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetRoute(ctx context.Context, lineID uuid.UUID, stopIDs []uuid.UUID) (domain.LineDetail, error)
	GetRoute(ctx context.Context, lineID uuid.UUID) ([]domain.RouteStop, error)
}

// CategoryServicer defines the business operations the category handlers depend on.
type CategoryServicer interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, cat domain.Category) (domain.Category, error)
	Update(ctx context.Context, cat domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TicketServicer defines the ticket lifecycle operations the handlers depend on.
type TicketServicer interface {
	Find(ctx context.Context, filter domain.TicketFilter, page domain.PaginationParams) ([]domain.Ticket, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Ticket, error)
	Purchase(ctx context.Context, in domain.TicketPurchase) (domain.Ticket, error)
	Renew(ctx context.Context, id uuid.UUID) (domain.Ticket, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

// Server holds the service dependencies for all API endpoints.
type Server struct {
	stops      StopServicer
	lines      LineServicer
	categories CategoryServicer
	tickets    TicketServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(stops StopServicer, lines LineServicer, categories CategoryServicer, tickets TicketServicer) *Server {
	return &Server{stops: stops, lines: lines, categories: categories, tickets: tickets}
}

// Routes returns the API router. Paths mirror the resource surface:
// /api/bus-stops, /api/bus-lines (with /route subresource),
// /api/ticket-categories, /api/tickets, plus /healthz.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api/bus-stops", func(r chi.Router) {
		r.Get("/", s.ListStops)
		r.Post("/", s.CreateStop)
		r.Put("/{id}", s.UpdateStop)
		r.Delete("/{id}", s.DeleteStop)
	})

	r.Route("/api/bus-lines", func(r chi.Router) {
		r.Get("/", s.ListLines)
		r.Post("/", s.CreateLine)
		r.Get("/{id}", s.GetLine)
		r.Put("/{id}", s.UpdateLine)
		r.Delete("/{id}", s.DeleteLine)
		r.Put("/{id}/route", s.SetLineRoute)
		r.Get("/{id}/route", s.GetLineRoute)
	})

	r.Route("/api/ticket-categories", func(r chi.Router) {
		r.Get("/", s.ListCategories)
		r.Post("/", s.CreateCategory)
		r.Put("/{id}", s.UpdateCategory)
		r.Delete("/{id}", s.DeleteCategory)
	})

	r.Route("/api/tickets", func(r chi.Router) {
		r.Get("/", s.ListTickets)
		r.Post("/", s.PurchaseTicket)
		r.Get("/{id}", s.GetTicket)
		r.Post("/{id}/renew", s.RenewTicket)
		r.Delete("/{id}", s.CancelTicket)
	})

	return r
}
