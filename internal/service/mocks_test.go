package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
	"github.com/mstojanov/bus-ticketing/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces, shared by every service
// test in this package. Each method is a function field; set only the ones
// your test needs; an unset method panics, which immediately exposes a test
// exercising a path it did not mean to.

type mockStopRepo struct {
	create  func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Stop, error)
	list    func(ctx context.Context) ([]domain.Stop, error)
	update  func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStopRepo) Create(ctx context.Context, s domain.Stop) (domain.Stop, error) {
	return m.create(ctx, s)
}
func (m *mockStopRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error) {
	return m.getByID(ctx, id)
}
func (m *mockStopRepo) List(ctx context.Context) ([]domain.Stop, error) { return m.list(ctx) }
func (m *mockStopRepo) Update(ctx context.Context, s domain.Stop) (domain.Stop, error) {
	return m.update(ctx, s)
}
func (m *mockStopRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

var _ repo.StopRepo = (*mockStopRepo)(nil)

type mockLineRepo struct {
	create     func(ctx context.Context, line domain.Line) (domain.Line, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Line, error)
	list       func(ctx context.Context) ([]domain.Line, error)
	update     func(ctx context.Context, line domain.Line) (domain.Line, error)
	deactivate func(ctx context.Context, id uuid.UUID) error
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockLineRepo) Create(ctx context.Context, l domain.Line) (domain.Line, error) {
	return m.create(ctx, l)
}
func (m *mockLineRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Line, error) {
	return m.getByID(ctx, id)
}
func (m *mockLineRepo) List(ctx context.Context) ([]domain.Line, error) { return m.list(ctx) }
func (m *mockLineRepo) Update(ctx context.Context, l domain.Line) (domain.Line, error) {
	return m.update(ctx, l)
}
func (m *mockLineRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.deactivate(ctx, id)
}
func (m *mockLineRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

var _ repo.LineRepo = (*mockLineRepo)(nil)

type mockRouteRepo struct {
	replace      func(ctx context.Context, lineID uuid.UUID, stopIDs []uuid.UUID) error
	listByLineID func(ctx context.Context, lineID uuid.UUID) ([]domain.RouteStop, error)
}

func (m *mockRouteRepo) Replace(ctx context.Context, lineID uuid.UUID, stopIDs []uuid.UUID) error {
	return m.replace(ctx, lineID, stopIDs)
}
func (m *mockRouteRepo) ListByLineID(ctx context.Context, lineID uuid.UUID) ([]domain.RouteStop, error) {
	return m.listByLineID(ctx, lineID)
}

var _ repo.RouteRepo = (*mockRouteRepo)(nil)

type mockCategoryRepo struct {
	create  func(ctx context.Context, cat domain.Category) (domain.Category, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Category, error)
	list    func(ctx context.Context) ([]domain.Category, error)
	update  func(ctx context.Context, cat domain.Category) (domain.Category, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	return m.create(ctx, c)
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	return m.getByID(ctx, id)
}
func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return m.list(ctx)
}
func (m *mockCategoryRepo) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	return m.update(ctx, c)
}
func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

var _ repo.CategoryRepo = (*mockCategoryRepo)(nil)

type mockTicketRepo struct {
	create               func(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	getByID              func(ctx context.Context, id uuid.UUID) (domain.Ticket, error)
	update               func(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	findFiltered         func(ctx context.Context, filter domain.TicketFilter, page domain.PaginationParams) ([]domain.Ticket, int64, error)
	existsActiveByLineID func(ctx context.Context, lineID uuid.UUID) (bool, error)
}

func (m *mockTicketRepo) Create(ctx context.Context, t domain.Ticket) (domain.Ticket, error) {
	return m.create(ctx, t)
}
func (m *mockTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Ticket, error) {
	return m.getByID(ctx, id)
}
func (m *mockTicketRepo) Update(ctx context.Context, t domain.Ticket) (domain.Ticket, error) {
	return m.update(ctx, t)
}
func (m *mockTicketRepo) FindFiltered(ctx context.Context, f domain.TicketFilter, p domain.PaginationParams) ([]domain.Ticket, int64, error) {
	return m.findFiltered(ctx, f, p)
}
func (m *mockTicketRepo) ExistsActiveByLineID(ctx context.Context, lineID uuid.UUID) (bool, error) {
	return m.existsActiveByLineID(ctx, lineID)
}

var _ repo.TicketRepo = (*mockTicketRepo)(nil)
