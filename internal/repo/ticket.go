package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
)

// ticketColumns is the joined read used by every ticket query: the category
// name and duration ride along so renewals and responses never need a second
// fetch, and the line name is LEFT JOINed because tickets may be line-agnostic.
const ticketColumns = `
	t.id, t.passenger_name, t.passenger_email, t.category_id, t.line_id,
	t.purchase_date, t.valid_from, t.expiration_date, t.active,
	t.created_at, t.updated_at,
	c.name, c.duration_days, l.name`

// TicketRepo defines the persistence operations for tickets.
// Tickets are never hard-deleted; cancellation is an update.
type TicketRepo interface {
	// Create inserts a new ticket and returns the persisted record with its
	// category and line joins populated.
	Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)

	// GetByID retrieves a single ticket by its UUID primary key.
	// Returns domain.ErrNotFound if no ticket with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Ticket, error)

	// Update overwrites the lifecycle fields (valid_from, expiration_date,
	// purchase_date, active) of an existing ticket and returns the updated
	// record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)

	// FindFiltered returns one page of tickets matching the filter, plus the
	// total number of matching rows. Omitted filter fields impose no constraint.
	FindFiltered(ctx context.Context, filter domain.TicketFilter, page domain.PaginationParams) ([]domain.Ticket, int64, error)

	// ExistsActiveByLineID reports whether any active ticket references the line.
	ExistsActiveByLineID(ctx context.Context, lineID uuid.UUID) (bool, error)
}

// pgTicketRepo is the Postgres implementation of TicketRepo.
type pgTicketRepo struct {
	db db
}

// NewTicketRepo constructs a TicketRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTicketRepo(db db) TicketRepo {
	return &pgTicketRepo{db: db}
}

func (r *pgTicketRepo) Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	// INSERT ... RETURNING cannot join, so re-read the row through GetByID
	// to populate the category/line join columns.
	const q = `
		INSERT INTO tickets
			(passenger_name, passenger_email, category_id, line_id,
			 purchase_date, valid_from, expiration_date, active)
		VALUES
			(@passenger_name, @passenger_email, @category_id, @line_id,
			 @purchase_date, @valid_from, @expiration_date, @active)
		RETURNING id`

	args := pgx.NamedArgs{
		"passenger_name":  ticket.PassengerName,
		"passenger_email": ticket.PassengerEmail,
		"category_id":     ticket.CategoryID,
		"line_id":         ticket.LineID, // nil becomes NULL
		"purchase_date":   ticket.PurchaseDate,
		"valid_from":      ticket.ValidFrom,
		"expiration_date": ticket.ExpirationDate,
		"active":          ticket.Active,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.Create: %w", err)
	}
	return r.GetByID(ctx, uuid.UUID(id.Bytes))
}

func (r *pgTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Ticket, error) {
	q := `SELECT` + ticketColumns + `
		FROM tickets t
		JOIN ticket_categories c ON c.id = t.category_id
		LEFT JOIN bus_lines l ON l.id = t.line_id
		WHERE t.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTicket(row)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTicketRepo) Update(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	const q = `
		UPDATE tickets
		SET valid_from      = @valid_from,
		    expiration_date = @expiration_date,
		    purchase_date   = @purchase_date,
		    active          = @active,
		    updated_at      = now()
		WHERE id = @id
		RETURNING id`

	args := pgx.NamedArgs{
		"id":              ticket.ID,
		"valid_from":      ticket.ValidFrom,
		"expiration_date": ticket.ExpirationDate,
		"purchase_date":   ticket.PurchaseDate,
		"active":          ticket.Active,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.Update: %w", domain.ErrNotFound)
		}
		return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.Update: %w", err)
	}
	return r.GetByID(ctx, uuid.UUID(id.Bytes))
}

// ticketSortColumns whitelists the sortable fields. Mapping request names to
// columns here keeps the raw sort string out of the SQL text entirely.
var ticketSortColumns = map[string]string{
	"purchaseDate":   "t.purchase_date",
	"expirationDate": "t.expiration_date",
	"passengerEmail": "t.passenger_email",
}

// orderClause resolves the opaque sort expression ("field" or "field,desc")
// against the whitelist, defaulting to purchase date descending.
func orderClause(sort string) string {
	col, dir := "t.purchase_date", "DESC"
	field, rest, hasDir := strings.Cut(sort, ",")
	if c, ok := ticketSortColumns[strings.TrimSpace(field)]; ok {
		col = c
		dir = "ASC"
		if hasDir && strings.EqualFold(strings.TrimSpace(rest), "desc") {
			dir = "DESC"
		}
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, dir)
}

// FindFiltered composes a WHERE clause from only the filters that are
// present, then runs a COUNT and a page query over the same predicates.
func (r *pgTicketRepo) FindFiltered(ctx context.Context, filter domain.TicketFilter, page domain.PaginationParams) ([]domain.Ticket, int64, error) {
	var conds []string
	args := pgx.NamedArgs{}

	if filter.Email != nil {
		conds = append(conds, "t.passenger_email = @email")
		args["email"] = *filter.Email
	}
	if filter.Active != nil {
		conds = append(conds, "t.active = @active")
		args["active"] = *filter.Active
	}
	if filter.LineID != nil {
		conds = append(conds, "t.line_id = @line_id")
		args["line_id"] = *filter.LineID
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countQ := `SELECT count(*) FROM tickets t` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TicketRepo.FindFiltered: count: %w", err)
	}

	pageQ := `SELECT` + ticketColumns + `
		FROM tickets t
		JOIN ticket_categories c ON c.id = t.category_id
		LEFT JOIN bus_lines l ON l.id = t.line_id` +
		where + orderClause(page.Sort) + `
		LIMIT @limit OFFSET @offset`
	args["limit"] = page.Limit
	args["offset"] = page.Offset()

	rows, err := r.db.Query(ctx, pageQ, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TicketRepo.FindFiltered: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TicketRepo.FindFiltered: scan: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TicketRepo.FindFiltered: rows: %w", err)
	}

	return tickets, total, nil
}

func (r *pgTicketRepo) ExistsActiveByLineID(ctx context.Context, lineID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM tickets
			WHERE line_id = @line_id AND active = true
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"line_id": lineID}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.TicketRepo.ExistsActiveByLineID: %w", err)
	}
	return exists, nil
}

// scanTicket maps a single joined database row into a domain.Ticket.
// It handles the UUID conversions and the nullable line reference.
func scanTicket(s scanner) (domain.Ticket, error) {
	var (
		t        domain.Ticket
		id       pgtype.UUID
		catID    pgtype.UUID
		lineID   pgtype.UUID
		lineName pgtype.Text
	)

	err := s.Scan(
		&id, &t.PassengerName, &t.PassengerEmail, &catID, &lineID,
		&t.PurchaseDate, &t.ValidFrom, &t.ExpirationDate, &t.Active,
		&t.CreatedAt, &t.UpdatedAt,
		&t.CategoryName, &t.DurationDays, &lineName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Ticket{}, domain.ErrNotFound
		}
		return domain.Ticket{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.CategoryID = uuid.UUID(catID.Bytes)
	if lineID.Valid {
		lid := uuid.UUID(lineID.Bytes)
		t.LineID = &lid
	}
	if lineName.Valid {
		name := lineName.String
		t.LineName = &name
	}

	return t, nil
}
