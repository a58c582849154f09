package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geek-records/support-desk/internal/domain"
)

// TicketFilter restricts ticket listings. OwnerID narrows to one submitter;
// listings are always ordered created_at descending.
type TicketFilter struct {
	OwnerID *string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, caller Caller, filter TicketFilter) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, caller Caller, id string, status domain.TicketStatus) (*domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (subject, content, priority, status, user_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Subject,
		ticket.Content,
		ticket.Priority,
		ticket.Status,
		ticket.UserID,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, subject, content, priority, status, user_id, created_at
        FROM tickets WHERE id=$1`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Subject,
		&ticket.Content,
		&ticket.Priority,
		&ticket.Status,
		&ticket.UserID,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// List returns tickets newest first. Non-admin callers are constrained to
// their own rows regardless of the filter supplied.
func (r *ticketRepository) List(ctx context.Context, caller Caller, filter TicketFilter) ([]domain.Ticket, error) {
	const query = `
        SELECT id, subject, content, priority, status, user_id, created_at
        FROM tickets
        WHERE ($1 OR user_id=$2)
          AND ($3::uuid IS NULL OR user_id=$3)
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, caller.Admin, caller.ID, filter.OwnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// UpdateStatus overwrites the status field, last writer wins. The caller
// predicate refuses the write for non-admins even if the service-level policy
// check was somehow bypassed.
func (r *ticketRepository) UpdateStatus(ctx context.Context, caller Caller, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	const query = `
        UPDATE tickets SET status=$1
        WHERE id=$2 AND $3
        RETURNING id, subject, content, priority, status, user_id, created_at`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, status, id, caller.Admin).Scan(
		&ticket.ID,
		&ticket.Subject,
		&ticket.Content,
		&ticket.Priority,
		&ticket.Status,
		&ticket.UserID,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Subject,
			&ticket.Content,
			&ticket.Priority,
			&ticket.Status,
			&ticket.UserID,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
