package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geek-records/support-desk/internal/domain"
)

// TicketResponseRepository manages the append-only response thread.
type TicketResponseRepository interface {
	Create(ctx context.Context, caller Caller, response *domain.TicketResponse) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketResponse, error)
}

type ticketResponseRepository struct {
	pool *pgxpool.Pool
}

// NewTicketResponseRepository builds repository.
func NewTicketResponseRepository(pool *pgxpool.Pool) TicketResponseRepository {
	return &ticketResponseRepository{pool: pool}
}

// Create inserts a response. The responder column is taken from the caller,
// not the payload, so a response can never be attributed to someone else.
func (r *ticketResponseRepository) Create(ctx context.Context, caller Caller, response *domain.TicketResponse) error {
	const query = `
        INSERT INTO ticket_responses (ticket_id, content, responder_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	response.ResponderID = caller.ID
	return r.pool.QueryRow(ctx, query,
		response.TicketID,
		response.Content,
		response.ResponderID,
	).Scan(&response.ID, &response.CreatedAt)
}

func (r *ticketResponseRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketResponse, error) {
	const query = `
        SELECT id, ticket_id, content, responder_id, created_at
        FROM ticket_responses WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketResponse
	for rows.Next() {
		var response domain.TicketResponse
		if err := rows.Scan(
			&response.ID,
			&response.TicketID,
			&response.Content,
			&response.ResponderID,
			&response.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, response)
	}
	return result, rows.Err()
}
