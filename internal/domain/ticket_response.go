package domain

import "time"

// TicketResponse is one entry in a ticket's append-only thread. Responses are
// never edited or deleted once created.
type TicketResponse struct {
	ID          string
	TicketID    string
	Content     string
	ResponderID string
	CreatedAt   time.Time
}
