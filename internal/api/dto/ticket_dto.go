package dto

import (
	"time"

	"github.com/geek-records/support-desk/internal/domain"
)

// CreateTicketRequest describes the ticket submission payload.
type CreateTicketRequest struct {
	Subject  string                `json:"subject"`
	Content  string                `json:"content"`
	Priority domain.TicketPriority `json:"priority"`
}

// AddResponseRequest describes a thread reply payload.
type AddResponseRequest struct {
	Content string `json:"content"`
}

// UpdateStatusRequest describes a status change payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketSummary is the list-view shape of a ticket.
type TicketSummary struct {
	ID            string                `json:"id"`
	Subject       string                `json:"subject"`
	Priority      domain.TicketPriority `json:"priority"`
	PriorityLabel string                `json:"priority_label"`
	PriorityClass string                `json:"priority_class"`
	Status        domain.TicketStatus   `json:"status"`
	StatusLabel   string                `json:"status_label"`
	StatusClass   string                `json:"status_class"`
	UserID        string                `json:"user_id"`
	UserEmail     string                `json:"user_email,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// TicketDetailResponse is the detail-view shape of a ticket with its thread.
type TicketDetailResponse struct {
	TicketSummary
	Content   string             `json:"content"`
	Responses []ResponseResponse `json:"responses"`
}

// ResponseResponse is one entry of a ticket thread.
type ResponseResponse struct {
	ID             string      `json:"id"`
	TicketID       string      `json:"ticket_id"`
	Content        string      `json:"content"`
	ResponderID    string      `json:"responder_id"`
	ResponderEmail string      `json:"responder_email,omitempty"`
	ResponderRole  domain.Role `json:"responder_role,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}
