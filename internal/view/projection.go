// Package view builds the role-appropriate read models consumed by the list
// and detail screens. It joins stored rows against profiles and resolves the
// display labels; it never mutates anything.
package view

import (
	"context"
	"time"

	"github.com/geek-records/support-desk/internal/domain"
	"github.com/geek-records/support-desk/internal/repository"
	apperrors "github.com/geek-records/support-desk/pkg/util"
)

// TicketView is the display shape of one ticket. OwnerEmail is only filled
// for admin viewers; a user's own list omits it.
type TicketView struct {
	ID            string
	Subject       string
	Content       string
	Priority      domain.TicketPriority
	PriorityLabel string
	PriorityClass string
	Status        domain.TicketStatus
	StatusLabel   string
	StatusClass   string
	UserID        string
	OwnerEmail    string
	CreatedAt     time.Time
}

// ResponseView is the display shape of one thread entry, annotated with the
// responder's email and role.
type ResponseView struct {
	ID             string
	TicketID       string
	Content        string
	ResponderID    string
	ResponderEmail string
	ResponderRole  domain.Role
	CreatedAt      time.Time
}

// Projector joins stored records with profile data.
type Projector struct {
	profiles repository.ProfileRepository
}

// NewProjector constructs the projector.
func NewProjector(profiles repository.ProfileRepository) *Projector {
	return &Projector{profiles: profiles}
}

// ProjectTickets maps tickets to their display shape for the given viewer.
func (p *Projector) ProjectTickets(ctx context.Context, viewer *domain.Profile, tickets []domain.Ticket) ([]TicketView, error) {
	emails := map[string]string{}
	if viewer.IsAdmin() && len(tickets) > 0 {
		ids := make([]string, 0, len(tickets))
		seen := make(map[string]struct{}, len(tickets))
		for i := range tickets {
			if _, ok := seen[tickets[i].UserID]; ok {
				continue
			}
			seen[tickets[i].UserID] = struct{}{}
			ids = append(ids, tickets[i].UserID)
		}
		var err error
		emails, err = p.profiles.EmailsByIDs(ctx, ids)
		if err != nil {
			return nil, apperrors.NewStorageError(err)
		}
	}

	views := make([]TicketView, 0, len(tickets))
	for i := range tickets {
		view := ticketView(&tickets[i])
		if viewer.IsAdmin() {
			view.OwnerEmail = emails[tickets[i].UserID]
		}
		views = append(views, view)
	}
	return views, nil
}

// ProjectTicket maps a single ticket for the given viewer.
func (p *Projector) ProjectTicket(ctx context.Context, viewer *domain.Profile, ticket *domain.Ticket) (TicketView, error) {
	view := ticketView(ticket)
	if viewer.IsAdmin() {
		emails, err := p.profiles.EmailsByIDs(ctx, []string{ticket.UserID})
		if err != nil {
			return TicketView{}, apperrors.NewStorageError(err)
		}
		view.OwnerEmail = emails[ticket.UserID]
	}
	return view, nil
}

// ProjectResponses maps a response thread, preserving its chronological
// order, with responder email and role attached to every entry.
func (p *Projector) ProjectResponses(ctx context.Context, responses []domain.TicketResponse) ([]ResponseView, error) {
	ids := make([]string, 0, len(responses))
	seen := make(map[string]struct{}, len(responses))
	for i := range responses {
		if _, ok := seen[responses[i].ResponderID]; ok {
			continue
		}
		seen[responses[i].ResponderID] = struct{}{}
		ids = append(ids, responses[i].ResponderID)
	}

	emails, err := p.profiles.EmailsByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	roles, err := p.profiles.RolesByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	views := make([]ResponseView, 0, len(responses))
	for i := range responses {
		response := &responses[i]
		views = append(views, ResponseView{
			ID:             response.ID,
			TicketID:       response.TicketID,
			Content:        response.Content,
			ResponderID:    response.ResponderID,
			ResponderEmail: emails[response.ResponderID],
			ResponderRole:  roles[response.ResponderID],
			CreatedAt:      response.CreatedAt,
		})
	}
	return views, nil
}

func ticketView(ticket *domain.Ticket) TicketView {
	return TicketView{
		ID:            ticket.ID,
		Subject:       ticket.Subject,
		Content:       ticket.Content,
		Priority:      ticket.Priority,
		PriorityLabel: PriorityLabel(ticket.Priority),
		PriorityClass: PriorityClass(ticket.Priority),
		Status:        ticket.Status,
		StatusLabel:   StatusLabel(ticket.Status),
		StatusClass:   StatusClass(ticket.Status),
		UserID:        ticket.UserID,
		CreatedAt:     ticket.CreatedAt,
	}
}
