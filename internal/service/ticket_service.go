package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/geek-records/support-desk/internal/domain"
	"github.com/geek-records/support-desk/internal/events"
	"github.com/geek-records/support-desk/internal/policy"
	"github.com/geek-records/support-desk/internal/repository"
	apperrors "github.com/geek-records/support-desk/pkg/util"
)

// TicketService is the ticket lifecycle engine. Every mutation consults the
// policy package before touching storage and reports failures as typed
// domain errors.
type TicketService struct {
	tickets    repository.TicketRepository
	responses  repository.TicketResponseRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	ResponseRepo repository.TicketResponseRepository
	Dispatcher   events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Subject  string
	Content  string
	Priority domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		responses:  deps.ResponseRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket opens a new ticket for the caller. Status is always `open`;
// the submitter never chooses it.
func (s *TicketService) CreateTicket(ctx context.Context, profile *domain.Profile, input TicketCreateInput) (*domain.Ticket, error) {
	if !policy.CanCreateTicket(profile) {
		return nil, apperrors.NewForbidden("not allowed to create tickets")
	}

	subject := strings.TrimSpace(input.Subject)
	content := strings.TrimSpace(input.Content)
	if subject == "" || content == "" {
		return nil, apperrors.NewValidationError("subject and content required", nil)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}

	ticket := &domain.Ticket{
		Subject:  subject,
		Content:  content,
		Priority: priority,
		Status:   domain.TicketStatusOpen,
		UserID:   profile.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actorFor(profile),
		Payload: events.TicketCreatedPayload{
			Subject:  ticket.Subject,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets visible to the caller, newest first. Admins see
// the full table; everyone else only their own rows. The scoping happens in
// the query, not as a display filter.
func (s *TicketService) ListTickets(ctx context.Context, profile *domain.Profile) ([]domain.Ticket, error) {
	if profile == nil {
		return nil, apperrors.NewUnauthenticated("no active session")
	}

	filter := repository.TicketFilter{}
	if !policy.CanListAllTickets(profile) {
		ownerID := profile.ID
		filter.OwnerID = &ownerID
	}

	tickets, err := s.tickets.List(ctx, repository.CallerFor(profile), filter)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return tickets, nil
}

// GetTicketDetail fetches one ticket, enforcing view access.
func (s *TicketService) GetTicketDetail(ctx context.Context, profile *domain.Profile, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewTicket(profile, ticket) {
		return nil, apperrors.NewForbidden("not allowed to view this ticket")
	}
	return ticket, nil
}

// ListResponses returns the ticket's thread in chronological order. The
// caller must be able to view the ticket itself.
func (s *TicketService) ListResponses(ctx context.Context, profile *domain.Profile, ticketID string) ([]domain.TicketResponse, error) {
	if _, err := s.GetTicketDetail(ctx, profile, ticketID); err != nil {
		return nil, err
	}
	responses, err := s.responses.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return responses, nil
}

// AddResponse appends to the ticket thread. The owner is refused on a closed
// ticket; an admin never is.
func (s *TicketService) AddResponse(ctx context.Context, profile *domain.Profile, ticketID, content string) (*domain.TicketResponse, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanRespond(profile, ticket) {
		return nil, apperrors.NewForbidden("not allowed to respond to this ticket")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}

	response := &domain.TicketResponse{
		TicketID: ticket.ID,
		Content:  content,
	}
	if err := s.responses.Create(ctx, repository.CallerFor(profile), response); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketResponseAdded,
		TicketID: ticket.ID,
		Actor:    actorFor(profile),
		Payload: events.TicketResponseAddedPayload{
			ResponseID:     response.ID,
			ContentPreview: stringPreview(response.Content, 120),
		},
	})
	return response, nil
}

// UpdateStatus moves a ticket to any of the four states. Admin only; there
// are no automatic transitions and no terminal state for the machine itself.
// The write is last-writer-wins by design.
func (s *TicketService) UpdateStatus(ctx context.Context, profile *domain.Profile, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !policy.CanChangeStatus(profile) {
		return nil, apperrors.NewForbidden("only administrators can change ticket status")
	}
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	updated, err := s.tickets.UpdateStatus(ctx, repository.CallerFor(profile), ticket.ID, newStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.NewStorageError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: updated.ID,
		Actor:    actorFor(profile),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.NewStorageError(err)
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(profile *domain.Profile) events.Actor {
	if profile == nil {
		return events.Actor{}
	}
	return events.Actor{ProfileID: profile.ID, Role: profile.Role}
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
