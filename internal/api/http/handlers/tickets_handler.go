package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/geek-records/support-desk/internal/api/dto"
	"github.com/geek-records/support-desk/internal/domain"
	"github.com/geek-records/support-desk/internal/identity"
	"github.com/geek-records/support-desk/internal/service"
	"github.com/geek-records/support-desk/internal/view"
	apperrors "github.com/geek-records/support-desk/pkg/util"
)

// TicketsHandler exposes the ticket lifecycle operations.
type TicketsHandler struct {
	service   *service.TicketService
	projector *view.Projector
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, projector *view.Projector) *TicketsHandler {
	return &TicketsHandler{service: ticketService, projector: projector}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	profile, ok := identity.ProfileFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no active session")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), profile, service.TicketCreateInput{
		Subject:  req.Subject,
		Content:  req.Content,
		Priority: req.Priority,
	})
	if err != nil {
		return err
	}
	projected, err := h.projector.ProjectTicket(c.UserContext(), profile, ticket)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketSummary(projected)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	profile, ok := identity.ProfileFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no active session")
	}
	tickets, err := h.service.ListTickets(c.UserContext(), profile)
	if err != nil {
		return err
	}
	projected, err := h.projector.ProjectTickets(c.UserContext(), profile, tickets)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(projected))
	for i := range projected {
		items = append(items, ticketSummary(projected[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	profile, ok := identity.ProfileFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no active session")
	}
	ticket, err := h.service.GetTicketDetail(c.UserContext(), profile, c.Params("id"))
	if err != nil {
		return err
	}
	responses, err := h.service.ListResponses(c.UserContext(), profile, ticket.ID)
	if err != nil {
		return err
	}

	projected, err := h.projector.ProjectTicket(c.UserContext(), profile, ticket)
	if err != nil {
		return err
	}
	thread, err := h.projector.ProjectResponses(c.UserContext(), responses)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(projected, ticket.Content, thread)})
}

// AddResponse POST /tickets/:id/responses.
func (h *TicketsHandler) AddResponse(c *fiber.Ctx) error {
	profile, ok := identity.ProfileFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no active session")
	}
	var req dto.AddResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	response, err := h.service.AddResponse(c.UserContext(), profile, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	thread, err := h.projector.ProjectResponses(c.UserContext(), []domain.TicketResponse{*response})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": responseResponse(thread[0])})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	profile, ok := identity.ProfileFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no active session")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateStatus(c.UserContext(), profile, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	projected, err := h.projector.ProjectTicket(c.UserContext(), profile, ticket)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(projected)})
}

func ticketSummary(v view.TicketView) dto.TicketSummary {
	return dto.TicketSummary{
		ID:            v.ID,
		Subject:       v.Subject,
		Priority:      v.Priority,
		PriorityLabel: v.PriorityLabel,
		PriorityClass: v.PriorityClass,
		Status:        v.Status,
		StatusLabel:   v.StatusLabel,
		StatusClass:   v.StatusClass,
		UserID:        v.UserID,
		UserEmail:     v.OwnerEmail,
		CreatedAt:     v.CreatedAt,
	}
}

func ticketDetail(v view.TicketView, content string, thread []view.ResponseView) dto.TicketDetailResponse {
	responses := make([]dto.ResponseResponse, 0, len(thread))
	for i := range thread {
		responses = append(responses, responseResponse(thread[i]))
	}
	return dto.TicketDetailResponse{
		TicketSummary: ticketSummary(v),
		Content:       content,
		Responses:     responses,
	}
}

func responseResponse(v view.ResponseView) dto.ResponseResponse {
	return dto.ResponseResponse{
		ID:             v.ID,
		TicketID:       v.TicketID,
		Content:        v.Content,
		ResponderID:    v.ResponderID,
		ResponderEmail: v.ResponderEmail,
		ResponderRole:  v.ResponderRole,
		CreatedAt:      v.CreatedAt,
	}
}
