package policy

import (
	"testing"

	"github.com/geek-records/support-desk/internal/domain"
)

var (
	admin = &domain.Profile{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}
	owner = &domain.Profile{ID: "user-1", Email: "user@example.com", Role: domain.RoleUser}
	other = &domain.Profile{ID: "user-2", Email: "other@example.com", Role: domain.RoleUser}
)

func ticketWith(ownerID string, status domain.TicketStatus) *domain.Ticket {
	return &domain.Ticket{ID: "t-1", UserID: ownerID, Status: status}
}

func TestCanViewTicket(t *testing.T) {
	tests := []struct {
		name    string
		profile *domain.Profile
		ticket  *domain.Ticket
		want    bool
	}{
		{"admin views any ticket", admin, ticketWith(owner.ID, domain.TicketStatusOpen), true},
		{"owner views own ticket", owner, ticketWith(owner.ID, domain.TicketStatusOpen), true},
		{"stranger denied", other, ticketWith(owner.ID, domain.TicketStatusOpen), false},
		{"nil profile denied", nil, ticketWith(owner.ID, domain.TicketStatusOpen), false},
		{"nil ticket denied", owner, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewTicket(tt.profile, tt.ticket); got != tt.want {
				t.Fatalf("CanViewTicket = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanListAllTickets(t *testing.T) {
	if !CanListAllTickets(admin) {
		t.Fatal("admin should list all tickets")
	}
	if CanListAllTickets(owner) {
		t.Fatal("regular user should not list all tickets")
	}
	if CanListAllTickets(nil) {
		t.Fatal("nil profile should not list all tickets")
	}
}

func TestCanCreateTicket(t *testing.T) {
	if !CanCreateTicket(owner) {
		t.Fatal("user should create tickets")
	}
	if !CanCreateTicket(admin) {
		t.Fatal("admin is not excluded from creating tickets")
	}
	if CanCreateTicket(nil) {
		t.Fatal("unauthenticated caller should not create tickets")
	}
}

func TestCanRespond(t *testing.T) {
	tests := []struct {
		name    string
		profile *domain.Profile
		ticket  *domain.Ticket
		want    bool
	}{
		{"owner responds while open", owner, ticketWith(owner.ID, domain.TicketStatusOpen), true},
		{"owner responds while in progress", owner, ticketWith(owner.ID, domain.TicketStatusInProgress), true},
		{"owner responds while resolved", owner, ticketWith(owner.ID, domain.TicketStatusResolved), true},
		{"owner refused on closed ticket", owner, ticketWith(owner.ID, domain.TicketStatusClosed), false},
		{"admin responds on closed ticket", admin, ticketWith(owner.ID, domain.TicketStatusClosed), true},
		{"stranger refused even while open", other, ticketWith(owner.ID, domain.TicketStatusOpen), false},
		{"nil profile refused", nil, ticketWith(owner.ID, domain.TicketStatusOpen), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRespond(tt.profile, tt.ticket); got != tt.want {
				t.Fatalf("CanRespond = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanChangeStatus(t *testing.T) {
	if !CanChangeStatus(admin) {
		t.Fatal("admin should change status")
	}
	if CanChangeStatus(owner) {
		t.Fatal("regular user should not change status")
	}
	if CanChangeStatus(nil) {
		t.Fatal("nil profile should not change status")
	}
}
