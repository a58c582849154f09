package view

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/geek-records/support-desk/internal/domain"
)

type fakeProfiles struct {
	byID map[string]*domain.Profile
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProfiles) CredentialsByEmail(_ context.Context, email string) (*domain.Profile, string, error) {
	return nil, "", pgx.ErrNoRows
}

func (f *fakeProfiles) EmailsByIDs(_ context.Context, ids []string) (map[string]string, error) {
	result := make(map[string]string, len(ids))
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			result[id] = p.Email
		}
	}
	return result, nil
}

func (f *fakeProfiles) RolesByIDs(_ context.Context, ids []string) (map[string]domain.Role, error) {
	result := make(map[string]domain.Role, len(ids))
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			result[id] = p.Role
		}
	}
	return result, nil
}

func testProjector() (*Projector, *domain.Profile, *domain.Profile) {
	admin := &domain.Profile{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}
	user := &domain.Profile{ID: "user-1", Email: "user@example.com", Role: domain.RoleUser}
	profiles := &fakeProfiles{byID: map[string]*domain.Profile{
		admin.ID: admin,
		user.ID:  user,
	}}
	return NewProjector(profiles), admin, user
}

func TestProjectTicketsAdminSeesOwnerEmail(t *testing.T) {
	projector, admin, user := testProjector()
	tickets := []domain.Ticket{{
		ID:       "t-1",
		Subject:  "printer on fire",
		Priority: domain.TicketPriorityHigh,
		Status:   domain.TicketStatusOpen,
		UserID:   user.ID,
	}}

	views, err := projector.ProjectTickets(context.Background(), admin, tickets)
	if err != nil {
		t.Fatalf("ProjectTickets: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	if views[0].OwnerEmail != user.Email {
		t.Errorf("OwnerEmail = %q, want %q", views[0].OwnerEmail, user.Email)
	}
	if views[0].StatusLabel == "" || views[0].PriorityLabel == "" {
		t.Error("labels not resolved")
	}
}

func TestProjectTicketsUserDoesNotSeeOwnerEmail(t *testing.T) {
	projector, _, user := testProjector()
	tickets := []domain.Ticket{{ID: "t-1", UserID: user.ID, Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow}}

	views, err := projector.ProjectTickets(context.Background(), user, tickets)
	if err != nil {
		t.Fatalf("ProjectTickets: %v", err)
	}
	if views[0].OwnerEmail != "" {
		t.Errorf("OwnerEmail = %q, want empty for non-admin viewer", views[0].OwnerEmail)
	}
}

func TestProjectResponsesAnnotatesAndKeepsOrder(t *testing.T) {
	projector, admin, user := testProjector()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	responses := []domain.TicketResponse{
		{ID: "r-1", TicketID: "t-1", Content: "help", ResponderID: user.ID, CreatedAt: base},
		{ID: "r-2", TicketID: "t-1", Content: "looking into it", ResponderID: admin.ID, CreatedAt: base.Add(time.Minute)},
	}

	views, err := projector.ProjectResponses(context.Background(), responses)
	if err != nil {
		t.Fatalf("ProjectResponses: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}
	if views[0].ID != "r-1" || views[1].ID != "r-2" {
		t.Error("thread order not preserved")
	}
	if views[0].ResponderEmail != user.Email || views[0].ResponderRole != domain.RoleUser {
		t.Errorf("first response annotation = %q/%q", views[0].ResponderEmail, views[0].ResponderRole)
	}
	if views[1].ResponderEmail != admin.Email || views[1].ResponderRole != domain.RoleAdmin {
		t.Errorf("second response annotation = %q/%q", views[1].ResponderEmail, views[1].ResponderRole)
	}
}
