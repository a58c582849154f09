// Package policy is the single source of truth for access decisions. Every
// mutation path in the service layer must consult the matching check here
// before touching storage; no handler or repository re-implements these rules.
package policy

import "github.com/geek-records/support-desk/internal/domain"

// CanViewTicket permits admins and the ticket owner.
func CanViewTicket(profile *domain.Profile, ticket *domain.Ticket) bool {
	if profile == nil || ticket == nil {
		return false
	}
	return profile.IsAdmin() || ticket.UserID == profile.ID
}

// CanListAllTickets permits admins only.
func CanListAllTickets(profile *domain.Profile) bool {
	return profile.IsAdmin()
}

// CanCreateTicket permits any authenticated profile. Admins are not excluded
// even though the portal does not expose the form to them.
func CanCreateTicket(profile *domain.Profile) bool {
	return profile != nil
}

// CanRespond permits admins on any ticket, and the owner while the ticket is
// not closed. A closed ticket rejects the owner but not an admin.
func CanRespond(profile *domain.Profile, ticket *domain.Ticket) bool {
	if profile == nil || ticket == nil {
		return false
	}
	if profile.IsAdmin() {
		return true
	}
	return ticket.UserID == profile.ID && ticket.Status != domain.TicketStatusClosed
}

// CanChangeStatus permits admins only.
func CanChangeStatus(profile *domain.Profile) bool {
	return profile.IsAdmin()
}
