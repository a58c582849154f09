package repository

import "github.com/geek-records/support-desk/internal/domain"

// Caller identifies the acting profile on scoped store calls. Repositories
// apply it as a row-level predicate, a second line of defense alongside the
// policy layer: a non-admin caller can never be handed rows outside their own.
type Caller struct {
	ID    string
	Admin bool
}

// CallerFor derives a Caller from a resolved profile.
func CallerFor(profile *domain.Profile) Caller {
	if profile == nil {
		return Caller{}
	}
	return Caller{ID: profile.ID, Admin: profile.IsAdmin()}
}
