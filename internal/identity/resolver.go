package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/geek-records/support-desk/internal/domain"
	"github.com/geek-records/support-desk/internal/repository"
	apperrors "github.com/geek-records/support-desk/pkg/util"
)

// Resolver turns an active session token into a profile. It is the only
// component that reads ambient session state; everything downstream receives
// the resolved profile explicitly.
type Resolver struct {
	tokens   *TokenManager
	sessions SessionStore
	profiles repository.ProfileRepository
}

// NewResolver constructs the resolver.
func NewResolver(tokens *TokenManager, sessions SessionStore, profiles repository.ProfileRepository) *Resolver {
	return &Resolver{tokens: tokens, sessions: sessions, profiles: profiles}
}

// Resolve validates the session token, checks the session is still active,
// and loads the matching profile row. A valid session without a profile row
// is reported as NOT_FOUND, not as an authentication failure.
func (r *Resolver) Resolve(ctx context.Context, sessionToken string) (*domain.Profile, error) {
	if sessionToken == "" {
		return nil, apperrors.NewUnauthenticated("no active session")
	}

	claims, err := r.tokens.ParseToken(sessionToken)
	if err != nil {
		return nil, apperrors.NewUnauthenticated("invalid session")
	}

	profileID, err := r.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperrors.NewUnauthenticated("session expired or revoked")
		}
		return nil, apperrors.MapError(err)
	}
	if profileID != claims.ProfileID {
		return nil, apperrors.NewUnauthenticated("session mismatch")
	}

	profile, err := r.profiles.GetByID(ctx, claims.ProfileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("profile", map[string]any{"profile_id": claims.ProfileID})
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// SignOut revokes the session behind the token. Revoking an already-dead
// session is not an error.
func (r *Resolver) SignOut(ctx context.Context, sessionToken string) error {
	claims, err := r.tokens.ParseToken(sessionToken)
	if err != nil {
		return apperrors.NewUnauthenticated("invalid session")
	}
	if err := r.sessions.Delete(ctx, claims.SessionID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
