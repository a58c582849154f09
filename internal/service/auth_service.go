package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/geek-records/support-desk/internal/domain"
	"github.com/geek-records/support-desk/internal/identity"
	"github.com/geek-records/support-desk/internal/repository"
	apperrors "github.com/geek-records/support-desk/pkg/util"
)

// AuthService is the authentication provider facade: it verifies credentials
// and issues revocable sessions. Account provisioning stays external.
type AuthService struct {
	profiles repository.ProfileRepository
	sessions identity.SessionStore
	tokens   *identity.TokenManager
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	ProfileRepo  repository.ProfileRepository
	SessionStore identity.SessionStore
	TokenManager *identity.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		profiles: deps.ProfileRepo,
		sessions: deps.SessionStore,
		tokens:   deps.TokenManager,
	}
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Profile, string, time.Time, error) {
	profile, hash, err := s.profiles.CredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewStorageError(err)
	}
	if err := identity.ComparePassword(hash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Put(ctx, sessionID, profile.ID, s.tokens.TTL()); err != nil {
		return nil, "", time.Time{}, apperrors.NewStorageError(err)
	}

	token, expiresAt, err := s.tokens.GenerateToken(profile.ID, sessionID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return profile, token, expiresAt, nil
}
