package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/geek-records/support-desk/internal/domain"
	"github.com/geek-records/support-desk/pkg/util"
)

type memSessionStore struct {
	entries map[string]string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{entries: map[string]string{}}
}

func (s *memSessionStore) Put(_ context.Context, sessionID, profileID string, _ time.Duration) error {
	s.entries[sessionID] = profileID
	return nil
}

func (s *memSessionStore) Get(_ context.Context, sessionID string) (string, error) {
	profileID, ok := s.entries[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	return profileID, nil
}

func (s *memSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.entries, sessionID)
	return nil
}

type stubProfiles struct {
	byID map[string]*domain.Profile
}

func (s *stubProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubProfiles) CredentialsByEmail(_ context.Context, _ string) (*domain.Profile, string, error) {
	return nil, "", pgx.ErrNoRows
}

func (s *stubProfiles) EmailsByIDs(_ context.Context, ids []string) (map[string]string, error) {
	result := make(map[string]string, len(ids))
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			result[id] = p.Email
		}
	}
	return result, nil
}

func (s *stubProfiles) RolesByIDs(_ context.Context, ids []string) (map[string]domain.Role, error) {
	result := make(map[string]domain.Role, len(ids))
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			result[id] = p.Role
		}
	}
	return result, nil
}

func resolverFixture(t *testing.T) (*Resolver, *TokenManager, *memSessionStore, *domain.Profile) {
	t.Helper()
	profile := &domain.Profile{ID: "profile-1", Email: "user@example.com", Role: domain.RoleUser}
	tokens := NewTokenManager("test-secret", time.Hour)
	sessions := newMemSessionStore()
	profiles := &stubProfiles{byID: map[string]*domain.Profile{profile.ID: profile}}
	return NewResolver(tokens, sessions, profiles), tokens, sessions, profile
}

func issueSession(t *testing.T, tokens *TokenManager, sessions *memSessionStore, profileID string) string {
	t.Helper()
	sessionID := "session-1"
	if err := sessions.Put(context.Background(), sessionID, profileID, time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}
	token, _, err := tokens.GenerateToken(profileID, sessionID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var de *util.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("error code = %s, want %s", de.Code, code)
	}
}

func TestResolveActiveSession(t *testing.T) {
	resolver, tokens, sessions, profile := resolverFixture(t)
	token := issueSession(t, tokens, sessions, profile.ID)

	resolved, err := resolver.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.ID != profile.ID || resolved.Email != profile.Email {
		t.Errorf("resolved %+v, want %+v", resolved, profile)
	}
}

func TestResolveEmptyToken(t *testing.T) {
	resolver, _, _, _ := resolverFixture(t)
	_, err := resolver.Resolve(context.Background(), "")
	wantCode(t, err, "UNAUTHENTICATED")
}

func TestResolveMalformedToken(t *testing.T) {
	resolver, _, _, _ := resolverFixture(t)
	_, err := resolver.Resolve(context.Background(), "not-a-jwt")
	wantCode(t, err, "UNAUTHENTICATED")
}

func TestResolveWrongSigningKey(t *testing.T) {
	resolver, _, sessions, profile := resolverFixture(t)
	foreign := NewTokenManager("other-secret", time.Hour)
	token := issueSession(t, foreign, sessions, profile.ID)

	_, err := resolver.Resolve(context.Background(), token)
	wantCode(t, err, "UNAUTHENTICATED")
}

func TestResolveAfterSignOut(t *testing.T) {
	resolver, tokens, sessions, profile := resolverFixture(t)
	token := issueSession(t, tokens, sessions, profile.ID)

	if err := resolver.SignOut(context.Background(), token); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	// The token itself is still unexpired; revocation must come from the
	// session store, not from token expiry.
	_, err := resolver.Resolve(context.Background(), token)
	wantCode(t, err, "UNAUTHENTICATED")
}

func TestSignOutDeadSessionIsNoError(t *testing.T) {
	resolver, tokens, sessions, profile := resolverFixture(t)
	token := issueSession(t, tokens, sessions, profile.ID)

	if err := resolver.SignOut(context.Background(), token); err != nil {
		t.Fatalf("first SignOut: %v", err)
	}
	if err := resolver.SignOut(context.Background(), token); err != nil {
		t.Fatalf("repeated SignOut: %v", err)
	}
}

func TestResolveSessionProfileMismatch(t *testing.T) {
	resolver, tokens, sessions, profile := resolverFixture(t)
	token := issueSession(t, tokens, sessions, profile.ID)
	sessions.entries["session-1"] = "someone-else"

	_, err := resolver.Resolve(context.Background(), token)
	wantCode(t, err, "UNAUTHENTICATED")
}

func TestResolveMissingProfileRow(t *testing.T) {
	resolver, tokens, sessions, _ := resolverFixture(t)
	token := issueSession(t, tokens, sessions, "profile-deleted")

	_, err := resolver.Resolve(context.Background(), token)
	wantCode(t, err, "NOT_FOUND")
}
