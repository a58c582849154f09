package identity

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/geek-records/support-desk/internal/domain"
	apperrors "github.com/geek-records/support-desk/pkg/util"
)

const profileKey = "auth_profile"

// Middleware resolves bearer tokens into profiles for protected routes.
type Middleware struct {
	resolver *Resolver
}

// NewMiddleware constructs middleware.
func NewMiddleware(resolver *Resolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// Handle enforces authentication and stashes the resolved profile.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := BearerToken(c)
	if token == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	profile, err := m.resolver.Resolve(c.UserContext(), token)
	if err != nil {
		return err
	}

	c.Locals(profileKey, profile)
	return c.Next()
}

// ProfileFromContext retrieves the authenticated profile.
func ProfileFromContext(c *fiber.Ctx) (*domain.Profile, bool) {
	val := c.Locals(profileKey)
	if val == nil {
		return nil, false
	}
	profile, ok := val.(*domain.Profile)
	return profile, ok
}

// BearerToken extracts the session token from the Authorization header.
func BearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
