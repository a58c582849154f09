package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/geek-records/support-desk/internal/api/dto"
	"github.com/geek-records/support-desk/internal/identity"
	"github.com/geek-records/support-desk/internal/service"
	apperrors "github.com/geek-records/support-desk/pkg/util"
)

// AuthHandler exposes login, logout and current-profile endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	resolver *identity.Resolver
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, resolver *identity.Resolver) *AuthHandler {
	return &AuthHandler{auth: authService, resolver: resolver}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	profile, token, expiresAt, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Profile: dto.ProfileResponse{
			ID:    profile.ID,
			Email: profile.Email,
			Role:  profile.Role,
		},
	}})
}

// Logout POST /auth/logout. Revokes the session behind the bearer token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := identity.BearerToken(c)
	if token == "" {
		return apperrors.NewUnauthenticated("no active session")
	}
	if err := h.resolver.SignOut(c.UserContext(), token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"signed_out": true}})
}

// Me GET /auth/me. Returns the profile behind the current session.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	profile, ok := identity.ProfileFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no active session")
	}
	return c.JSON(fiber.Map{"data": dto.ProfileResponse{
		ID:    profile.ID,
		Email: profile.Email,
		Role:  profile.Role,
	}})
}
