package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
	apperrors "github.com/spec-kit/ticket-marketplace/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Role and fraud flag are
// resolved from the role store on every request.
type Principal struct {
	Email   string
	Role    domain.Role
	IsFraud bool
}

// RoleSource resolves role-store records for authenticated emails.
type RoleSource interface {
	Resolve(ctx context.Context, email string) (*domain.User, error)
}

// Middleware validates bearer credentials and loads principals.
type Middleware struct {
	tokens *TokenManager
	roles  RoleSource
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, roles RoleSource) *Middleware {
	return &Middleware{tokens: tokens, roles: roles}
}

// Handle enforces authentication for protected routes. Callers without a
// role-store record carry the default user role.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	email, err := m.tokens.VerifyHeader(c.Get("Authorization"))
	if err != nil {
		if errors.Is(err, ErrMissingCredential) {
			return apperrors.NewUnauthorized("missing authorization header")
		}
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{Email: email, Role: domain.RoleUser}

	record, err := m.roles.Resolve(c.UserContext(), email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.MapError(err)
		}
	} else {
		principal.Role = record.Role
		principal.IsFraud = record.IsFraud
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
