package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/observability"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller and the token it presented.
type Principal struct {
	User      *domain.User
	TokenID   string
	ExpiresAt time.Time
}

// Role returns the caller's role as stored on the account.
func (p *Principal) Role() domain.Role {
	return p.User.Role
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens  *TokenManager
	users   repository.UserRepository
	revoked RevocationStore
	logger  *zap.Logger
}

// NewAuthMiddleware constructs middleware. revoked may be nil, in which case logout is not enforced.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, revoked RevocationStore, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, revoked: revoked, logger: logger}
}

// Handle authenticates the bearer token and stores the principal for later handlers.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	principal, err := m.authenticate(c.UserContext(), raw)
	if err != nil {
		return err
	}

	c.Locals(principalKey, principal)
	c.Locals(observability.LocalUserID, principal.User.ID)
	return c.Next()
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return token, nil
}

// authenticate resolves a raw token to an active account. Revocation lookups fail open.
func (m *AuthMiddleware) authenticate(ctx context.Context, raw string) (*Principal, error) {
	claims, err := m.tokens.ParseToken(raw)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	if m.revoked != nil {
		revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
		switch {
		case err != nil:
			m.logger.Warn("revocation lookup failed", zap.String("jti", claims.ID), zap.Error(err))
		case revoked:
			return nil, apperrors.NewUnauthorized("token revoked")
		}
	}

	user, err := m.users.GetByID(ctx, claims.UserID)
	if apperrors.IsNoRows(err) {
		return nil, apperrors.NewUnauthorized("user not found")
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !user.Active {
		return nil, apperrors.NewUnauthorized("account is inactive")
	}

	principal := &Principal{User: user, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	return principal, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal.User != nil
}
