package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emsworks/employment-service/internal/auth"
	"github.com/emsworks/employment-service/internal/config"
	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

// AuthService coordinates login, registration and password flows.
type AuthService struct {
	users      repository.UserRepository
	employees  repository.EmployeeRepository
	resets     repository.PasswordResetRepository
	revoked    auth.RevocationStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
	now        func() time.Time
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	EmployeeRepo      repository.EmployeeRepository
	PasswordResetRepo repository.PasswordResetRepository
	Revocations       auth.RevocationStore
	TokenManager      *auth.TokenManager
}

// RegisterInput describes an account created by an admin.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	tokens := deps.TokenManager
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	}
	resetTTL := time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute
	if resetTTL <= 0 {
		resetTTL = 30 * time.Minute
	}
	return &AuthService{
		users:      deps.UserRepo,
		employees:  deps.EmployeeRepo,
		resets:     deps.PasswordResetRepo,
		revoked:    deps.Revocations,
		tokenMgr:   tokens,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   resetTTL,
		now:        time.Now,
	}
}

// ResolveActor loads the employee record linked to user, if any.
func (s *AuthService) ResolveActor(ctx context.Context, user *domain.User) (Actor, error) {
	actor := Actor{User: user}
	emp, err := s.employees.GetByUserID(ctx, user.ID)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return actor, nil
		}
		return Actor{}, apperrors.MapError(err)
	}
	actor.Employee = emp
	return actor, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, auth.IssuedToken, error) {
	invalid := apperrors.NewUnauthorized("invalid credentials")

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, auth.IssuedToken{}, invalid
		}
		return nil, auth.IssuedToken{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, auth.IssuedToken{}, invalid
	}
	if !user.Active {
		return nil, auth.IssuedToken{}, apperrors.NewUnauthorized("account is inactive")
	}
	s.upgradeHash(ctx, user, password)

	token, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, auth.IssuedToken{}, apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// upgradeHash re-hashes the password after a successful login when the configured cost changed.
// A failed upgrade leaves the old hash in place.
func (s *AuthService) upgradeHash(ctx context.Context, user *domain.User, password string) {
	if !auth.NeedsRehash(user.PasswordHash, s.bcryptCost) {
		return
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return
	}
	previous := user.PasswordHash
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		user.PasswordHash = previous
	}
}

// Register creates a login account with any role. Admin only.
func (s *AuthService) Register(ctx context.Context, actor Actor, input RegisterInput) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if input.Role == "" {
		input.Role = domain.RoleEmployee
	}

	errs := fieldErrors{}
	errs.require("name", input.Name)
	errs.email("email", input.Email)
	errs.check(input.Role.Valid(), "role", "must be one of admin, hr, employee")
	if err := auth.ValidatePassword(input.Password); err != nil {
		errs["password"] = err.Error()
	}
	if err := errs.err("invalid registration"); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, conflictOnDuplicate(err, "email already registered", map[string]any{"email": user.Email})
	}
	return user, nil
}

// Logout revokes the presented token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.revoked == nil || tokenID == "" {
		return nil
	}
	if err := s.revoked.Revoke(ctx, tokenID, expiresAt); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// RequestPasswordReset issues a reset token for email. Unknown emails yield a nil token and no error.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, apperrors.MapError(err)
	}
	if !user.Active {
		return nil, nil
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, apperrors.MapError(err)
	}
	return token, nil
}

// ConfirmPasswordReset redeems a reset token and sets a new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error(), map[string]any{"password": err.Error()})
	}

	invalid := apperrors.NewValidationError("invalid or expired reset token", nil)
	token, err := s.resets.GetByToken(ctx, strings.TrimSpace(tokenStr))
	if err != nil {
		if apperrors.IsNoRows(err) {
			return invalid
		}
		return apperrors.MapError(err)
	}
	if token.UsedAt != nil || token.Expired(s.now()) {
		return invalid
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return notFound(err, "user")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	if err := s.resets.MarkUsed(ctx, token.ID); err != nil {
		if apperrors.IsNoRows(err) {
			return invalid
		}
		return apperrors.MapError(err)
	}
	user.PasswordHash = hash
	return apperrors.MapError(s.users.Update(ctx, user))
}

// ChangePassword verifies the current password before storing the new one.
func (s *AuthService) ChangePassword(ctx context.Context, actor Actor, currentPassword, newPassword string) error {
	if actor.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error(), map[string]any{"new_password": err.Error()})
	}

	user, err := s.users.GetByID(ctx, actor.User.ID)
	if err != nil {
		return notFound(err, "user")
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash
	return apperrors.MapError(s.users.Update(ctx, user))
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
