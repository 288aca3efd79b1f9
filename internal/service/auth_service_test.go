package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/emsworks/employment-service/internal/auth"
	"github.com/emsworks/employment-service/internal/config"
	"github.com/emsworks/employment-service/internal/domain"
)

type fakeRevocations struct {
	ids map[string]time.Time
}

func (f *fakeRevocations) Revoke(_ context.Context, id string, until time.Time) error {
	f.ids[id] = until
	return nil
}

func (f *fakeRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := f.ids[id]
	return ok, nil
}

type authFixture struct {
	svc       *AuthService
	users     *fakeUsers
	employees *fakeEmployees
	resets    *fakeResets
	revoked   *fakeRevocations
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	hash, err := auth.HashPassword("correct-horse", bcrypt.MinCost)
	require.NoError(t, err)

	f := authFixture{
		users: newFakeUsers(
			&domain.User{ID: "user-ada", Name: "Ada", Email: "ada@example.com", PasswordHash: hash, Role: domain.RoleEmployee, Active: true},
			&domain.User{ID: "user-gone", Name: "Gone", Email: "gone@example.com", PasswordHash: hash, Role: domain.RoleEmployee, Active: false},
		),
		employees: newFakeEmployees(),
		resets:    newFakeResets(),
		revoked:   &fakeRevocations{ids: map[string]time.Time{}},
	}
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   15,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              bcrypt.MinCost,
	}}
	f.svc = NewAuthService(cfg, AuthDependencies{
		UserRepo:          f.users,
		EmployeeRepo:      f.employees,
		PasswordResetRepo: f.resets,
		Revocations:       f.revoked,
	})
	return f
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, token, err := f.svc.Login(ctx, "  ADA@example.com ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "user-ada", user.ID)
	assert.NotEmpty(t, token.Token)

	claims, err := f.svc.TokenManager().ParseToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-ada", claims.UserID)
	assert.Equal(t, token.ID, claims.ID)

	_, _, err = f.svc.Login(ctx, "ada@example.com", "wrong-password")
	derr := requireStatus(t, err, http.StatusUnauthorized)
	assert.Equal(t, "invalid credentials", derr.Message)

	_, _, err = f.svc.Login(ctx, "nobody@example.com", "correct-horse")
	derr = requireStatus(t, err, http.StatusUnauthorized)
	assert.Equal(t, "invalid credentials", derr.Message, "unknown emails are indistinguishable from bad passwords")

	_, _, err = f.svc.Login(ctx, "gone@example.com", "correct-horse")
	derr = requireStatus(t, err, http.StatusUnauthorized)
	assert.Equal(t, "account is inactive", derr.Message)
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, hrActor(nil), RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "password1"})
	requireStatus(t, err, http.StatusForbidden)

	user, err := f.svc.Register(ctx, adminActor(), RegisterInput{Name: " Bob ", Email: "Bob@Example.com", Password: "password1", Role: domain.RoleHR})
	require.NoError(t, err)
	assert.Equal(t, "Bob", user.Name)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, domain.RoleHR, user.Role)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "password1"))

	_, err = f.svc.Register(ctx, adminActor(), RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "password1"})
	requireStatus(t, err, http.StatusConflict)

	_, err = f.svc.Register(ctx, adminActor(), RegisterInput{Name: "", Email: "x", Password: "short", Role: "owner"})
	derr := requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, derr.Details, "name")
	assert.Contains(t, derr.Details, "email")
	assert.Contains(t, derr.Details, "password")
	assert.Contains(t, derr.Details, "role")
}

func TestAuthService_ResolveActor(t *testing.T) {
	f := newAuthFixture(t)
	userID := "user-ada"
	emp := seedEmployee("ada")
	emp.UserID = &userID
	f.employees.byID[emp.ID] = emp

	actor, err := f.svc.ResolveActor(context.Background(), &domain.User{ID: userID, Role: domain.RoleEmployee})
	require.NoError(t, err)
	require.NotNil(t, actor.Employee)
	assert.Equal(t, emp.ID, actor.Employee.ID)

	actor, err = f.svc.ResolveActor(context.Background(), &domain.User{ID: "user-admin", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Nil(t, actor.Employee)
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	exp := time.Now().Add(time.Hour)
	require.NoError(t, f.svc.Logout(context.Background(), "jti-1", exp))
	assert.Equal(t, exp, f.revoked.ids["jti-1"])
}

func TestAuthService_PasswordReset(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	f.svc.now = fixedClock(now)

	token, err := f.svc.RequestPasswordReset(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, token)

	token, err = f.svc.RequestPasswordReset(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, now.Add(30*time.Minute), token.ExpiresAt)

	err = f.svc.ConfirmPasswordReset(ctx, token.Token, "short")
	requireStatus(t, err, http.StatusBadRequest)

	require.NoError(t, f.svc.ConfirmPasswordReset(ctx, token.Token, "new-password"))
	_, _, err = f.svc.Login(ctx, "ada@example.com", "new-password")
	require.NoError(t, err)

	err = f.svc.ConfirmPasswordReset(ctx, token.Token, "another-password")
	derr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "invalid or expired reset token", derr.Message)
}

func TestAuthService_PasswordResetExpired(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	f.svc.now = fixedClock(now)

	token, err := f.svc.RequestPasswordReset(ctx, "ada@example.com")
	require.NoError(t, err)

	f.svc.now = fixedClock(now.Add(31 * time.Minute))
	err = f.svc.ConfirmPasswordReset(ctx, token.Token, "new-password")
	requireStatus(t, err, http.StatusBadRequest)

	err = f.svc.ConfirmPasswordReset(ctx, "does-not-exist", "new-password")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	actor := Actor{User: &domain.User{ID: "user-ada", Role: domain.RoleEmployee}}

	err := f.svc.ChangePassword(ctx, actor, "wrong", "new-password")
	requireStatus(t, err, http.StatusUnauthorized)

	err = f.svc.ChangePassword(ctx, actor, "correct-horse", "short")
	requireStatus(t, err, http.StatusBadRequest)

	require.NoError(t, f.svc.ChangePassword(ctx, actor, "correct-horse", "new-password"))
	assert.NoError(t, auth.ComparePassword(f.users.byID["user-ada"].PasswordHash, "new-password"))
}

func TestAuthService_LoginUpgradesHashCost(t *testing.T) {
	f := newAuthFixture(t)
	f.svc.bcryptCost = bcrypt.MinCost + 1

	_, _, err := f.svc.Login(context.Background(), "ada@example.com", "correct-horse")
	require.NoError(t, err)

	stored := f.users.snapshot()["user-ada"]
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "correct-horse"))
}
