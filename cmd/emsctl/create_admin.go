package main

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emsworks/employment-service/internal/auth"
	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin login account",
	RunE:  runCreateAdmin,
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pg, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pg.Close()

	user, err := createAdmin(ctx, repository.NewUserRepository(pg.PoolHandle()), adminName, adminEmail, adminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
	return nil
}

func createAdmin(ctx context.Context, users repository.UserRepository, name, email, password string, cost int) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Administrator"
	}

	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	if err := users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, fmt.Errorf("a user with email %s already exists", email)
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return user, nil
}
