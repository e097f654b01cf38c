package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
	"github.com/pabloab/zapatillas-api/internal/core/service"
	mongodb "github.com/pabloab/zapatillas-api/internal/infrastructure/db/mongo"
)

type adminInput struct {
	Username string
	Email    string
	Password string
	Nombre   string
}

// NewCreateAdminCmd creates the create-admin subcommand. Registration only ever
// produces USER accounts, so this is how the first ADMIN comes to exist.
func NewCreateAdminCmd() *cobra.Command {
	var in adminInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an account with the ADMIN role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, client, db, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(ctx)
			}()

			repo := mongodb.NewAccountRepository(db)
			if err := repo.EnsureIndexes(cmd.Context()); err != nil {
				return err
			}

			account, err := createAdmin(cmd.Context(), repo, service.NewBcryptHasher(cfg.Auth.BcryptCost), in, time.Now())
			if err != nil {
				return err
			}
			log.Info().Str("username", account.Username).Str("id", account.ID).Msg("admin account created")
			cmd.Printf("created admin %s (%s)\n", account.Username, account.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "admin username")
	cmd.Flags().StringVar(&in.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&in.Password, "password", "", "admin password (min 6 characters)")
	cmd.Flags().StringVar(&in.Nombre, "nombre", "Administrador", "display name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func createAdmin(ctx context.Context, repo ports.AccountRepository, hasher ports.PasswordHasher, in adminInput, now time.Time) (*domain.Account, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" {
		return nil, errors.New("username and email are required")
	}
	if len(in.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		ID:           ulid.Make().String(),
		Username:     in.Username,
		Email:        in.Email,
		Nombre:       in.Nombre,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleAdmin},
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	if err := repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create admin %s: %w", in.Username, err)
	}
	return account, nil
}
