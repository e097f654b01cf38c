package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	mongodb "github.com/pabloab/zapatillas-api/internal/infrastructure/db/mongo"
)

// NewMigrateCmd creates the migrate subcommand, which builds the MongoDB indexes.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create MongoDB indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, client, db, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(ctx)
			}()

			if err := mongodb.NewAccountRepository(db).EnsureIndexes(cmd.Context()); err != nil {
				return err
			}
			if err := mongodb.NewCustomerRepository(db).EnsureIndexes(cmd.Context()); err != nil {
				return err
			}
			if err := mongodb.NewZapatillaRepository(db).EnsureIndexes(cmd.Context()); err != nil {
				return err
			}
			log.Info().Str("database", db.Name()).Msg("indexes ensured")
			return nil
		},
	}
}
