package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the API binary.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "zapatillas-api",
		Short:         "Zapatillas catalog backend: accounts, auth and customers",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewCreateAdminCmd())

	return cmd
}
