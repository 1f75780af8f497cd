package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahbm/hospital-backend/internal/infrastructure/persistence/postgres"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica as migrations pendentes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			if err := postgres.RunMigrations(cmd.Context(), e.db); err != nil {
				return err
			}

			version, err := postgres.MigrationVersion(cmd.Context(), e.db)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema na versão %d\n", version)
			return nil
		},
	}
}
