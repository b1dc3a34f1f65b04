package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silis/backend/internal/config"
	"github.com/silis/backend/internal/repository"
)

func indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB collection indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			backend, err := cfg.Backend()
			if err != nil {
				return err
			}
			if backend != config.BackendMongo {
				fmt.Fprintf(cmd.OutOrStdout(), "%s backend: nothing to do (use cmd/migrate for PostgreSQL)\n", backend)
				return nil
			}

			client, err := repository.ConnectMongo(cmd.Context(), cfg.DatabaseURL, cfg.DBTimeout)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(cmd.Context()) }()

			if err := repository.EnsureMongoIndexes(cmd.Context(), client.Database(cfg.DBName)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexes ensured on %s\n", cfg.DBName)
			return nil
		},
	}
}
