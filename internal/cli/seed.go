package cli

import (
	"fmt"

	"go-touring-backend/internal/repository/postgres"
	"go-touring-backend/pkg/catalogue"
	"go-touring-backend/pkg/database"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var (
		file  string
		dbURL string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the postgres catalogue with a YAML catalogue file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbURL == "" {
				return fmt.Errorf("--database-url or DATABASE_URL is required")
			}
			services, err := catalogue.LoadFile(file)
			if err != nil {
				return err
			}

			pool, err := database.NewPostgresConnection(cmd.Context(), dbURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			if err := postgres.NewServiceRepository(pool).ReplaceCatalogue(cmd.Context(), services); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d services from %s\n", len(services), file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "content/services.yaml", "catalogue file")
	cmd.Flags().StringVar(&dbURL, "database-url", envOr("DATABASE_URL", ""), "postgres connection string")
	return cmd
}
