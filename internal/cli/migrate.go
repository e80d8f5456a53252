package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/infra/postgres"
	"github.com/aliskhannn/topik-vocab-bot/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer func() { _ = e.logger.Sync() }()

		dsn, err := e.cfg.DB.DSN()
		if err != nil {
			return err
		}

		results, err := postgres.Migrate(cmd.Context(), dsn, migrations.FS)
		if err != nil {
			return err
		}

		for _, r := range results {
			e.logger.Info("migration applied",
				zap.Int64("version", r.Source.Version),
				zap.Duration("duration", r.Duration),
			)
		}
		cmd.Printf("applied %d migration(s)\n", len(results))
		return nil
	},
}
