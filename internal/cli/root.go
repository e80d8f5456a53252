// Package cli implements vocabctl, the maintenance tool for the word catalog.
package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/config"
	"github.com/aliskhannn/topik-vocab-bot/internal/infra/postgres"
	"github.com/aliskhannn/topik-vocab-bot/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:          "vocabctl",
	Short:        "Maintain the TOPIK word catalog",
	Long:         "vocabctl applies database migrations and imports word lists into the catalog.",
	SilenceUsage: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
}

// env is what every subcommand needs: configuration and a logger.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, err
	}

	lg, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return &env{cfg: cfg, logger: lg}, nil
}

func (e *env) openPool(ctx context.Context) (*pgxpool.Pool, error) {
	dsn, err := e.cfg.DB.DSN()
	if err != nil {
		return nil, err
	}
	return postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(e.cfg.DB.MaxConnections),
		MaxConnLifetime: e.cfg.DB.MaxConnLifetime,
	})
}
