package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/topik-vocab-bot/internal/config"
	"github.com/aliskhannn/topik-vocab-bot/internal/delivery/telegram"
	"github.com/aliskhannn/topik-vocab-bot/internal/infra/postgres"
	"github.com/aliskhannn/topik-vocab-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/topik-vocab-bot/internal/logger"
	"github.com/aliskhannn/topik-vocab-bot/internal/service"
	"github.com/aliskhannn/topik-vocab-bot/internal/storage"
	"github.com/aliskhannn/topik-vocab-bot/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}

	if cfg.Migrations.Auto {
		results, err := postgres.Migrate(ctx, dsn, migrations.FS)
		if err != nil {
			return err
		}
		lg.Info("migrations applied", zap.Int("count", len(results)))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = !cfg.IsProduction()
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(telegram.BotCommands()); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	// Initialize repositories and services.
	catalogRepo := repository.NewCatalogRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	membershipRepo := repository.NewMembershipRepository(pool)

	progressService := service.NewProgressService(catalogRepo, progressRepo)

	handler := telegram.NewHandler(
		bot,
		lg,
		telegram.Services{
			Users:       service.NewUserService(userRepo),
			Navigator:   service.NewNavigatorService(catalogRepo, cfg.Words.Limits()),
			Progress:    progressService,
			Flashcards:  service.NewFlashcardService(catalogRepo, progressService),
			Quiz:        service.NewQuizService(catalogRepo, progressService, cfg.Quiz.Options),
			Memberships: service.NewMembershipService(userRepo, membershipRepo, cfg.Admin.UserIDs),
		},
		storage.NewSessionStorage(),
		storage.NewDigestStorage(),
	)

	var reminders *service.ReminderService
	if cfg.Reminders.Enabled {
		loc, err := cfg.Reminders.Location()
		if err != nil {
			return err
		}
		reminders = service.NewReminderService(progressRepo, cfg.Reminders.Schedule, loc, lg)
		reminders.SetNotifier(handler)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return handler.Run(gctx)
	})

	if reminders != nil {
		g.Go(func() error {
			return reminders.Start(gctx)
		})
	}

	err = g.Wait()
	lg.Info("shutdown signal received")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
