package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"bannerbot/internal/adapters/discord"
	"bannerbot/internal/application"
	"bannerbot/internal/clock"
	"bannerbot/internal/config"
	"bannerbot/internal/infrastructure/conversation"
	"bannerbot/internal/infrastructure/database"
	"bannerbot/internal/infrastructure/i18n"
	"bannerbot/internal/infrastructure/metrics"
	"bannerbot/internal/ports/output"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := run(logger); err != nil {
		logger.Error("bot stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		return err
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	contentRepo := database.NewContentRepository(pool)
	adminRepo := database.NewAdminRepository(pool)
	regionRepo := database.NewRegionOffsetRepository(pool)
	ledgerRepo := database.NewAlertLedgerRepository(pool)
	tx := database.NewTransactor(pool)

	if err := regionRepo.Seed(ctx, cfg.RegionOffsets); err != nil {
		return err
	}
	admins := application.NewAdminService(adminRepo, cfg.OwnerID)
	if err := admins.Bootstrap(ctx); err != nil {
		return err
	}

	var conversations output.ConversationStore
	switch cfg.ConversationStore {
	case config.StoreRedis:
		store, err := conversation.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer store.Close()
		conversations = store
	default:
		conversations = conversation.NewMemoryStore()
	}

	var wg sync.WaitGroup
	var appMetrics output.Metrics = output.NopMetrics{}
	if cfg.MetricsAddr != "" {
		prom := metrics.New()
		appMetrics = prom
		srv := metrics.NewServer(cfg.MetricsAddr, prom, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				logger.Error("metrics server", slog.String("error", err.Error()))
			}
		}()
	}

	translator := i18n.NewTranslator(cfg.DefaultLocale, logger)
	clk := clock.NewSystem()

	flow := application.NewEditFlow(application.EditFlowDeps{
		Conversations: conversations,
		Content:       contentRepo,
		Ledger:        ledgerRepo,
		Offsets:       regionRepo,
		Tx:            tx,
		Admins:        admins,
		Translator:    translator,
		Metrics:       appMetrics,
		Logger:        logger,
	})
	content := application.NewContentService(contentRepo, admins, clk)

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		return err
	}
	handler := discord.NewHandler(discord.HandlerDeps{
		Content:    content,
		Admins:     admins,
		Flow:       flow,
		Translator: translator,
		Logger:     logger,
	})
	bot := discord.NewBot(session, handler, logger)

	scheduler := application.NewAlertScheduler(application.AlertSchedulerDeps{
		Content:     contentRepo,
		Ledger:      ledgerRepo,
		Tx:          tx,
		Notifier:    discord.NewNotifier(session),
		Translator:  translator,
		Clock:       clk,
		Metrics:     appMetrics,
		Logger:      logger,
		Destination: cfg.AlertChannelID,
		Interval:    cfg.AlertInterval,
	})
	wg.Add(1)
	go func() {
		defer wg.Done()
		scheduler.Run(ctx)
	}()

	err = bot.Run(ctx)
	stop()
	wg.Wait()
	return err
}
