package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"clearcause/internal/events"
	"clearcause/internal/infra"
	"clearcause/internal/jobs"
	"clearcause/internal/wiring"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	publisher := events.Connect(ctx, cfg.RabbitMQURL, cfg.EventsExchange, logger)
	defer publisher.Close()

	svc := wiring.New(wiring.Deps{
		DB:     infra.NewSQLRunner(pool, logger),
		Events: publisher,
		Logger: logger,
	})

	scheduler := jobs.NewScheduler(&jobs.Jobs{
		Campaigns:  svc.Campaigns,
		Donations:  svc.Donations,
		PendingTTL: cfg.PendingDonationTTL,
		Logger:     logger,
	}, cfg.CampaignExpirySchedule, logger)

	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("worker: schedule jobs")
	}
	logger.Info().Msg("worker started")

	<-ctx.Done()
	logger.Info().Msg("worker stopping")
	<-scheduler.Stop().Done()
	logger.Info().Msg("worker stopped")
}
