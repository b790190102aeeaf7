package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"clearcause/internal/events"
	"clearcause/internal/http/handlers"
	httpapi "clearcause/internal/http/httpapi"
	"clearcause/internal/infra"
	"clearcause/internal/infra/geoip"
	"clearcause/internal/middleware"
	"clearcause/internal/storage"
	"clearcause/internal/wiring"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbpool, err := infra.NewDBPool(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()
	runner := infra.NewSQLRunner(dbpool, logger)

	publisher := events.Connect(ctx, cfg.RabbitMQURL, cfg.EventsExchange, logger)
	defer publisher.Close()

	store, err := storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare storage")
	}

	var country middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer resolver.Close()
		country = middleware.GeoLookup(resolver)
	}

	var limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.RateLimitPerMin, time.Minute)
	if cfg.RedisURL != "" {
		client, err := middleware.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable; using in-memory rate limiter")
		} else {
			defer client.Close()
			limiter = middleware.NewRedisLimiter(client, "", cfg.RateLimitPerMin, time.Minute)
		}
	}

	issuer := middleware.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)
	svc := wiring.New(wiring.Deps{
		DB:             runner,
		Events:         publisher,
		Tokens:         issuer,
		Store:          store,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Logger:         logger,
	})
	issuer.CheckAccounts(svc.Accounts)

	app := &handlers.App{
		Users:          svc.Users,
		Charities:      svc.Charities,
		Campaigns:      svc.Campaigns,
		Donations:      svc.Donations,
		Reviews:        svc.Reviews,
		Feedback:       svc.Feedback,
		Withdrawals:    svc.Withdrawals,
		Disbursements:  svc.Disbursements,
		Uploads:        svc.Uploads,
		Stats:          svc.Stats,
		Audit:          svc.Audit,
		Ping:           dbpool.Ping,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Logger:         logger,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Issuer:         issuer,
		Limiter:        limiter,
		AllowedOrigins: cfg.AllowedOrigins(),
		Country:        country,
		Static:         store.Handler(),
		Logger:         logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
