package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"botboard/internal/adapters/binance"
	"botboard/internal/adapters/config"
	"botboard/internal/adapters/errors/noop"
	"botboard/internal/adapters/errors/sentry"
	"botboard/internal/adapters/postgres"
	"botboard/internal/adapters/redis"
	"botboard/internal/adapters/telegram"
	"botboard/internal/api"
	"botboard/internal/api/health"
	"botboard/internal/api/middleware"
	"botboard/internal/api/web"
	"botboard/internal/domain/bot"
	"botboard/internal/domain/marketdata"
	"botboard/internal/metrics"
	pgrepo "botboard/internal/repository/postgres"
	authsvc "botboard/internal/services/auth"
	pkgauth "botboard/pkg/auth"
	"botboard/pkg/errors"
	"botboard/pkg/logger"

	promclient "github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	metrics.Init()

	// Database connections
	pg, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pg.Close()

	rds, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer rds.Close()

	promclient.MustRegister(metrics.NewCustomCollector(log, pg.DB()))

	// Repositories and services
	botRepo := pgrepo.NewBotRepository(pg.DB())
	userRepo := pgrepo.NewUserRepository(pg.DB())

	botService := bot.NewService(botRepo)
	jwtService := pkgauth.NewJWTService(cfg.Auth.JWTSecret, cfg.App.Name, cfg.Auth.TokenDuration)
	authService := authsvc.NewService(userRepo, jwtService)
	marketService := marketdata.NewService(initQuoteProvider(cfg, log), rds, cfg.MarketData.QuoteCacheTTL)

	// Ops notifier (optional)
	var notifier *telegram.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.AdminChatID != 0 {
		notifier, err = telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
		if err != nil {
			log.Warnf("Failed to initialize telegram notifier: %v", err)
		} else {
			log.Info("Telegram ops notifications enabled")
		}
	}

	// HTTP layer
	handlers, err := web.NewHandlers(botService, marketService, authService, notifier, cfg.Auth, log)
	if err != nil {
		log.Fatalf("Failed to build web handlers: %v", err)
	}

	authMW := middleware.NewAuthMiddleware(authService, log)
	healthHandler := health.New(log, pg.DB(), rds.Client(), cfg.App.Name, cfg.App.Version)

	server := api.NewServer(api.ServerConfig{
		Port:        cfg.HTTP.Port,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	}, handlers, authMW, healthHandler, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	waitForShutdown(server, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Sentry error tracking enabled")
	return tracker
}

// initQuoteProvider selects the market data source. The simulated
// provider is the documented default; Binance is opt-in via config.
func initQuoteProvider(cfg *config.Config, log *logger.Logger) marketdata.Provider {
	switch cfg.MarketData.Provider {
	case "binance":
		log.Info("Using Binance market data provider")
		return binance.NewProvider(cfg.MarketData.BinanceAPIKey, cfg.MarketData.BinanceSecret)
	default:
		log.Infof("Using simulated market data provider (delay %s)", cfg.MarketData.SimulatedDelay)
		return marketdata.NewSimulatedProvider(cfg.MarketData.SimulatedDelay)
	}
}

// waitForShutdown blocks until SIGINT/SIGTERM, then drains the server
func waitForShutdown(server *api.Server, tracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Infof("Received signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}

	_ = tracker.Flush(ctx)
	log.Info("Shutdown complete")
}
