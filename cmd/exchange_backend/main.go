package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	portssvc "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/services"
	"github.com/olegmos-dev/crypto_exchange_app/internal/handlers"
	"github.com/olegmos-dev/crypto_exchange_app/internal/middleware"
	"github.com/olegmos-dev/crypto_exchange_app/internal/platform/config"
	"github.com/olegmos-dev/crypto_exchange_app/internal/platform/metrics"
	"github.com/olegmos-dev/crypto_exchange_app/internal/ratefeed"
	"github.com/olegmos-dev/crypto_exchange_app/internal/repositories/database/pgsql"
	"github.com/olegmos-dev/crypto_exchange_app/pkg/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer, err := services.NewServiceContainer(repos, cfg)
	if err != nil {
		logger.Error("Failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m := metrics.NewExchangeMetrics(prometheus.DefaultRegisterer)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateLimitMW, err := buildRateLimiter(cfg.APIRateLimit)
	if err != nil {
		logger.Error("Failed to build rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, m, rateLimitMW)

	// Background workers share the signal-bound context.
	if cfg.RateFeedEnabled {
		feed := ratefeed.New(serviceContainer.Rate, m, logger.With(slog.String("worker", "ratefeed")), ratefeed.Config{
			BaseURL:        cfg.CoinGeckoURL,
			Interval:       cfg.RateUpdateInterval,
			RequestTimeout: cfg.RateRequestTimeout,
			ProfitPercent:  cfg.RateFeedProfitPercent,
		})
		go feed.Run(ctx)
	}
	go runExpirySweeper(ctx, serviceContainer, m, logger.With(slog.String("worker", "expiry_sweeper")), cfg.ExpirySweepInterval)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped.")
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection; the pgx stdlib driver keeps it compatible with the
// main pool.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// buildRateLimiter parses the formatted limit (e.g. "120-M") into an
// in-memory per-IP limiter for the public API group.
func buildRateLimiter(formatted string) (gin.HandlerFunc, error) {
	if formatted == "" {
		return nil, nil
	}
	limiterRate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(limitermemory.NewStore(), limiterRate)
	return middleware.RateLimit(instance), nil
}

// runExpirySweeper periodically flips overdue pending orders to expired so
// abandoned orders do not rely on being read to die.
func runExpirySweeper(ctx context.Context, svc *portssvc.ServiceContainer, m *metrics.ExchangeMetrics, logger *slog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			count, err := svc.Order.ExpireOverdue(ctx)
			if err != nil {
				logger.Error("Expiry sweep failed", slog.String("error", err.Error()))
				continue
			}
			if count > 0 {
				m.RecordExpired(count)
				logger.Info("Expiry sweep completed", slog.Int64("expired", count))
			}
		}
	}
}
