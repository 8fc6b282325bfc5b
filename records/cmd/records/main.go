package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/precinct-systems/precinct-stack/common/logging"
	"github.com/precinct-systems/precinct-stack/common/messaging"
	"github.com/precinct-systems/precinct-stack/common/messaging/nats"
	"github.com/precinct-systems/precinct-stack/records/internal/audit"
	"github.com/precinct-systems/precinct-stack/records/internal/config"
	"github.com/precinct-systems/precinct-stack/records/internal/handlers"
	"github.com/precinct-systems/precinct-stack/records/internal/middleware"
	"github.com/precinct-systems/precinct-stack/records/internal/notify"
	"github.com/precinct-systems/precinct-stack/records/internal/ratelimit"
	"github.com/precinct-systems/precinct-stack/records/internal/repository"
	"github.com/precinct-systems/precinct-stack/records/internal/search"
	"github.com/precinct-systems/precinct-stack/records/internal/server"
	"github.com/precinct-systems/precinct-stack/records/internal/service"
	"github.com/precinct-systems/precinct-stack/records/internal/storage"
	"github.com/precinct-systems/precinct-stack/records/pkg/tokens"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("records"))
	logging.SetDefault(logger)

	slog.Info("Starting Records service",
		slog.Int("port", cfg.Server.Port),
		slog.String("database", cfg.Database.Type),
	)

	var repo repository.Repository
	if cfg.Database.Type == "postgres" {
		connString := cfg.Database.Postgres.DSN()

		slog.Info("Connecting to PostgreSQL",
			slog.String("host", cfg.Database.Postgres.Host),
			slog.Int("port", cfg.Database.Postgres.Port),
			slog.String("database", cfg.Database.Postgres.Database),
		)

		pgRepo, err := repository.NewPostgresRepository(context.Background(), connString)
		if err != nil {
			slog.Error("Failed to connect to PostgreSQL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pgRepo.Close()
		repo = pgRepo

		slog.Info("Running database migrations")
		m, err := migrate.New("file://migrations", connString)
		if err != nil {
			slog.Error("Failed to initialize migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			slog.Error("Failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		slog.Warn("Using in-memory repository (development only)")
		repo = repository.NewMemoryRepository()
	}

	store, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		slog.Error("Failed to prepare upload directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var publisher messaging.Publisher
	if cfg.NATS.Enabled {
		natsCfg := nats.DefaultConfig()
		natsCfg.URL = cfg.NATS.URL
		natsCfg.Name = "precinct-records"
		client, err := nats.NewClient(natsCfg)
		if err != nil {
			slog.Error("Failed to connect to NATS", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		slog.Info("Connected to NATS", slog.String("url", cfg.NATS.URL))
	}

	var indexer *search.Indexer
	if cfg.Search.Enabled {
		indexer, err = search.NewIndexer(search.Config{
			URL:      cfg.Search.URL,
			Index:    cfg.Search.Index,
			Username: cfg.Search.Username,
			Password: cfg.Search.Password,
			Insecure: cfg.Search.Insecure,
		}, logger.Logger)
		if err != nil {
			slog.Error("Failed to connect to OpenSearch", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("Connected to OpenSearch", slog.String("index", cfg.Search.Index))
	}

	auditLog := audit.NewLogger(cfg.Auth.AuditSecret, repo, logger.Logger)
	notifier := notify.New(publisher, logger.Logger)
	issuer := tokens.NewIssuer(cfg.Auth.JWTSecret)

	authService := service.NewAuthService(repo, issuer, auditLog, notifier, logger.Logger)
	recordsService := service.NewRecordsService(repo, auditLog, notifier, indexer, store, logger.Logger)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(bootCtx); err != nil {
		cancelBoot()
		slog.Error("Failed to seed bootstrap admin", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cancelBoot()

	var limiter ratelimit.RateLimiter
	if cfg.Redis.Enabled {
		limiter, err = ratelimit.NewRedisRateLimiter(cfg.Redis.URL, cfg.Redis.RateLimit, cfg.Redis.RateWindow, false)
		if err != nil {
			slog.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("Rate limiting enabled",
			slog.Int("limit", cfg.Redis.RateLimit),
			slog.Duration("window", cfg.Redis.RateWindow))
	} else {
		limiter = &ratelimit.NoOpRateLimiter{}
	}
	defer limiter.Close()

	authMW := middleware.NewAuthMiddleware(authService)
	router := server.NewRouter(server.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Users:   handlers.NewUsersHandler(authService),
		Records: handlers.NewRecordsHandler(recordsService),
		Civil:   handlers.NewCivilHandler(recordsService),
		Public:  handlers.NewPublicHandler(recordsService),
		Audit:   handlers.NewAuditHandler(recordsService),
		Search:  handlers.NewSearchHandler(recordsService),
		Upload:  handlers.NewUploadHandler(store),
	}, authMW, limiter, store.BaseDir(), cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("Records service listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Server stopped gracefully")
}
