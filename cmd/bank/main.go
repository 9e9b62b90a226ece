package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PZavyalov/bank-account-service/internal/application/services"
	"github.com/PZavyalov/bank-account-service/internal/config"
	"github.com/PZavyalov/bank-account-service/internal/domain/repositories"
	"github.com/PZavyalov/bank-account-service/internal/infrastructure/db/file"
	"github.com/PZavyalov/bank-account-service/internal/infrastructure/db/memory"
	"github.com/PZavyalov/bank-account-service/internal/infrastructure/db/postgres"
	rest "github.com/PZavyalov/bank-account-service/internal/interface/api/rest/chi"
	"github.com/PZavyalov/bank-account-service/internal/interface/api/rest/middleware"
	"github.com/PZavyalov/bank-account-service/pkg/limiter"
	"github.com/PZavyalov/bank-account-service/pkg/logger"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/v2/context"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Server run context.
	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	// Load application configurations.
	cfg := config.MustLoad()

	// Create root logger tagged with server version.
	logger := logger.New(cfg).With(serverCtx, "version", Version)
	defer func() {
		_ = logger.Sync()
	}()

	// Build the account store for the configured driver.
	var (
		accountRepo repositories.AccountRepository
		userRepo    repositories.UserRepository
		trm         services.Transactor
	)

	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.Connect(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to the database: %w", err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				logger.Error(err)
			}
		}()

		// Create default transaction manager for database/sql package.
		trm = manager.Must(
			trmsql.NewDefaultFactory(db),
			manager.WithCtxManager(trmcontext.DefaultManager),
		)

		accountRepo, err = postgres.NewAccountRepository(db, trmsql.DefaultCtxGetter, logger)
		if err != nil {
			return fmt.Errorf("failed to init account repository: %w", err)
		}
		userRepo, err = postgres.NewUserRepository(db, trmsql.DefaultCtxGetter, logger)
		if err != nil {
			return fmt.Errorf("failed to init user repository: %w", err)
		}

	case "file":
		store := file.NewStore(cfg.Storage.FilePath)
		accountRepo = file.NewAccountRepository(store)
		userRepo = file.NewUserRepository(store)
		trm = services.Passthrough{}

	case "memory":
		store := memory.NewStore()
		accountRepo = memory.NewAccountRepository(store)
		userRepo = memory.NewUserRepository(store)
		trm = services.Passthrough{}

	default:
		return fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}

	// Init account service.
	accountService, err := services.NewAccountService(accountRepo, userRepo, trm, logger, cfg)
	if err != nil {
		return fmt.Errorf("failed to init account service: %w", err)
	}

	// Init auth service.
	authService, err := services.NewAuthService(userRepo, logger, cfg)
	if err != nil {
		return fmt.Errorf("failed to init auth service: %w", err)
	}

	// Create root router.
	router := rest.InitChi(logger)

	// Rate limit account mutations.
	rateLimiter := limiter.NewDynamicRateLimiter(cfg.RateLimit.Interval, cfg.RateLimit.Burst)

	// Init and group handlers for auth routes.
	rest.NewAuthController(authService, cfg.JWT.Expiration, logger, rest.ChiServerOptions{
		BaseURL:    "/api/user",
		BaseRouter: router,
	})

	// Init handlers for account routes. Every route requires a
	// signed-in user.
	rest.NewAccountController(accountService, logger, rest.ChiServerOptions{
		BaseURL:    "/api",
		BaseRouter: router,
		Middlewares: []rest.MiddlewareFunc{
			middleware.Middleware(authService),
			limiter.Middleware(rateLimiter),
		},
	})

	// Build HTTP server.
	hs := &http.Server{
		Addr:              cfg.HTTPServer.Address,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
		Handler:           router,
	}

	// Graceful shutdown.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

		signal := <-sig

		logger.With(serverCtx, "signal", signal.String()).
			Infof("Shutting down server with %s timeout",
				cfg.HTTPServer.ShutdownTimeout)

		if err = hs.Shutdown(serverCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %s", err)
		}
		serverStopCtx()
	}()

	// Start the HTTP server with graceful shutdown.
	logger.Infof("Server %v is running at %v", Version, cfg.HTTPServer.Address)
	if err = hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run server failed: %w", err)
	}

	// Wait for server context to be stopped or force exit if timeout exceeded.
	select {
	case <-serverCtx.Done():
	case <-time.After(cfg.HTTPServer.ShutdownTimeout):
		return errors.New("graceful shutdown timed out.. forcing exit")
	}

	return nil
}
