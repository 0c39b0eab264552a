package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/spendwise-server/internal"
	"github.com/frahmantamala/spendwise-server/internal/analytics"
	"github.com/frahmantamala/spendwise-server/internal/auth"
	"github.com/frahmantamala/spendwise-server/internal/budget"
	"github.com/frahmantamala/spendwise-server/internal/category"
	"github.com/frahmantamala/spendwise-server/internal/core/events"
	"github.com/frahmantamala/spendwise-server/internal/expense"
	"github.com/frahmantamala/spendwise-server/internal/storage"
	"github.com/frahmantamala/spendwise-server/internal/transport"
	"github.com/frahmantamala/spendwise-server/internal/transport/rest"
	"github.com/frahmantamala/spendwise-server/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config         *internal.Config
	SQLDB          *sql.DB
	Router         *chi.Mux
	ExpenseService *expense.Service
	Logger         *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		// Write final snapshots before the process exits. In-flight async
		// writes may race this, but Flush carries the newest versions so the
		// persister keeps them regardless of arrival order.
		if err := deps.ExpenseService.Flush(ctx); err != nil {
			slog.Error("Final snapshot flush error", "error", err)
		}
		if err := deps.SQLDB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := storage.Open(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying database: %w", err)
	}

	snapshots := storage.NewSnapshotRepository(db)
	bus := events.NewEventBus(log)
	storage.NewPersister(snapshots, log).Register(bus)

	expenseService := expense.NewService(snapshots, bus, log, config.Budget.Default)

	hydrateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	expenseService.Hydrate(hydrateCtx)

	baseHandler := transport.NewBaseHandler(log)

	var authHandler *auth.Handler
	if config.Security.AuthEnabled() {
		tokenGen := auth.NewJWTTokenGenerator(
			config.Security.TokenSecret,
			config.Security.AccessTokenDuration,
			config.Security.RefreshTokenDuration,
		)
		authService := auth.NewService(config.Security.AccessKeyHash, tokenGen)
		authHandler = auth.NewHandler(baseHandler, authService)
	} else {
		log.Warn("no access key configured, API runs without authentication")
	}

	categoryHandler := category.NewHandler(baseHandler, category.NewService(log))
	expenseHandler := expense.NewHandler(baseHandler, expenseService)
	budgetHandler := budget.NewHandler(baseHandler, expenseService)
	analyticsHandler := analytics.NewHandler(baseHandler, analytics.NewService(expenseService, log))

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, sqlDB, config.Server.AllowedOrigins, authHandler, categoryHandler, expenseHandler, budgetHandler, analyticsHandler, log)

	return &Dependencies{
		Config:         config,
		SQLDB:          sqlDB,
		Router:         router,
		ExpenseService: expenseService,
		Logger:         log,
	}, nil
}
