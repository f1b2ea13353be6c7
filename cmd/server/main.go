package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/graph"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/fixtures"
	"github.com/mmynk/splitledger/internal/storage/memory"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/logging"
	"github.com/mmynk/splitledger/pkg/rpc/authv1"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.SeedFixtures {
		if err := fixtures.Seed(ctx, store, cfg.BcryptCost); err != nil {
			return err
		}
	}

	// Auth
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store, cfg.BcryptCost)
	identity := auth.NewIdentityResolver(jwtManager, store, slog.Default())
	accounts := service.NewAccounts(authenticator, jwtManager, slog.Default())

	schema, err := graph.NewSchema(graph.Services{
		Members:  service.NewMemberService(store),
		Groups:   service.NewGroupService(store),
		Expenses: service.NewExpenseService(store),
		Accounts: accounts,
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", graph.NewHandler(schema))

	authPath, authHandler := authv1.NewAuthServiceHandler(
		service.NewAuthService(accounts, slog.Default()),
		connect.WithInterceptors(
			middleware.LoggingInterceptor(),
			middleware.RequireAuth(authv1.AuthServiceGetCurrentUserProcedure),
		),
	)
	mux.Handle(authPath, authHandler)

	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Outermost first: metrics, CORS, current user, request logging.
	handler := metrics.InstrumentHandler(
		middleware.CORS(
			middleware.CurrentUser(identity)(
				middleware.RequestLogger(mux),
			),
		),
	)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect gRPC clients)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting",
			"address", server.Addr,
			"graphql", "http://localhost"+server.Addr+"/graphql",
			"storage", storageName(cfg.DBPath),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openStore opens the SQLite database at dbPath, or an in-memory store when it is empty.
func openStore(dbPath string) (storage.Store, error) {
	if dbPath == "" {
		slog.Info("Storage initialized", "backend", "memory")
		return memory.New(), nil
	}
	store, err := sqlite.New(dbPath)
	if err != nil {
		return nil, err
	}
	slog.Info("Storage initialized", "backend", "sqlite", "database", dbPath)
	return store, nil
}

func storageName(dbPath string) string {
	if dbPath == "" {
		return "memory"
	}
	return dbPath
}
