// Package app wires configuration, storage, services and transport into a
// runnable HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	jwtauth "github.com/mpmulbi/aspirasi-backend/internal/auth"
	"github.com/mpmulbi/aspirasi-backend/internal/config"
	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/service/aspiration"
	"github.com/mpmulbi/aspirasi-backend/internal/service/auth"
	"github.com/mpmulbi/aspirasi-backend/internal/service/catalog"
	"github.com/mpmulbi/aspirasi-backend/internal/store"
	"github.com/mpmulbi/aspirasi-backend/internal/store/memory"
	"github.com/mpmulbi/aspirasi-backend/internal/store/postgres"
	"github.com/mpmulbi/aspirasi-backend/internal/store/sqlite"
	"github.com/mpmulbi/aspirasi-backend/internal/transport/middleware"
	"github.com/mpmulbi/aspirasi-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, opens the
// record store, builds the services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("store_driver", cfg.Store.Driver),
		slog.String("log_level", cfg.Log.Level),
	)

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authSvc := auth.NewService(logger, jwtManager, staffAccounts(cfg.Auth.Accounts))

	router := rest.NewRouter(rest.Handlers{
		Aspiration: rest.NewAspirationHandler(aspiration.NewService(logger, st), logger),
		Catalog:    rest.NewCatalogHandler(catalog.NewService(logger, st), logger),
		Auth:       rest.NewAuthHandler(authSvc, logger),
		Health:     rest.NewHealthHandler(st, BuildVersion()),
	})

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}
	var limiter *middleware.RateLimiter
	if cfg.Rate.Enabled {
		limiter = middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.Rate.Limit, cfg.Rate.Window))
	}
	mws = append(mws, middleware.Auth(authSvc))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      middleware.Chain(mws...)(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		return sqlite.New(cfg.Path)
	case "postgres":
		return postgres.New(ctx, cfg.DSN, cfg.MaxConns, cfg.MinConns)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func staffAccounts(configured []config.AccountConfig) []auth.Account {
	accounts := make([]auth.Account, 0, len(configured))
	for _, a := range configured {
		accounts = append(accounts, auth.Account{
			Username:     a.Username,
			Name:         a.Name,
			Role:         domain.UserRole(a.Role),
			PasswordHash: a.PasswordHash,
		})
	}
	return accounts
}
