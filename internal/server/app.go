// Package server wires the identity backend together: configuration,
// logging, the signing secret, the record store, and the services built on
// them. Secret resolution happens here, once, before anything that signs or
// verifies is constructed.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/schoolcloud/identity/internal/logging"
	"github.com/schoolcloud/identity/internal/server/auth"
	"github.com/schoolcloud/identity/internal/server/config"
	"github.com/schoolcloud/identity/internal/server/repositories/store"
	"github.com/schoolcloud/identity/internal/server/secrets"
	"github.com/schoolcloud/identity/internal/server/services"
)

type App struct {
	Config   *config.Config
	Logger   logging.Logger
	Store    store.Store
	Tokens   *auth.TokenService
	Guard    *auth.Guard
	Ledger   *services.Ledger
	Identity *services.IdentityService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	logger := logging.NewSlogLogger(slogger)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Fail closed: a configured managed secret that cannot be fetched
	// stops startup instead of degrading to the development default.
	provider := secrets.NewProvider(cfg.JWTParam, cfg.JWTSecret, cfg.AWSRegion)
	secret, err := provider.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	st, err := store.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	tokens := auth.NewTokenService(secret, cfg.TokenValidityDuration)
	guard := auth.NewGuard(tokens)
	ledger := services.NewLedger(st.Events(), logger)
	identity := services.NewIdentityService(st.Users(), ledger, tokens, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    st,
		Tokens:   tokens,
		Guard:    guard,
		Ledger:   ledger,
		Identity: identity,
	}, nil
}

// Close releases store resources for backends that hold any.
func (app *App) Close() error {
	if closer, ok := app.Store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
