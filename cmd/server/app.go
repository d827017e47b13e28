package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/contracts-api/internal/config"
	"github.com/phrazzld/contracts-api/internal/platform/postgres"
	"github.com/phrazzld/contracts-api/internal/service"
	"github.com/phrazzld/contracts-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds the shared dependencies of the HTTP server and releases
// them on shutdown.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	registry *prometheus.Registry

	clientService   service.ClientService
	contractService service.ContractService
	catalogService  service.CatalogService
	userService     service.UserService

	authenticator auth.Authenticator
	tokenParser   auth.TokenParser
	signing       *auth.SigningConfig
}

// newApplication builds the stores, services and auth components on top of db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	signing, err := auth.NewSigningConfig(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to build signing config: %w", err)
	}
	app.signing = signing
	logger.Info("token signing configured", "token_lifetime", signing.ExpiresIn().String())

	clientStore := postgres.NewPostgresClientStore(db, logger)
	contractStore := postgres.NewPostgresContractStore(db, logger)
	serviceStore := postgres.NewPostgresServiceStore(db, logger)
	userStore := postgres.NewPostgresUserStore(db, logger)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewJWTTokens()
	app.tokenParser = tokens

	if app.clientService, err = service.NewClientService(clientStore, logger); err != nil {
		return nil, fmt.Errorf("failed to create client service: %w", err)
	}
	if app.contractService, err = service.NewContractService(contractStore, logger); err != nil {
		return nil, fmt.Errorf("failed to create contract service: %w", err)
	}
	if app.catalogService, err = service.NewCatalogService(serviceStore, logger); err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}
	if app.userService, err = service.NewUserService(userStore, hasher, logger); err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	if app.authenticator, err = auth.NewAuthenticationService(userStore, hasher, tokens, signing, logger); err != nil {
		return nil, fmt.Errorf("failed to create authentication service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
