package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/contracts-api/internal/api"
	"github.com/phrazzld/contracts-api/internal/api/middleware"
	"github.com/phrazzld/contracts-api/internal/api/shared"
	"github.com/phrazzld/contracts-api/internal/redact"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	limiterIdleTTL = 10 * time.Minute
	healthTimeout  = 2 * time.Second
)

// setupRouter mounts every route. Collectors are registered with app.registry,
// so it must be called once per application.
func (app *application) setupRouter() (http.Handler, error) {
	metrics, err := middleware.NewMetrics(app.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register http metrics: %w", err)
	}

	loginRejected := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "contracts",
		Subsystem: "auth",
		Name:      "login_rate_limited_total",
		Help:      "Login attempts rejected by the per-IP rate limiter.",
	})
	if err := app.registry.Register(loginRejected); err != nil {
		return nil, fmt.Errorf("failed to register login metrics: %w", err)
	}
	limiter := middleware.NewRateLimiter(
		app.config.RateLimit.LoginRPS,
		app.config.RateLimit.LoginBurst,
		limiterIdleTTL,
		loginRejected,
	)

	authMiddleware, err := middleware.NewAuthMiddleware(app.tokenParser, app.signing)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth middleware: %w", err)
	}

	authHandler := api.NewAuthHandler(app.authenticator, app.logger)
	clientHandler := api.NewClientHandler(app.clientService, app.logger)
	clientContracts := api.NewClientContractsHandler(app.clientService, app.contractService, app.logger)
	contractHandler := api.NewContractHandler(app.contractService, app.logger)
	serviceHandler := api.NewServiceHandler(app.catalogService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewTraceMiddleware(app.logger))
	r.Use(chimw.Recoverer)
	r.Use(metrics.Handler)

	r.Get("/health", app.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.With(limiter.Handler).Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/clients", func(r chi.Router) {
				clientHandler.Routes(r)
				r.Get("/{id}/contracts", clientContracts.List)
			})
			r.Route("/contracts", contractHandler.Routes)
			r.Route("/services", serviceHandler.Routes)
			r.Route("/users", userHandler.Routes)
		})
	})

	return r, nil
}

// handleHealth reports whether the database answers a ping.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	if app.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := app.db.PingContext(ctx); err != nil {
			app.logger.Warn("health check failed", "error", redact.Error(err))
			shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
