package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/auth"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/config"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/handler"
	middlewarepkg "github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Analyze *handler.AnalyzeHandler
	History *handler.HistoryHandler
	// Metrics defaults to the Prometheus default gatherer.
	Metrics http.Handler
}

// Register wires all HTTP routes for the API. A nil jwtManager disables
// authentication: /analyze stays anonymous and history routes are not mounted.
// Authenticated /analyze callers need the analyze scope.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	metrics := handlers.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	e.GET("/metrics", echo.WrapHandler(metrics))

	limiter := middlewarepkg.AnalyzeRateLimiter(cfg.RateLimitAnalyze)
	if jwtManager == nil {
		e.POST("/analyze", handlers.Analyze.Analyze, limiter)
		return
	}

	e.POST("/analyze", handlers.Analyze.Analyze,
		middlewarepkg.OptionalJWT(jwtManager),
		middlewarepkg.RequireScopeIfAuthenticated(auth.ScopeAnalyze),
		limiter,
	)

	if handlers.History != nil {
		secured := e.Group("/analyses", middlewarepkg.JWT(jwtManager), middlewarepkg.RequireScope(auth.ScopeHistory))
		secured.GET("", handlers.History.List)
		secured.GET("/:id", handlers.History.Get)
	}
}
