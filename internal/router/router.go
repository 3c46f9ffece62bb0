package router

import (
	"net/http"

	"client_tracker_backend/internal/config"
	"client_tracker_backend/internal/handlers"
	"client_tracker_backend/internal/middleware"
	"client_tracker_backend/internal/repositories"
	"client_tracker_backend/internal/services"
	"client_tracker_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Dependencies are the collaborators the HTTP surface is built from.
type Dependencies struct {
	Config     *config.Config
	ClientRepo repositories.ClientRepository
	// Metrics is optional; nil disables request metrics and /metrics.
	Metrics *middleware.Metrics
	// ServiceOptions are passed to the client service, e.g. a fixed clock in tests.
	ServiceOptions []services.Option
}

// New builds a gin engine with the full middleware chain and every route.
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	engine.HandleMethodNotAllowed = false
	Setup(engine, deps)
	return engine
}

// Setup installs middleware and routes on engine.
func Setup(engine *gin.Engine, deps Dependencies) {
	cfg := deps.Config

	engine.Use(
		middleware.Recovery(),
		middleware.DevelopmentMode(cfg.IsDevelopment()),
		middleware.RequestID(),
		utils.GinLogger(),
		middleware.SecurityHeaders(),
	)
	if deps.Metrics != nil {
		engine.Use(deps.Metrics.Handler())
	}
	engine.Use(
		middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow).Handler(),
		middleware.CORS(cfg.FrontendURL, cfg.ExtraOrigins),
		middleware.BodyLimit(cfg.BodyLimitBytes),
		middleware.ErrorHandler(),
	)

	clientService := services.NewClientService(deps.ClientRepo, deps.ServiceOptions...)
	clientHandler := handlers.NewClientHandler(clientService)
	healthHandler := handlers.NewHealthHandler(cfg.Environment, config.Version)

	engine.GET("/health", healthHandler.GetHealth)
	if deps.Metrics != nil {
		engine.GET("/metrics", deps.Metrics.Expose())
	}

	api := engine.Group(cfg.APIPrefix)
	if cfg.APIPrefix != "" && cfg.APIPrefix != "/" {
		api.GET("/health", healthHandler.GetHealth)
	}
	SetupClientRoutes(api, clientHandler)

	engine.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeRouteNotFound, "Route not found", "").
			WithPath(c.Request.URL.RequestURI()))
	})
}
