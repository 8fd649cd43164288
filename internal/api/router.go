package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/charlesng35/codeshelf/internal/app"
	"github.com/charlesng35/codeshelf/internal/handlers"
	"github.com/charlesng35/codeshelf/internal/middleware"
	"github.com/charlesng35/codeshelf/internal/monitoring"
	"github.com/charlesng35/codeshelf/internal/monitoring/checks"
)

const healthProbeTimeout = 2 * time.Second

// Option customises router construction.
type Option func(*routerOptions)

type routerOptions struct {
	readiness []monitoring.Check
}

// WithReadinessCheck registers an additional readiness probe next to the database ping.
func WithReadinessCheck(check monitoring.Check) Option {
	return func(o *routerOptions) {
		o.readiness = append(o.readiness, check)
	}
}

// NewRouter builds the Gin engine, wires middleware and registers the store routes. Every
// resource is served at the root and mirrored under /api.
func NewRouter(db *gorm.DB, cfg *app.Config, opts ...Option) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	options := routerOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowedOrigins...))

	var health *handlers.HealthHandler
	if cfg.Monitoring.Health.Enabled {
		manager := monitoring.NewHealthManager(healthProbeTimeout)
		manager.RegisterReadiness(checks.Database(db))
		for _, check := range options.readiness {
			manager.RegisterReadiness(check)
		}
		health = handlers.NewHealthHandler(manager)
	} else {
		health = handlers.NewHealthHandler(nil)
	}

	snippetHandler, err := handlers.NewSnippetHandler(db)
	if err != nil {
		return nil, err
	}
	tagHandler, err := handlers.NewTagHandler(db)
	if err != nil {
		return nil, err
	}
	categoryHandler, err := handlers.NewCategoryHandler(db)
	if err != nil {
		return nil, err
	}

	for _, group := range []*gin.RouterGroup{r.Group(""), r.Group("/api")} {
		registerHealthRoutes(group, health)
		registerSnippetRoutes(group, snippetHandler)
		registerTagRoutes(group, tagHandler)
		registerCategoryRoutes(group, categoryHandler)
	}

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	r.HandleMethodNotAllowed = true
	r.NoMethod(middleware.MethodNotAllowedHandler)
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
