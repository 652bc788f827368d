package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/objgate/server/cmd/server/docs" // swagger docs
	"github.com/objgate/server/internal/infra/storage"
	"github.com/objgate/server/internal/module/bucket"
	"github.com/objgate/server/internal/module/object"
	"github.com/objgate/server/internal/module/presign"
	"github.com/objgate/server/internal/shared/config"
	"github.com/objgate/server/internal/shared/logger"
	"github.com/objgate/server/internal/shared/metrics"
	"github.com/objgate/server/internal/shared/middleware"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config    *config.Config
	Logger    *logger.Logger
	ZapLogger *zap.Logger
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry
	Prober    *storage.Prober

	// HTTP Handlers
	BucketHandler  *bucket.Handler
	ObjectHandler  *object.Handler
	PresignHandler *presign.Handler
}

// App represents the application.
type App struct {
	deps    *Dependencies
	router  *gin.Engine
	cleanup func()
}

// New creates a new application instance.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	deps, cleanup, err := InitializeDependencies(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init dependencies: %w", err)
	}

	app := &App{
		deps:    deps,
		cleanup: cleanup,
	}
	app.router = app.setupRouter()

	deps.ZapLogger.Info("application initialized",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("region", cfg.Storage.Region),
		zap.Duration("url_expiry", cfg.Presign.URLExpiry),
		zap.Bool("strict_status", cfg.Presign.StrictStatus),
	)

	return app, nil
}

// Router returns the HTTP handler.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Logger returns the service logger.
func (a *App) Logger() *zap.Logger {
	return a.deps.ZapLogger
}

// Stop releases application resources.
func (a *App) Stop() {
	a.deps.ZapLogger.Info("application stopping")
	if a.cleanup != nil {
		a.cleanup()
	}
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	cfg := a.deps.Config

	// Set Gin mode based on environment
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Probe and scrape traffic is not logged.
	r.Use(middleware.Recovery(a.deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.deps.Logger, "/health", cfg.Metrics.Path))
	r.Use(middleware.CORS(corsConfig(cfg.CORS)))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(a.deps.Metrics))
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(a.deps.Registry, promhttp.HandlerOpts{})))
	}

	r.GET("/health", a.health)

	// Swagger documentation endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	api := r.Group("/api")
	a.deps.BucketHandler.RegisterRoutes(api)
	a.deps.ObjectHandler.RegisterRoutes(api)
	a.deps.PresignHandler.RegisterRoutes(api)

	return r
}

// health reports liveness and storage reachability.
func (a *App) health(c *gin.Context) {
	report := a.deps.Prober.Check(c.Request.Context())

	status := http.StatusOK
	if report.Status == storage.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":  report.Status,
		"storage": report,
	})
}

func corsConfig(cfg config.CORSConfig) middleware.CORSConfig {
	out := middleware.DefaultCORSConfig()
	if len(cfg.AllowOrigins) > 0 {
		out.AllowOrigins = cfg.AllowOrigins
	}
	if cfg.MaxAge > 0 {
		out.MaxAge = cfg.MaxAge
	}
	return out
}
