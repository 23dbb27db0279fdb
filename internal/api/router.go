package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/schedcu/orsched/internal/api/handlers"
	"github.com/schedcu/orsched/internal/job"
	"github.com/schedcu/orsched/internal/metrics"
	"github.com/schedcu/orsched/internal/repository"
	"github.com/schedcu/orsched/internal/service"
)

// Router creates and configures the Echo router
type Router struct {
	echo      *echo.Echo
	scheduler *job.JobScheduler
}

// ServiceDeps holds all business logic services the HTTP layer depends on.
type ServiceDeps struct {
	DB           repository.Database
	Optimization service.OptimizationService
	CaseLists    service.CaseListImportService
	Metrics      *metrics.MetricsRegistry
}

// NewRouter creates a new Echo router with all routes
func NewRouter(scheduler *job.JobScheduler, services *ServiceDeps) *Router {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	r := &Router{echo: e, scheduler: scheduler}

	optimizationHandler := handlers.NewOptimizationHandler(services.Optimization, scheduler)
	caseListHandler := handlers.NewCaseListHandler(services.CaseLists, scheduler)

	e.GET("/api/health", r.Health)
	e.GET("/api/health/db", r.HealthDB(services.DB))

	runGroup := e.Group("/api/hospitals/:hospitalID")
	runGroup.POST("/optimize", optimizationHandler.SubmitRun)
	runGroup.POST("/case-list", caseListHandler.Import)

	e.GET("/api/runs/:id", optimizationHandler.GetRun)
	e.GET("/api/runs/:id/progress", optimizationHandler.GetProgress)
	e.POST("/api/runs/:id/cancel", optimizationHandler.CancelRun)

	cacheGroup := e.Group("/api/cache")
	cacheGroup.GET("/stats", optimizationHandler.CacheStats)
	cacheGroup.POST("/clear", optimizationHandler.ClearCache)
	cacheGroup.POST("/cleanup", optimizationHandler.CleanupCache)

	e.GET("/metrics", echo.WrapHandler(services.Metrics.GetHandler()))

	return r
}

// Start starts the HTTP server
func (r *Router) Start(addr string) error {
	return r.echo.Start(addr)
}

// Shutdown gracefully shuts down the server
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
