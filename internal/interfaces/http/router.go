// Package http assembles the gin engine and HTTP server of the API surface.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molforge/internal/application/generator"
	"github.com/turtacn/molforge/internal/application/runs"
	"github.com/turtacn/molforge/internal/config"
	"github.com/turtacn/molforge/internal/domain/chem"
	"github.com/turtacn/molforge/internal/domain/library"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	promm "github.com/turtacn/molforge/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molforge/internal/interfaces/http/handlers"
	"github.com/turtacn/molforge/internal/interfaces/http/middleware"
)

// RouterDeps carries everything the route table needs.
type RouterDeps struct {
	Config     *config.Config
	Toolkit    chem.Toolkit
	Service    *generator.Service
	Store      *runs.Store
	Library    *library.Library
	Logger     logging.Logger
	Collector  *promm.Collector
	GenMetrics *promm.GenerationMetrics
	Version    string
}

// NewRouter builds the full middleware chain and route table.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(ginMode(deps.Config.Server.Mode))

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogging(deps.Logger, "/healthz", "/metrics"))
	engine.Use(middleware.CORS())

	if deps.Collector != nil {
		engine.Use(middleware.Metrics(promm.NewHTTPMetrics(deps.Collector.Registry())))
		engine.GET("/metrics", gin.WrapH(deps.Collector.Handler()))
	}

	health := handlers.NewHealthHandler(deps.Version)
	engine.GET("/healthz", health.Health)

	molecules := handlers.NewMoleculeHandler(
		deps.Toolkit,
		deps.Service,
		deps.Store,
		deps.Library,
		deps.Config.Generation,
		deps.Config.Render,
		deps.Logger,
		deps.GenMetrics,
	)

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/molecules/generate", molecules.Generate)
		v1.GET("/runs/:runID", molecules.GetRun)
		v1.GET("/runs/:runID/csv", molecules.DownloadCSV)
		v1.GET("/runs/:runID/molecules/:molID/image", molecules.MoleculeImage)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Code:    "COMMON_003",
			Message: "route not found",
		})
	})

	return engine
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
