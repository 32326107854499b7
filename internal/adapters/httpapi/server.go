package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/cargoplan/cargoplan/internal/application/assign"
	"github.com/cargoplan/cargoplan/internal/application/common"
	"github.com/cargoplan/cargoplan/internal/domain/assignment"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
	"github.com/cargoplan/cargoplan/internal/infrastructure/config"
)

// Server is the HTTP surface over the assignment engine
type Server struct {
	engine *gin.Engine
	cfg    *config.ServerConfig
}

// NewServer builds the gin engine with all routes registered
func NewServer(
	cfg *config.ServerConfig,
	db *gorm.DB,
	shipments shipment.Repository,
	voyages voyage.Repository,
	assignments assignment.Repository,
	runner *assign.Runner,
	registry *prometheus.Registry,
	logger common.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))

	shipmentHandler := &ShipmentHandler{
		Shipments:   shipments,
		Assignments: assignments,
		Runner:      runner,
	}
	voyageHandler := &VoyageHandler{
		Voyages:     voyages,
		Assignments: assignments,
		Runner:      runner,
	}
	planHandler := &PlanHandler{Runner: runner}
	healthHandler := &HealthHandler{DB: db}

	shipmentHandler.Register(engine)
	voyageHandler.Register(engine)
	planHandler.Register(engine)
	healthHandler.Register(engine)

	if cfg.Metrics.Enabled && registry != nil {
		engine.GET(cfg.Metrics.Path, gin.WrapH(
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	return &Server{engine: engine, cfg: cfg}
}

// Run starts the HTTP server and blocks
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	return s.engine.Run(addr)
}

// Handler exposes the underlying http.Handler for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// requestLogger injects the logger into the request context and writes one
// line per request
func requestLogger(logger common.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if logger != nil {
			c.Request = c.Request.WithContext(common.WithLogger(c.Request.Context(), logger))
		}
		start := time.Now()
		c.Next()
		if logger != nil {
			logger.Info("http request", map[string]interface{}{
				"method":  c.Request.Method,
				"path":    c.Request.URL.Path,
				"status":  c.Writer.Status(),
				"latency": time.Since(start).String(),
			})
		}
	}
}
