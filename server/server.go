// Package server exposes assignment runs over HTTP. Reports live in memory
// only; the most recent one is served until the next run replaces it.
package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"ticket-assigner/config"
	"ticket-assigner/engine"
	customerrors "ticket-assigner/errors"
	"ticket-assigner/formatter"
	"ticket-assigner/metrics"
	"ticket-assigner/models"
	"ticket-assigner/parser"
)

// Server holds the latest report and runs new ones on request.
type Server struct {
	cfg    config.Config
	logger zerolog.Logger
	now    func() time.Time

	// runMu serializes runs; the run gauges in metrics are process-wide.
	runMu sync.Mutex

	mu     sync.RWMutex
	latest *models.Report
}

func New(cfg config.Config, logger zerolog.Logger) *Server {
	return &Server{cfg: cfg, logger: logger, now: time.Now}
}

// Router builds the gin engine.
func (s *Server) Router(corsOrigin string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(s.logger))

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}
	if corsOrigin == "" || corsOrigin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{corsOrigin}
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", s.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.POST("/runs", s.CreateRun)
		api.GET("/runs/latest", s.LatestRun)
		api.GET("/runs/latest/simplified", s.LatestRunSimplified)
	}
	return r
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateRun parses the request body as a dataset, runs it and stores the
// report as the latest one.
func (s *Server) CreateRun(c *gin.Context) {
	ds, err := parser.Parse(c.Request.Body)
	if err != nil {
		var verr *customerrors.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dataset", "problems": verr.Problems})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.runMu.Lock()
	report := engine.New(s.cfg,
		engine.WithLogger(s.logger.With().Str("request_id", c.GetString(RequestIDHeader)).Logger()),
		engine.WithClock(s.now),
	).Process(ds)
	s.runMu.Unlock()

	s.mu.Lock()
	s.latest = report
	s.mu.Unlock()

	c.JSON(http.StatusCreated, formatter.Rounded(report))
}

func (s *Server) LatestRun(c *gin.Context) {
	report, ok := s.latestReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, formatter.Rounded(report))
}

func (s *Server) LatestRunSimplified(c *gin.Context) {
	report, ok := s.latestReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, engine.Simplify(report))
}

func (s *Server) latestReport(c *gin.Context) (*models.Report, bool) {
	s.mu.RLock()
	report := s.latest
	s.mu.RUnlock()
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": customerrors.ErrNoReportAvailable.Error()})
		return nil, false
	}
	return report, true
}
