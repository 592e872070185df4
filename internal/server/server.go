// Package server exposes the verification pipeline over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/veriwiki/internal/model"
)

const (
	readTimeout = 30 * time.Second
	idleTimeout = 2 * time.Minute

	// The pipeline chains up to four sequential upstream calls, so
	// responses can take a while
	writeTimeout = 5 * time.Minute
)

// Server is the veriwiki HTTP server
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates the server with routes and middleware wired up
func New(cfg model.ServerConfig, handler *Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(Recovery(logger), RequestLogger(logger), CORS())

	registerRoutes(engine, handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      engine,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		logger: logger,
	}
}

func registerRoutes(engine *gin.Engine, handler *Handler) {
	engine.GET("/healthz", handler.Health)

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/verify", handler.Verify)
	}
}

// Run starts the server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}
