// internal/server/server.go
package server

import (
	"net/http"
	"time"

	"assist-server/internal/assist"
	"assist-server/internal/common/config"
	"assist-server/internal/common/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the gin engine, middleware, and routes around the assist service.
type Server struct {
	config  *config.Config
	engine  *gin.Engine
	service *assist.Service
	logger  logger.Logger
}

func New(cfg *config.Config, service *assist.Service, log logger.Logger) *Server {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:  cfg,
		service: service,
		logger: log.With(map[string]interface{}{
			"component": "server",
		}),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())
	engine.Use(RequestLogger(s.logger))
	engine.Use(PINGuard(cfg.Server.AccessPIN))

	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	{
		api.GET("/meta", s.handleMeta)
		api.POST("/assist", s.handleAssist)
	}

	if cfg.Server.PublicDir != "" {
		engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.Server.PublicDir))))
	}

	s.engine = engine
	return s
}

// Engine exposes the underlying gin engine for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// HTTPServer builds the http.Server used by the entry point.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
