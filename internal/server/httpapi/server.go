// Package httpapi exposes the JSON HTTP surface of the journaling service.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/avolkova/inkwell/internal/logging"
	"github.com/avolkova/inkwell/internal/server/config"
	"github.com/avolkova/inkwell/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server wires the services onto an echo instance.
type Server struct {
	echo         *echo.Echo
	addr         string
	logger       logging.Logger
	sessions     *services.SessionService
	catalog      *services.CatalogService
	generator    *services.GeneratorService
	entries      *services.EntryService
	cookieSecure bool
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(
	cfg *config.Config,
	l logging.Logger,
	sessions *services.SessionService,
	catalog *services.CatalogService,
	generator *services.GeneratorService,
	entries *services.EntryService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:         e,
		addr:         cfg.EndpointAddrHTTP,
		logger:       l.With("module", "httpapi"),
		sessions:     sessions,
		catalog:      catalog,
		generator:    generator,
		entries:      entries,
		cookieSecure: cfg.CookieSecure,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.requestLogger)

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	s.echo.GET("/auth/status", s.handleAuthStatus)
	s.echo.POST("/auth/set", s.handleAuthSet)
	s.echo.POST("/auth/verify", s.handleAuthVerify)
	s.echo.POST("/auth/logout", s.handleAuthLogout)

	entries := s.echo.Group("/entries", s.sessionRequired)
	entries.GET("", s.handleListEntries)
	entries.POST("", s.handleCreateEntry)
	entries.GET("/:id", s.handleGetEntry)

	prompts := s.echo.Group("/prompts", s.sessionRequired)
	prompts.GET("/gratitude/random", s.handleRandomGratitudePrompt)
	prompts.GET("/creative/personas", s.handleListPersonas)
	prompts.POST("/creative", s.handleGenerateCreative)

	admin := s.echo.Group("/admin", s.sessionRequired)
	admin.PATCH("/prompts/gratitude/:id", s.handleToggleGratitudePrompt)
	admin.PATCH("/personas/:id", s.handleTogglePersona)
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		ctx := c.Request().Context()

		s.logger.Info(ctx, "http request",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"status", c.Response().Status,
			"duration", time.Since(start).String(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)

		return err
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "starting http server", "addr", s.addr)
	err := s.echo.Start(s.addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.echo.Shutdown(ctx)
}
