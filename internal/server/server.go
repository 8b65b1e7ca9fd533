package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cosmic-portfolio/internal/assistant"
	"cosmic-portfolio/internal/logging"
	"cosmic-portfolio/internal/widget"
)

// Relay answers free text with a language model.
type Relay interface {
	Reply(ctx context.Context, message string) (string, error)
}

type Config struct {
	Addr    string
	Engine  *assistant.Engine
	Relay   Relay // nil makes /api/chat answer with the backend error
	Widgets *widget.Registry
	Logger  *zap.Logger
}

// Server is the portfolio HTTP API.
type Server struct {
	addr    string
	engine  *assistant.Engine
	relay   Relay
	widgets *widget.Registry
	logger  *zap.Logger
	router  *gin.Engine
}

func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		addr:    cfg.Addr,
		engine:  cfg.Engine,
		relay:   cfg.Relay,
		widgets: cfg.Widgets,
		logger:  logger,
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.Gin(logger))

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/chat", s.handleChat)
	api.POST("/assistant", s.handleAssistant)
	api.GET("/projects", s.handleProjects)
	api.GET("/projects/search", s.handleProjectSearch)

	w := api.Group("/widget")
	w.POST("", s.handleWidgetCreate)
	w.GET("/:id", s.withWidget(s.handleWidgetGet))
	w.POST("/:id/open", s.withWidget(s.handleWidgetOpen))
	w.POST("/:id/close", s.withWidget(s.handleWidgetClose))
	w.POST("/:id/messages", s.withWidget(s.handleWidgetMessage))
	w.POST("/:id/quick/:action", s.withWidget(s.handleWidgetQuick))
	w.DELETE("/:id", s.handleWidgetDelete)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}
