// Package api hosts the views over HTTP. Every request drives one tab.
package api

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/crudnote/internal/config"
	"github.com/jon4hz/crudnote/internal/router"
	"github.com/jon4hz/crudnote/internal/static"
)

// SessionCookieName is the cookie holding the tab-scoped session.
const SessionCookieName = "crudnote_session"

const shutdownTimeout = 5 * time.Second

// Server is the HTTP server hosting the views.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	router    *router.Router
	shell     *template.Template
}

// New creates the HTTP server rendering the views of r.
func New(cfg *config.Config, r *router.Router, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if r == nil {
		return nil, fmt.Errorf("router is required")
	}

	shell, err := static.Shell()
	if err != nil {
		return nil, err
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		router:    r,
		shell:     shell,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge, // 0 ends the session with the browser
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(SessionCookieName, store))
}

func (s *Server) setupRoutes() {
	s.ginEngine.Use(gin.Recovery(), requestLogger())
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	s.setupSession()

	h := newHandler(s.router, s.shell, s.cfg)

	s.ginEngine.GET("/healthz", h.Health)
	s.ginEngine.StaticFS("/static", http.FS(static.Assets()))

	// all other paths belong to the views
	s.ginEngine.NoRoute(h.Tab)
}

// Handler returns the http.Handler of the server.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting API server", "listen", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
