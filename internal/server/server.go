// Package server serves the site over HTTP with gin: full pages, HTMX
// listing partials, the contact form and the admin dashboard.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/analytics"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/render"
	"github.com/Zachkp/folio/internal/site"
)

const (
	sessionCookie = "folio_session"
	sessionSweep  = time.Minute
)

// Assets are the files served alongside the rendered pages.
type Assets struct {
	Static     fs.FS
	Components fs.FS
	Templates  fs.FS
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAnalytics enables visitor tracking into store, with records older
// than the configured retention removed periodically.
func WithAnalytics(store *analytics.Store, cfg config.AnalyticsConfig) Option {
	return func(s *Server) {
		s.analytics = store
		s.analyticsCfg = cfg
	}
}

// WithAdmin enables the admin dashboard. It needs analytics to be useful
// and is skipped when the password is empty.
func WithAdmin(cfg config.AdminConfig) Option {
	return func(s *Server) {
		s.adminCfg = cfg
	}
}

// Server is the HTTP front end.
type Server struct {
	cfg      config.ServerConfig
	site     *site.Site
	renderer *render.Renderer
	sessions *Sessions
	assets   Assets
	logger   *slog.Logger

	analytics    *analytics.Store
	analyticsCfg config.AnalyticsConfig
	adminCfg     config.AdminConfig
	adminToken   string

	router     *gin.Engine
	httpServer *http.Server

	// wg tracks background work started by requests.
	wg sync.WaitGroup
}

// New builds the server and its routes.
func New(cfg config.ServerConfig, st *site.Site, renderer *render.Renderer, sessions *Sessions, assets Assets, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		site:     st,
		renderer: renderer,
		sessions: sessions,
		assets:   assets,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.adminEnabled() {
		token, err := newToken()
		if err != nil {
			return nil, fmt.Errorf("generating admin token: %w", err)
		}
		s.adminToken = token
	}

	router, err := s.buildRouter()
	if err != nil {
		return nil, err
	}
	s.router = router
	return s, nil
}

func (s *Server) adminEnabled() bool {
	return s.analytics != nil && s.assets.Templates != nil && s.adminCfg.Password != ""
}

func (s *Server) retention() time.Duration {
	if s.analyticsCfg.Retention > 0 {
		return s.analyticsCfg.Retention
	}
	return analytics.DefaultRetention
}

func (s *Server) buildRouter() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if s.assets.Templates != nil {
		tmpl, err := template.New("").Funcs(template.FuncMap{
			"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		}).ParseFS(s.assets.Templates, "*.html")
		if err != nil {
			return nil, fmt.Errorf("parsing server templates: %w", err)
		}
		r.SetHTMLTemplate(tmpl)
	}

	if s.analytics != nil {
		r.Use(s.trackVisitors())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if s.assets.Static != nil {
		r.StaticFS("/static", http.FS(s.assets.Static))
	}
	if s.assets.Components != nil {
		r.GET("/components/:file", s.handleComponent)
	}

	r.GET("/", s.handlePage(site.PageHome))
	r.GET("/about", s.handlePage(site.PageAbout))
	r.GET("/blog", s.handlePage(site.PageBlog))
	r.GET("/portfolio", s.handlePage(site.PagePortfolio))
	r.GET("/contact", s.handlePage(site.PageContact))
	r.GET("/pages/:page", s.handleNamedPage)

	r.GET(site.BlogEndpoint, s.handleBlogPosts)
	r.GET(site.PortfolioEndpoint, s.handlePortfolioItems)
	r.GET(site.PostURL+":id", s.handlePost)
	r.POST(site.ContactEndpoint, s.handleContact)

	s.setupAdminRoutes(r)
	return r, nil
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully and waits for background work.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.janitor(janitorCtx)
	}()

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("folio listening", "addr", ln.Addr().String(), "admin", s.adminEnabled())
		errc <- s.httpServer.Serve(ln)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			serveErr = fmt.Errorf("shutting down: %w", err)
		}
		<-errc
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	}

	stopJanitor()
	s.wg.Wait()
	s.sessions.Close()
	return serveErr
}

// janitor prunes idle contact sessions and expired visitor records.
func (s *Server) janitor(ctx context.Context) {
	sweep := time.NewTicker(sessionSweep)
	defer sweep.Stop()

	var cleanup <-chan time.Time
	if s.analytics != nil && s.analyticsCfg.CleanupInterval > 0 {
		s.cleanupVisitors(ctx)
		t := time.NewTicker(s.analyticsCfg.CleanupInterval)
		defer t.Stop()
		cleanup = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-sweep.C:
			if n := s.sessions.Prune(); n > 0 {
				s.logger.Debug("pruned contact sessions", "count", n)
			}
		case <-cleanup:
			s.cleanupVisitors(ctx)
		}
	}
}

func (s *Server) cleanupVisitors(ctx context.Context) {
	if _, err := s.analytics.Cleanup(ctx, s.retention()); err != nil {
		s.logger.Error("cleaning up old visitor data", "error", err)
	}
}
