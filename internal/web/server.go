// Package web serves the champion pages and the endpoints their script
// talks to.
package web

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/poku-e/championdex/internal/champion"
	"github.com/poku-e/championdex/internal/filter"
	"github.com/poku-e/championdex/internal/group"
	"github.com/poku-e/championdex/internal/logging"
	"github.com/poku-e/championdex/internal/session"
	"github.com/poku-e/championdex/internal/suggest"
	"github.com/poku-e/championdex/internal/view"
)

// IconPrefix is the URL path icons are served under.
const IconPrefix = "/champion_icons"

// Deps is everything a Server needs. Catalog and Sessions are required.
type Deps struct {
	Catalog  *champion.Catalog
	Sessions *session.Store
	Policy   group.Policy
	Assets   view.Assets
	// IconDir is the directory served under IconPrefix. Empty disables it.
	IconDir string
	Title   string
	Cookie  string
	Log     zerolog.Logger
	Release bool
}

type Server struct {
	router   *gin.Engine
	http     *http.Server
	deps     Deps
	domain   filter.Domain
	index    *suggest.Index
	started  time.Time
	rarities []string
}

func NewServer(d Deps) *Server {
	if d.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	if d.Cookie == "" {
		d.Cookie = "championdex_session"
	}
	if d.Title == "" {
		d.Title = "Champions"
	}
	if d.Assets.Dir == "" {
		d.Assets = view.DefaultAssets()
		d.Assets.Dir = IconPrefix
	}
	if len(d.Policy.Rarities) == 0 && len(d.Policy.Ranks) == 0 {
		d.Policy = group.DefaultPolicy()
	}

	dom := filter.NewDomain(d.Policy.Rarities, d.Policy.Ranks, d.Catalog.Champions)
	if !d.Policy.IncludeUnlisted {
		dom.Rarities = slices.Clone(d.Policy.Rarities)
	}

	s := &Server{
		router:   gin.New(),
		deps:     d,
		domain:   dom,
		index:    suggest.NewIndex(d.Catalog.Names()),
		started:  time.Now(),
		rarities: dom.Rarities,
	}
	s.router.Use(gin.Recovery(), logging.Gin(d.Log), commonHeaders())
	s.setupRoutes()
	s.http = &http.Server{Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.http.Addr = addr
	s.deps.Log.Info().Str("addr", addr).Int("champions", len(s.deps.Catalog.Champions)).Msg("listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops Start gracefully, even when it has not begun listening yet.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func commonHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("X-Content-Type-Options", "nosniff")
		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
