// Package server serves the portfolio pages over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/erikdevelopment/portfolio/internal/content"
	"github.com/erikdevelopment/portfolio/internal/usecase"
	"github.com/erikdevelopment/portfolio/internal/view"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// refreshTimeout bounds a single catalog load.
const refreshTimeout = 2 * time.Minute

// CatalogSource loads the repository catalog.
type CatalogSource interface {
	Load(ctx context.Context) (*usecase.Catalog, error)
}

// Options configures a Server.
type Options struct {
	User            string
	Addr            string
	RefreshSchedule string
	WatchAssets     bool
}

// Server renders the site from the current catalog and asset snapshots.
type Server struct {
	opts     Options
	source   CatalogSource
	engine   *usecase.Engine
	renderer *view.Renderer
	assets   *content.Store
	logger   *zap.Logger

	now  func() time.Time
	intn func(n int) int

	mu      sync.RWMutex
	catalog *usecase.Catalog
	loadErr error
	settled bool
}

// New creates a Server. Nothing is fetched until Refresh or Run is called.
func New(opts Options, source CatalogSource, engine *usecase.Engine, renderer *view.Renderer, assets *content.Store, logger *zap.Logger) *Server {
	return &Server{
		opts:     opts,
		source:   source,
		engine:   engine,
		renderer: renderer,
		assets:   assets,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh loads the catalog once. On failure the previous catalog, if any, stays in
// place; without one the failure becomes the visible error state.
func (s *Server) Refresh(ctx context.Context) error {
	catalog, err := s.source.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settled = true
	if err != nil {
		if s.catalog == nil {
			s.loadErr = err
		}
		s.logger.Error("Catalog refresh failed", zap.Error(err), zap.Bool("keeping_previous", s.catalog != nil))
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}
	s.catalog = catalog
	s.loadErr = nil
	return nil
}

// snapshot returns the current catalog state.
func (s *Server) snapshot() (catalog *usecase.Catalog, loadErr error, settled bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.loadErr, s.settled
}

// Run serves HTTP until ctx is done. The first catalog load runs in the background
// so pages render their loading state until it settles.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)

	if s.opts.RefreshSchedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(s.opts.RefreshSchedule, func() {
			loadCtx, cancel := context.WithTimeout(egCtx, refreshTimeout)
			defer cancel()
			_ = s.Refresh(loadCtx)
		}); err != nil {
			return fmt.Errorf("failed to schedule catalog refresh: %w", err)
		}
		c.Start()
		s.logger.Info("Catalog refresh scheduled", zap.String("schedule", s.opts.RefreshSchedule))
		defer func() { <-c.Stop().Done() }()
	}

	eg.Go(func() error {
		loadCtx, cancel := context.WithTimeout(egCtx, refreshTimeout)
		defer cancel()
		// A failed initial load is shown to visitors, it does not stop the server.
		_ = s.Refresh(loadCtx)
		return nil
	})

	if s.opts.WatchAssets && s.assets != nil {
		watcher, err := content.NewWatcher(s.assets, s.logger)
		if err != nil {
			s.logger.Warn("Asset watching disabled", zap.Error(err))
		} else {
			eg.Go(func() error {
				watcher.Run(egCtx)
				return nil
			})
		}
	}

	eg.Go(func() error {
		s.logger.Info("Server is running", zap.String("addr", s.opts.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not start server: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
