package server

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/erikdevelopment/portfolio/internal/content"
	"github.com/erikdevelopment/portfolio/internal/domain"
	"github.com/erikdevelopment/portfolio/internal/usecase"
	"github.com/erikdevelopment/portfolio/internal/view"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler returns the router of the site.
func (s *Server) Handler() http.Handler {
	router := http.NewServeMux()
	router.HandleFunc("GET /{$}", s.handleHub)
	router.HandleFunc("GET /projects", s.handleProjects)
	router.HandleFunc("GET /projects/tiles", s.handleTiles)
	router.HandleFunc("GET /blog", s.handleBlog)
	router.HandleFunc("GET /healthz", s.handleHealth)
	router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(view.Static())))
	return s.logRequests(router)
}

// StateFromQuery builds the filter/sort state from the projects form.
func StateFromQuery(r *http.Request) domain.State {
	q := r.URL.Query()
	state := domain.DefaultState()
	state.Query = q.Get("q")
	state.HideForks = parseCheckbox(q.Get("hideForks"))
	if org := q.Get("org"); org != "" {
		state.ActiveOrganization = org
	}
	state.SortKey = domain.ParseSortKey(q.Get("sort"))
	return state
}

func parseCheckbox(v string) bool {
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func (s *Server) chrome(r *http.Request, title, active string) view.Chrome {
	quotes := s.assets.Snapshot().Quotes
	return view.Chrome{
		Title:  title,
		Active: active,
		Footer: quotes.Pick(content.DetectPage(r.URL.Path), s.intn),
	}
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	page := s.projectsPage(r)
	page.Chrome = s.chrome(r, "Projekte", "projects")
	s.write(w, r, func(buf *bytes.Buffer) error { return s.renderer.RenderProjects(buf, page) })
}

// handleTiles renders only the stats line and the tile grid, for the search box to
// swap in while the visitor types.
func (s *Server) handleTiles(w http.ResponseWriter, r *http.Request) {
	page := s.projectsPage(r)
	w.Header().Set("Cache-Control", "no-store")
	s.write(w, r, func(buf *bytes.Buffer) error { return s.renderer.RenderTiles(buf, page) })
}

func (s *Server) projectsPage(r *http.Request) view.ProjectsPage {
	state := StateFromQuery(r)
	page := view.ProjectsPage{
		State:    state,
		SortKeys: view.SortOptions(state.SortKey),
	}

	catalog, loadErr, settled := s.snapshot()
	switch {
	case catalog != nil:
		shown := s.engine.Derive(catalog.Repositories, state)
		page.Organizations = view.OrganizationOptions(usecase.Owners(catalog.Repositories, s.opts.User), state.ActiveOrganization)
		page.Cards = s.renderer.Cards(shown)
		page.Summary = usecase.Summarize(shown, len(catalog.Repositories))
	case loadErr != nil:
		page.Error = view.MsgLoadFailed
	case !settled:
		page.Loading = true
	}
	if page.Organizations == nil {
		page.Organizations = view.OrganizationOptions([]string{domain.AllOrganizations}, state.ActiveOrganization)
	}
	return page
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	assets := s.assets.Snapshot()
	q := r.URL.Query()
	page := s.renderer.BlogPageFor(assets.Posts, assets.BlogErr, q.Get("post"), q.Get("tag"))
	page.Chrome = s.chrome(r, "Blog", "blog")
	if page.Single != nil {
		page.Title = page.Single.Title
	}
	s.write(w, r, func(buf *bytes.Buffer) error { return s.renderer.RenderBlog(buf, page) })
}

func (s *Server) handleHub(w http.ResponseWriter, r *http.Request) {
	page := view.HubPage{
		Chrome:   s.chrome(r, s.opts.User, "hub"),
		User:     s.opts.User,
		Terminal: content.ResolveScript(s.assets.Snapshot().Script, s.now()),
	}
	s.write(w, r, func(buf *bytes.Buffer) error { return s.renderer.RenderHub(buf, page) })
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if catalog, _, _ := s.snapshot(); catalog == nil {
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		return
	}
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, render func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.logger.Error("Rendering failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.logger.Info("Request served",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
