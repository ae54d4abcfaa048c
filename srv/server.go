// Package srv exposes the document engine over HTTP: submit markdown, get
// back a rendered PDF, with an HTML preview of the source on the side.
package srv

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/patrickmn/go-cache"

	"github.com/opd-ai/web3press/report"
)

// Job is one render request and its outcome, kept until the cache expires.
type Job struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"` // "complete" or "error"
	Error     string    `json:"error,omitempty"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Markdown string `json:"-"`
	PDF      []byte `json:"-"`
}

type Server struct {
	router   chi.Router
	compiler *report.Compiler
	jobs     *cache.Cache
}

func New(cfg report.Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		compiler: report.NewCompiler(cfg),
		jobs:     cache.New(24*time.Hour, 1*time.Hour),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(httprate.LimitByIP(30, 1*time.Minute))

	s.router.Get("/health", s.handleHealth)
	s.router.Post("/render", s.handleRender)
	s.router.Get("/reports/{jobID}", s.handleDownload)
	s.router.Get("/reports/{jobID}/preview", s.handlePreview)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
