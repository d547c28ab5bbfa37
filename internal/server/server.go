// Package server exposes the contributions report over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/pateldev/github-contributions/internal/domain"
)

// ReportService is the use case interface consumed by the HTTP handlers.
type ReportService interface {
	ListRepositories(ctx context.Context, account string) ([]domain.Repository, error)
	GenerateReport(ctx context.Context, account string, durationMonths int, specificRepo string) (*domain.Report, error)
	SummarizeContributions(ctx context.Context, account string, durationMonths int, specificRepo string) (*domain.ContributionSummary, error)
}

type Server struct {
	service ReportService
	router  *chi.Mux
}

func NewServer(service ReportService) (*Server, error) {
	if service == nil {
		return nil, errors.New("server: nil report service")
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	s := &Server{
		service: service,
		router:  r,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/api/repositories/{username}", s.handleListRepositories)
	s.router.Post("/api/contributions", s.handleContributions)
	s.router.Post("/api/contribution-summary", s.handleContributionSummary)
	s.router.Get("/api/swagger.json", s.handleOpenAPISpec)
}

// requestLogger logs one line per request with status and latency.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
