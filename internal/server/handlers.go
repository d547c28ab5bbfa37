package server

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/pateldev/github-contributions/internal/domain"
	"github.com/pateldev/github-contributions/internal/export"
)

//go:embed index.html
var indexHTML string

//go:embed openapi.json
var openAPISpec []byte

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		log.Error().Err(err).Msg("Failed to render index page")
	}
}

type repositoriesResponse struct {
	Repositories []domain.Repository `json:"repositories"`
}

func (s *Server) handleListRepositories(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	repos, err := s.service.ListRepositories(r.Context(), username)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if repos == nil {
		repos = []domain.Repository{}
	}
	s.respondWithJSON(w, http.StatusOK, repositoriesResponse{Repositories: repos})
}

func (s *Server) handleContributions(w http.ResponseWriter, r *http.Request) {
	form, vErr := parseContributionsForm(r)
	if vErr != nil {
		s.handleError(w, vErr)
		return
	}

	report, err := s.service.GenerateReport(r.Context(), form.Account, form.DurationMonths, form.Repo)
	if err != nil {
		s.handleError(w, err)
		return
	}

	data, err := export.CSV(report)
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(form.Account, form.Repo)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error().Err(err).Msg("Failed to write csv response")
	}
}

// summaryErrorResponse keeps the computed aggregate visible when only the
// summarization step failed.
type summaryErrorResponse struct {
	Error    errorBody           `json:"error"`
	Interval string              `json:"interval"`
	Stats    domain.SummaryStats `json:"stats"`
}

func (s *Server) handleContributionSummary(w http.ResponseWriter, r *http.Request) {
	form, vErr := parseContributionsForm(r)
	if vErr != nil {
		s.handleError(w, vErr)
		return
	}

	summary, err := s.service.SummarizeContributions(r.Context(), form.Account, form.DurationMonths, form.Repo)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Code == domain.ErrCodeSummarization && summary != nil {
			s.respondWithJSON(w, http.StatusBadGateway, summaryErrorResponse{
				Error:    errorBody{Code: string(appErr.Code), Message: appErr.Message},
				Interval: summary.Interval,
				Stats:    summary.Stats,
			})
			return
		}
		s.handleError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, summary)
}

func (s *Server) handleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(openAPISpec); err != nil {
		log.Error().Err(err).Msg("Failed to write openapi spec")
	}
}
