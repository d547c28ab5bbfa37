package usecase

import (
	"context"
	"errors"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/pateldev/github-contributions/internal/domain"
)

// ErrNoSummarizer is returned when the summary path is used without a
// configured summarization backend.
var ErrNoSummarizer = errors.New("no summarizer configured")

// SummarizeContributions builds the report for the window and reduces it into
// the JSON aggregate: counts, merge-time statistics and the LLM summary.
//
// A summarizer failure is isolated from the fetch/aggregate pipeline: the
// returned ContributionSummary still carries the computed stats, alongside a
// SUMMARIZATION_FAILED error the caller can surface separately.
func (r *Reporter) SummarizeContributions(ctx context.Context, account string, durationMonths int, specificRepo string) (*domain.ContributionSummary, error) {
	report, err := r.GenerateReport(ctx, account, durationMonths, specificRepo)
	if err != nil {
		return nil, err
	}

	summary := &domain.ContributionSummary{
		Account:  account,
		Interval: report.Interval.String(),
		Stats:    summaryStats(report.PullRequests),
	}

	if r.summarizer == nil {
		return summary, domain.NewSummarizationError(ErrNoSummarizer)
	}
	text, err := r.summarizer.Summarize(ctx, report.PullRequests)
	if err != nil {
		r.logger.Printf("Summarization failed for %s: %v", account, err)
		return summary, domain.NewSummarizationError(err)
	}
	summary.Summary = text
	return summary, nil
}

// summaryStats reduces the selected pull requests into aggregate numbers.
// Days-to-merge uses the created-at to merged-at span of each pull request.
func summaryStats(prs []domain.PullRequest) domain.SummaryStats {
	repos := make(map[string]struct{})
	durations := make([]float64, 0, len(prs))
	for _, pr := range prs {
		repos[pr.Repository] = struct{}{}
		if !pr.CreatedAt.IsZero() && pr.MergedAt.After(pr.CreatedAt) {
			durations = append(durations, pr.MergedAt.Sub(pr.CreatedAt).Hours()/24)
		}
	}

	s := domain.SummaryStats{
		MergedPullRequests: len(prs),
		Repositories:       len(repos),
	}
	if len(durations) > 0 {
		if mean, err := stats.Mean(durations); err == nil {
			s.MeanDaysToMerge = round2(mean)
		}
		if median, err := stats.Median(durations); err == nil {
			s.MedianDaysToMerge = round2(median)
		}
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
