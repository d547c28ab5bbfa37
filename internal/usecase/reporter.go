// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pateldev/github-contributions/internal/domain"
	"github.com/pateldev/github-contributions/internal/gateway"
)

// defaultWorkers bounds the repository-level fan-out. Rate limit backoff is
// still applied per outbound call inside the gateway, so concurrency never
// bypasses it.
const defaultWorkers = 4

// Summarizer turns collected pull requests into a natural-language summary.
// It is an opaque text-in/text-out capability with no guarantees beyond
// returning a summary or failing.
type Summarizer interface {
	Summarize(ctx context.Context, prs []domain.PullRequest) (string, error)
}

// Reporter is the use case for building contribution reports.
// It orchestrates repository enumeration, pull request fetching and the
// reduction into report rows.
type Reporter struct {
	fetcher    gateway.Fetcher
	summarizer Summarizer
	logger     *log.Logger
	clock      func() time.Time
	workers    int
}

// NewReporter creates a new Reporter instance. summarizer may be nil when no
// summarization backend is configured; only the summary path needs it.
func NewReporter(fetcher gateway.Fetcher, summarizer Summarizer, logger *log.Logger) *Reporter {
	return &Reporter{
		fetcher:    fetcher,
		summarizer: summarizer,
		logger:     logger,
		clock:      time.Now,
		workers:    defaultWorkers,
	}
}

// ListRepositories exposes repository enumeration to the HTTP layer.
func (r *Reporter) ListRepositories(ctx context.Context, account string) ([]domain.Repository, error) {
	return r.fetcher.ListRepositories(ctx, account)
}

// GenerateReport builds the contribution report for the trailing window of
// durationMonths calendar months. When specificRepo is non-empty only the
// exactly matching repository is scanned.
//
// Repositories are fetched through a bounded errgroup fan-out; results are
// reassembled indexed by repository position, so row ordering is identical to
// a sequential scan: repository iteration order first, then the lister's
// order (descending update time) within each repository.
func (r *Reporter) GenerateReport(ctx context.Context, account string, durationMonths int, specificRepo string) (*domain.Report, error) {
	interval := domain.NewInterval(r.clock(), durationMonths)
	r.logger.Printf("Generating report for %s with duration of %d months.", account, durationMonths)

	repos, err := r.fetcher.ListRepositories(ctx, account)
	if err != nil {
		return nil, err
	}
	if specificRepo != "" {
		matched := make([]domain.Repository, 0, 1)
		for _, repo := range repos {
			if repo.Name == specificRepo {
				matched = append(matched, repo)
			}
		}
		repos = matched
	}

	type repoResult struct {
		rows []domain.ReportRow
		prs  []domain.PullRequest
	}
	results := make([]repoResult, len(repos))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers)
	for i, repo := range repos {
		i, repo := i, repo
		eg.Go(func() error {
			prs, err := r.fetcher.ListMergedPullRequests(egCtx, account, repo.Name, interval.Start)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				// Best-effort reporting: a failed repository is skipped with
				// whatever partial data came back, the report continues.
				r.logger.Printf("Skipping repository %s: %v", repo.Name, err)
			}
			res := repoResult{
				rows: make([]domain.ReportRow, 0, len(prs)),
				prs:  make([]domain.PullRequest, 0, len(prs)),
			}
			for _, pr := range prs {
				// The lister already applied the lower bound; both bounds are
				// re-checked here so the aggregate never depends on it.
				if !interval.Contains(pr.MergedAt) {
					continue
				}
				description := pr.Body
				if description == "" {
					description = domain.NoDescription
				}
				res.rows = append(res.rows, domain.ReportRow{
					Repository:  repo.Name,
					Title:       pr.Title,
					MergedAt:    pr.MergedAt,
					Description: description,
				})
				res.prs = append(res.prs, pr)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &domain.Report{
		Account:  account,
		Interval: interval,
		Rows:     []domain.ReportRow{},
	}
	for _, res := range results {
		report.Rows = append(report.Rows, res.rows...)
		report.PullRequests = append(report.PullRequests, res.prs...)
	}
	r.logger.Printf("Generated report for %s: %d rows.", account, len(report.Rows))
	return report, nil
}
