// Package gateway provides a gateway to the GitHub API. It is the only
// package in the application that performs network I/O.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/pateldev/github-contributions/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	ListRepositories(ctx context.Context, account string) ([]domain.Repository, error)
	ListMergedPullRequests(ctx context.Context, account, repo string, since time.Time) ([]domain.PullRequest, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	retry  retryPolicy
	logger *log.Logger
}

// NewGitHubGateway creates a GitHubGateway authenticated with the given token.
// The HTTP transport stacks an oauth2 token source on top of a rate limit
// waiter, so secondary rate limits are slept through below the retry policy.
func NewGitHubGateway(token string, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		retry:  defaultRetryPolicy,
		logger: logger,
	}, nil
}

// ListRepositories fetches every repository owned by or visible to the
// account: all repository types, sorted by last update descending, at the
// maximum page size. Pagination is followed to exhaustion; on a terminal
// error the records collected so far are returned alongside the error.
func (g *GitHubGateway) ListRepositories(ctx context.Context, account string) ([]domain.Repository, error) {
	g.logger.Printf("Fetching repositories for %s...", account)
	opts := &github.RepositoryListByUserOptions{
		Type:        "all",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var all []domain.Repository
	for {
		var (
			repos []*github.Repository
			resp  *github.Response
		)
		err := g.fetchPage(ctx, fmt.Sprintf("user %s", account), func() (*github.Response, error) {
			var err error
			repos, resp, err = g.client.Repositories.ListByUser(ctx, account, opts)
			return resp, err
		})
		if err != nil {
			return all, err
		}
		for _, r := range repos {
			all = append(all, domain.Repository{
				Name:        r.GetName(),
				FullName:    r.GetFullName(),
				Description: r.GetDescription(),
				UpdatedAt:   r.GetUpdatedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Printf("Fetched %d repositories for %s.", len(all), account)
	return all, nil
}

// ListMergedPullRequests fetches the closed pull requests of one repository
// and retains those merged at or after since. The state filter is applied
// server-side; merged-and-recent is filtered locally because closed is a
// superset of merged and the list endpoint cannot filter on merge date.
func (g *GitHubGateway) ListMergedPullRequests(ctx context.Context, account, repo string, since time.Time) ([]domain.PullRequest, error) {
	g.logger.Printf("Fetching merged pull requests for %s/%s...", account, repo)
	opts := &github.PullRequestListOptions{
		State:       "closed",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var merged []domain.PullRequest
	for {
		var (
			prs  []*github.PullRequest
			resp *github.Response
		)
		err := g.fetchPage(ctx, fmt.Sprintf("repository %s/%s", account, repo), func() (*github.Response, error) {
			var err error
			prs, resp, err = g.client.PullRequests.List(ctx, account, repo, opts)
			return resp, err
		})
		if err != nil {
			return merged, err
		}
		for _, pr := range prs {
			mergedAt := pr.GetMergedAt().Time
			if mergedAt.IsZero() || mergedAt.Before(since) {
				continue
			}
			merged = append(merged, domain.PullRequest{
				Repository: repo,
				Title:      pr.GetTitle(),
				Body:       pr.GetBody(),
				CreatedAt:  pr.GetCreatedAt().Time,
				MergedAt:   mergedAt,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of pull requests...")
	}
	g.logger.Printf("Fetched %d merged pull requests for %s/%s.", len(merged), account, repo)
	return merged, nil
}
