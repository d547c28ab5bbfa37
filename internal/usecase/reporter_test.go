package usecase

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pateldev/github-contributions/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows simulating the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) ListRepositories(ctx context.Context, account string) ([]domain.Repository, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockFetcher) ListMergedPullRequests(ctx context.Context, account, repo string, since time.Time) ([]domain.PullRequest, error) {
	args := m.Called(ctx, account, repo, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PullRequest), args.Error(1)
}

func newTestReporter(fetcher *mockFetcher, now time.Time) *Reporter {
	r := NewReporter(fetcher, nil, log.New(io.Discard, "", 0))
	r.clock = func() time.Time { return now }
	return r
}

func TestReporter_GenerateReport(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) // one month back

	repos := []domain.Repository{{Name: "repo-b"}, {Name: "repo-a"}}

	prsB := []domain.PullRequest{
		{Repository: "repo-b", Title: "Newest in b", Body: "details", MergedAt: now.Add(-24 * time.Hour)},
		{Repository: "repo-b", Title: "Older in b", MergedAt: now.Add(-48 * time.Hour)},
	}
	prsA := []domain.PullRequest{
		{Repository: "repo-a", Title: "Only in a", Body: "a body", MergedAt: now.Add(-72 * time.Hour)},
	}

	fetcher := new(mockFetcher)
	fetcher.On("ListRepositories", mock.Anything, "octocat").Return(repos, nil)
	fetcher.On("ListMergedPullRequests", mock.Anything, "octocat", "repo-b", start).Return(prsB, nil)
	fetcher.On("ListMergedPullRequests", mock.Anything, "octocat", "repo-a", start).Return(prsA, nil)

	reporter := newTestReporter(fetcher, now)
	report, err := reporter.GenerateReport(context.Background(), "octocat", 1, "")
	require.NoError(t, err)

	// Row ordering follows repository iteration order, then lister order.
	require.Len(t, report.Rows, 3)
	assert.Equal(t, "Newest in b", report.Rows[0].Title)
	assert.Equal(t, "Older in b", report.Rows[1].Title)
	assert.Equal(t, "Only in a", report.Rows[2].Title)

	// The interval bounds held for every row.
	for _, row := range report.Rows {
		assert.True(t, report.Interval.Contains(row.MergedAt))
	}

	// An absent body is replaced by the placeholder; present bodies pass through.
	assert.Equal(t, "details", report.Rows[0].Description)
	assert.Equal(t, domain.NoDescription, report.Rows[1].Description)

	assert.Len(t, report.PullRequests, 3)
	fetcher.AssertExpectations(t)
}

func TestReporter_GenerateReport_SpecificRepo(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	repos := []domain.Repository{{Name: "hello-world"}, {Name: "hello-world-2"}, {Name: "other"}}

	fetcher := new(mockFetcher)
	fetcher.On("ListRepositories", mock.Anything, "octocat").Return(repos, nil)
	fetcher.On("ListMergedPullRequests", mock.Anything, "octocat", "hello-world", mock.Anything).
		Return([]domain.PullRequest{{Repository: "hello-world", Title: "kept", MergedAt: now.Add(-time.Hour)}}, nil)

	reporter := newTestReporter(fetcher, now)
	report, err := reporter.GenerateReport(context.Background(), "octocat", 1, "hello-world")
	require.NoError(t, err)

	// Exact-match only: "hello-world-2" is not a prefix match.
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "hello-world", report.Rows[0].Repository)
	fetcher.AssertNotCalled(t, "ListMergedPullRequests", mock.Anything, "octocat", "hello-world-2", mock.Anything)
	fetcher.AssertNotCalled(t, "ListMergedPullRequests", mock.Anything, "octocat", "other", mock.Anything)
}

func TestReporter_GenerateReport_EnforcesBothBounds(t *testing.T) {
	// The lister only guarantees the lower bound; the aggregator must also
	// reject rows past the upper bound.
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	fetcher := new(mockFetcher)
	fetcher.On("ListRepositories", mock.Anything, "octocat").
		Return([]domain.Repository{{Name: "repo"}}, nil)
	fetcher.On("ListMergedPullRequests", mock.Anything, "octocat", "repo", mock.Anything).
		Return([]domain.PullRequest{
			{Repository: "repo", Title: "in window", MergedAt: now.Add(-time.Hour)},
			{Repository: "repo", Title: "future merge", MergedAt: now.Add(time.Hour)},
			{Repository: "repo", Title: "before window", MergedAt: now.AddDate(0, -2, 0)},
		}, nil)

	reporter := newTestReporter(fetcher, now)
	report, err := reporter.GenerateReport(context.Background(), "octocat", 1, "")
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "in window", report.Rows[0].Title)
}

func TestReporter_GenerateReport_SkipsFailedRepository(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	fetcher := new(mockFetcher)
	fetcher.On("ListRepositories", mock.Anything, "octocat").
		Return([]domain.Repository{{Name: "broken"}, {Name: "healthy"}}, nil)
	fetcher.On("ListMergedPullRequests", mock.Anything, "octocat", "broken", mock.Anything).
		Return(nil, domain.NewUpstreamError(502))
	fetcher.On("ListMergedPullRequests", mock.Anything, "octocat", "healthy", mock.Anything).
		Return([]domain.PullRequest{{Repository: "healthy", Title: "survives", MergedAt: now.Add(-time.Hour)}}, nil)

	reporter := newTestReporter(fetcher, now)
	report, err := reporter.GenerateReport(context.Background(), "octocat", 1, "")
	require.NoError(t, err, "a failed repository must not abort the report")
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "healthy", report.Rows[0].Repository)
}

func TestReporter_GenerateReport_ListingFailureAborts(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("ListRepositories", mock.Anything, "ghost").
		Return(nil, domain.NewNotFoundError("user ghost"))

	reporter := newTestReporter(fetcher, time.Now())
	report, err := reporter.GenerateReport(context.Background(), "ghost", 1, "")
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "not found")
}

func TestReporter_GenerateReport_EmptyWindow(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("ListRepositories", mock.Anything, "octocat").
		Return([]domain.Repository{{Name: "quiet"}}, nil)
	fetcher.On("ListMergedPullRequests", mock.Anything, "octocat", "quiet", mock.Anything).
		Return([]domain.PullRequest{}, nil)

	reporter := newTestReporter(fetcher, time.Now())
	report, err := reporter.GenerateReport(context.Background(), "octocat", 1, "")
	require.NoError(t, err)
	assert.NotNil(t, report.Rows)
	assert.Empty(t, report.Rows)
}
