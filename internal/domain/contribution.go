// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// NoDescription is substituted for pull requests that carry no body text.
const NoDescription = "No description provided"

// Repository is the subset of upstream repository metadata the report consumes.
type Repository struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PullRequest is a merged change-request belonging to one of the account's
// repositories. Only merged pull requests reach this type; the gateway drops
// closed-but-unmerged ones.
type PullRequest struct {
	Repository string    `json:"repository"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	MergedAt   time.Time `json:"merged_at"`
}

// ReportRow is one line of the contributions report.
type ReportRow struct {
	Repository  string    `json:"repository"`
	Title       string    `json:"pull_request"`
	MergedAt    time.Time `json:"merged_at"`
	Description string    `json:"description"`
}

// Report is the aggregate produced by one report run. Rows and PullRequests
// are parallel views of the same selection: Rows feed the CSV exporter,
// PullRequests keep the created-at timestamps and raw bodies needed by the
// summary path.
type Report struct {
	Account      string        `json:"account"`
	Interval     Interval      `json:"interval"`
	Rows         []ReportRow   `json:"rows"`
	PullRequests []PullRequest `json:"-"`
}

// SummaryStats holds the aggregate numbers reported alongside the
// natural-language summary.
type SummaryStats struct {
	MergedPullRequests int     `json:"merged_pull_requests"`
	Repositories       int     `json:"repositories"`
	MeanDaysToMerge    float64 `json:"mean_days_to_merge"`
	MedianDaysToMerge  float64 `json:"median_days_to_merge"`
}

// ContributionSummary is the JSON aggregate returned by the summary endpoint.
type ContributionSummary struct {
	Account  string       `json:"account"`
	Interval string       `json:"interval"`
	Stats    SummaryStats `json:"stats"`
	Summary  string       `json:"summary,omitempty"`
}
