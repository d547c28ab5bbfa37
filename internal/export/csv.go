// Package export renders reports as downloadable artifacts.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/pateldev/github-contributions/internal/domain"
)

// csvHeader is the column header of the contributions export.
var csvHeader = []string{"Repository", "Pull Request", "Date Merged at", "Description"}

// CSV serializes a report as delimiter-separated text: a single-cell interval
// comment line, the column header, then one row per report row. Quoting of
// fields containing delimiters, quotes or line breaks is handled by
// encoding/csv.
func CSV(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := make([][]string, 0, len(report.Rows)+2)
	records = append(records, []string{fmt.Sprintf("#Interval: %s", report.Interval.String())})
	records = append(records, csvHeader)
	for _, row := range report.Rows {
		records = append(records, []string{
			row.Repository,
			row.Title,
			row.MergedAt.UTC().Format(time.RFC3339),
			row.Description,
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the attachment filename for a report download.
func Filename(account, repo string) string {
	if repo != "" {
		return fmt.Sprintf("%s_%s_github_contributions_report.csv", account, repo)
	}
	return fmt.Sprintf("%s_github_contributions_report.csv", account)
}
