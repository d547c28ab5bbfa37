package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pateldev/github-contributions/internal/domain"
)

// contributionsForm carries the validated parameters of the contribution
// endpoints.
type contributionsForm struct {
	Account        string
	DurationMonths int
	Repo           string
}

// parseContributionsForm validates the request form before any network call
// is made. Failures collect per-field messages.
func parseContributionsForm(r *http.Request) (contributionsForm, *domain.AppError) {
	var form contributionsForm
	fields := make(map[string][]string)

	if err := r.ParseForm(); err != nil {
		fields["form"] = append(fields["form"], "Invalid form encoding.")
		return form, domain.NewValidationError(fields)
	}

	form.Account = strings.TrimSpace(r.PostFormValue("username"))
	if form.Account == "" {
		fields["username"] = append(fields["username"], "Missing data for required field.")
	}

	rawMonths := strings.TrimSpace(r.PostFormValue("duration_months"))
	switch {
	case rawMonths == "":
		fields["duration_months"] = append(fields["duration_months"], "Missing data for required field.")
	default:
		months, err := strconv.Atoi(rawMonths)
		switch {
		case err != nil:
			fields["duration_months"] = append(fields["duration_months"], "Not a valid integer.")
		case months < 1:
			fields["duration_months"] = append(fields["duration_months"], "Must be greater than or equal to 1.")
		default:
			form.DurationMonths = months
		}
	}

	form.Repo = strings.TrimSpace(r.PostFormValue("repo"))

	if len(fields) > 0 {
		return form, domain.NewValidationError(fields)
	}
	return form, nil
}
