//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Job is a posting sourced from the backend.
// MatchScore is set only when the user has a résumé and the backend scored the job.
type Job struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description"`
	ApplyURL    string    `json:"applyUrl"`
	Source      string    `json:"source"`
	MatchScore  *int      `json:"matchScore,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasMatchScore reports whether the backend scored this job.
func (j *Job) HasMatchScore() bool {
	return j.MatchScore != nil
}

// Validate checks the match score invariant: absent or within [0,100].
func (j *Job) Validate() error {
	if j.MatchScore != nil && (*j.MatchScore < 0 || *j.MatchScore > 100) {
		return fmt.Errorf("job %s: match score %d out of range [0,100]", j.ID, *j.MatchScore)
	}
	return nil
}

// JobFilters are the optional search parameters of GET /jobs.
type JobFilters struct {
	Keyword  string `json:"keyword,omitempty"`
	Location string `json:"location,omitempty"`
	Company  string `json:"company,omitempty"`
}

// Normalize trims every field. Empty fields are omitted from the query.
func (f JobFilters) Normalize() JobFilters {
	return JobFilters{
		Keyword:  strings.TrimSpace(f.Keyword),
		Location: strings.TrimSpace(f.Location),
		Company:  strings.TrimSpace(f.Company),
	}
}

// IsEmpty reports whether no filter is set after trimming.
func (f JobFilters) IsEmpty() bool {
	n := f.Normalize()
	return n.Keyword == "" && n.Location == "" && n.Company == ""
}

// Query encodes the non-empty trimmed filters.
func (f JobFilters) Query() url.Values {
	n := f.Normalize()
	q := url.Values{}
	if n.Keyword != "" {
		q.Set("keyword", n.Keyword)
	}
	if n.Company != "" {
		q.Set("company", n.Company)
	}
	if n.Location != "" {
		q.Set("location", n.Location)
	}
	return q
}

// CreateJobInput is the body of POST /jobs.
type CreateJobInput struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description" validate:"required"`
	ApplyURL    string `json:"applyUrl" validate:"required,url"`
	Source      string `json:"source,omitempty"`
}

// Validate validates the CreateJobInput using the validator.
func (r *CreateJobInput) Validate() error {
	return validate.Struct(r)
}

// AnalyzeInput is the body of POST /jobs/analyze.
type AnalyzeInput struct {
	JobDescription string `json:"jobDescription"`
}
