//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
	"time"
)

// ApplicationStatus is a label on an application. Any status may follow any other.
type ApplicationStatus string

// Application statuses, in display order.
const (
	StatusSaved     ApplicationStatus = "SAVED"
	StatusApplied   ApplicationStatus = "APPLIED"
	StatusInterview ApplicationStatus = "INTERVIEW"
	StatusRejected  ApplicationStatus = "REJECTED"
	StatusOffer     ApplicationStatus = "OFFER"
)

// AllStatuses returns every status in display order.
func AllStatuses() []ApplicationStatus {
	return []ApplicationStatus{StatusSaved, StatusApplied, StatusInterview, StatusRejected, StatusOffer}
}

// Valid reports whether s is one of the five known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusSaved, StatusApplied, StatusInterview, StatusRejected, StatusOffer:
		return true
	}
	return false
}

// ParseStatus accepts any letter case and returns the canonical status.
func ParseStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown application status %q", s)
	}
	return status, nil
}

// Application tracks one job the user applied to. JobTitle, Company and JobURL are
// copied from the job when the application is created and never follow later job edits.
type Application struct {
	ID           string            `json:"_id"`
	JobID        string            `json:"jobId"`
	JobTitle     string            `json:"jobTitle"`
	Company      string            `json:"company"`
	JobURL       string            `json:"jobUrl"`
	ResumeID     string            `json:"resumeId"`
	MatchScore   int               `json:"matchScore"`
	MatchSummary string            `json:"matchSummary"`
	Status       ApplicationStatus `json:"status"`
	AppliedAt    *time.Time        `json:"appliedAt,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    *time.Time        `json:"updatedAt,omitempty"`
}

// ApplicationStats is the server-side aggregate shown on the dashboard.
type ApplicationStats struct {
	TotalApplications int `json:"totalApplications"`
	Interviews        int `json:"interviews"`
	AvgMatchScore     int `json:"avgMatchScore"`
	ThisWeek          int `json:"thisWeek"`
}

// CreateApplicationInput is the body of POST /applications.
type CreateApplicationInput struct {
	JobID    string `json:"jobId" validate:"required"`
	JobTitle string `json:"jobTitle" validate:"required"`
	Company  string `json:"company" validate:"required"`
	JobURL   string `json:"jobUrl"`
	ResumeID string `json:"resumeId" validate:"required"`
}

// Validate validates the CreateApplicationInput using the validator.
func (r *CreateApplicationInput) Validate() error {
	return validate.Struct(r)
}

// NewApplicationInput snapshots the job fields at apply time.
func NewApplicationInput(job Job, resume Resume) CreateApplicationInput {
	return CreateApplicationInput{
		JobID:    job.ID,
		JobTitle: job.Title,
		Company:  job.Company,
		JobURL:   job.ApplyURL,
		ResumeID: resume.ID,
	}
}

// UpdateStatusInput is the body of PATCH /applications/:id/status.
type UpdateStatusInput struct {
	Status ApplicationStatus `json:"status"`
}
