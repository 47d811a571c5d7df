package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobpilot/internal/schemas"
	"github.com/jonathan/jobpilot/internal/types"
)

// MinDescriptionLength is the shortest job description, in characters, accepted for analysis.
const MinDescriptionLength = 50

// Analysis validation messages.
const (
	MsgEmptyDescription = "Please paste a job description"
	MsgShortDescription = "Job description is too short. Please provide more details."
	MsgInvalidAnalysis  = "Received an invalid analysis from the server"
	MsgInvalidJobList   = "Received an invalid job list from the server"
)

// JobService covers job listing, creation and match analysis.
type JobService struct {
	api API
}

// NewJobService creates a JobService.
func NewJobService(api API) *JobService {
	return &JobService{api: api}
}

// GetJobs lists jobs. Empty filter fields are not sent.
func (s *JobService) GetJobs(ctx context.Context, filters types.JobFilters) types.Envelope[[]types.Job] {
	path := "/jobs"
	if q := filters.Query(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	return call(func(out *types.Envelope[[]types.Job]) error {
		return s.api.Do(ctx, http.MethodGet, path, nil, out)
	}, "Failed to fetch jobs")
}

// GetMatchedJobs lists jobs ranked against the user's résumé. A list with
// out-of-range match scores is rejected so the caller can fall back to the unranked list.
func (s *JobService) GetMatchedJobs(ctx context.Context) types.Envelope[[]types.Job] {
	raw := call(func(out *types.Envelope[json.RawMessage]) error {
		return s.api.Do(ctx, http.MethodGet, "/jobs/matched", nil, out)
	}, "Failed to fetch matched jobs")
	return decodeValidated[[]types.Job](raw, schemas.ValidateJobList, MsgInvalidJobList)
}

// CreateJob adds a job posting.
func (s *JobService) CreateJob(ctx context.Context, input types.CreateJobInput) types.Envelope[types.Job] {
	if err := input.Validate(); err != nil {
		return types.Invalid[types.Job]("Please provide a title, company, description and a valid apply URL")
	}
	return call(func(out *types.Envelope[types.Job]) error {
		return s.api.Do(ctx, http.MethodPost, "/jobs", input, out)
	}, "Failed to create job")
}

// ValidateDescription returns the admission message for a job description, or "" when acceptable.
func ValidateDescription(description string) string {
	if strings.TrimSpace(description) == "" {
		return MsgEmptyDescription
	}
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return MsgShortDescription
	}
	return ""
}

// AnalyzeJobMatch asks the backend to compare the user's résumé to description.
// Descriptions that fail ValidateDescription are rejected without a request.
func (s *JobService) AnalyzeJobMatch(ctx context.Context, description string) types.Envelope[types.JobMatchAnalysis] {
	if msg := ValidateDescription(description); msg != "" {
		return types.Invalid[types.JobMatchAnalysis](msg)
	}

	raw := call(func(out *types.Envelope[json.RawMessage]) error {
		return s.api.Do(ctx, http.MethodPost, "/jobs/analyze", types.AnalyzeInput{JobDescription: description}, out)
	}, "Failed to analyze job match")
	return decodeValidated[types.JobMatchAnalysis](raw, schemas.ValidateAnalysis, MsgInvalidAnalysis)
}

// decodeValidated checks a raw payload against its schema before decoding it into T.
// Failed envelopes pass through unchanged.
func decodeValidated[T any](raw types.Envelope[json.RawMessage], validate func([]byte) error, invalidMsg string) types.Envelope[T] {
	result := types.Envelope[T]{
		Success:    raw.Success,
		StatusCode: raw.StatusCode,
		Message:    raw.Message,
		Error:      raw.Error,
	}
	if !raw.HasData() {
		return result
	}

	if err := validate(*raw.Data); err != nil {
		return types.Fail[T](http.StatusBadGateway, invalidMsg, err.Error())
	}

	var data T
	if err := json.Unmarshal(*raw.Data, &data); err != nil {
		return types.Fail[T](http.StatusBadGateway, invalidMsg, err.Error())
	}
	result.Data = &data
	return result
}
