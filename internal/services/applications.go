package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/jobpilot/internal/types"
)

// ApplicationService covers the application tracker endpoints.
type ApplicationService struct {
	api API
}

// NewApplicationService creates an ApplicationService.
func NewApplicationService(api API) *ApplicationService {
	return &ApplicationService{api: api}
}

// GetApplications lists the user's applications.
func (s *ApplicationService) GetApplications(ctx context.Context) types.Envelope[[]types.Application] {
	return call(func(out *types.Envelope[[]types.Application]) error {
		return s.api.Do(ctx, http.MethodGet, "/applications", nil, out)
	}, "Failed to fetch applications")
}

// GetApplicationStats returns the dashboard aggregates.
func (s *ApplicationService) GetApplicationStats(ctx context.Context) types.Envelope[types.ApplicationStats] {
	return call(func(out *types.Envelope[types.ApplicationStats]) error {
		return s.api.Do(ctx, http.MethodGet, "/applications/stats", nil, out)
	}, "Failed to fetch stats")
}

// CreateApplication records an application. Build input with types.NewApplicationInput
// so the job fields are snapshotted.
func (s *ApplicationService) CreateApplication(ctx context.Context, input types.CreateApplicationInput) types.Envelope[types.Application] {
	if err := input.Validate(); err != nil {
		return types.Invalid[types.Application]("Application is missing job or resume details")
	}
	return call(func(out *types.Envelope[types.Application]) error {
		return s.api.Do(ctx, http.MethodPost, "/applications", input, out)
	}, "Failed to create application")
}

// UpdateApplicationStatus sets the status of application id. Any status may follow any other.
func (s *ApplicationService) UpdateApplicationStatus(ctx context.Context, id string, status types.ApplicationStatus) types.Envelope[types.Application] {
	if strings.TrimSpace(id) == "" {
		return types.Invalid[types.Application]("Application id is required")
	}
	if !status.Valid() {
		return types.Invalid[types.Application]("Unknown application status")
	}
	path := "/applications/" + url.PathEscape(id) + "/status"
	return call(func(out *types.Envelope[types.Application]) error {
		return s.api.Do(ctx, http.MethodPatch, path, types.UpdateStatusInput{Status: status}, out)
	}, "Failed to update status")
}
