package devserver

import (
	"net/http"

	"github.com/jonathan/jobpilot/internal/devserver/middleware"
	"github.com/jonathan/jobpilot/internal/types"
)

// handleListApplications handles GET /applications.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.fail(w, r, &ErrInvalidToken{Reason: err.Error()})
		return
	}
	respond(s, w, http.StatusOK, s.store.Applications(userID), "")
}

// handleApplicationStats handles GET /applications/stats.
func (s *Server) handleApplicationStats(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.fail(w, r, &ErrInvalidToken{Reason: err.Error()})
		return
	}
	respond(s, w, http.StatusOK, s.store.Stats(userID), "")
}

// handleCreateApplication handles POST /applications. The job fields in the body are
// stored as sent; the match score comes from the user's current résumé.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.fail(w, r, &ErrInvalidToken{Reason: err.Error()})
		return
	}

	var req types.CreateApplicationInput
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	resume, err := s.store.Resume(userID)
	if err != nil || resume.ID != req.ResumeID {
		s.fail(w, r, &ErrValidation{Field: "resumeId", Message: "Resume not found. Please upload your resume first"})
		return
	}
	job, err := s.store.Job(req.JobID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	analysis := s.scorer.Match(resume, job.Description)
	app, err := s.store.AddApplication(userID, req, analysis.OverallScore, analysis.MatchSummary)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(s, w, http.StatusCreated, app, "Application created successfully")
}

// handleUpdateStatus handles PATCH /applications/{id}/status.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.fail(w, r, &ErrInvalidToken{Reason: err.Error()})
		return
	}

	var req types.UpdateStatusInput
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	status, err := types.ParseStatus(string(req.Status))
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "status", Message: "Invalid status"})
		return
	}

	app, err := s.store.UpdateApplicationStatus(userID, r.PathValue("id"), status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(s, w, http.StatusOK, app, "Status updated successfully")
}
