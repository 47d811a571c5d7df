package devserver

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jonathan/jobpilot/internal/devserver/middleware"
	"github.com/jonathan/jobpilot/internal/types"
)

// handleListJobs handles GET /jobs?keyword=&location=&company=.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobs := s.store.Jobs(types.JobFilters{
		Keyword:  q.Get("keyword"),
		Location: q.Get("location"),
		Company:  q.Get("company"),
	})
	respond(s, w, http.StatusOK, jobs, "")
}

// handleMatchedJobs handles GET /jobs/matched. Jobs are scored against the user's
// résumé and sorted by score, highest first.
func (s *Server) handleMatchedJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.fail(w, r, &ErrInvalidToken{Reason: err.Error()})
		return
	}
	resume, err := s.store.Resume(userID)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "Please upload your resume first", err.Error())
		return
	}

	jobs := s.store.Jobs(types.JobFilters{})
	for i := range jobs {
		score := s.scorer.Score(resume, jobs[i].Description)
		jobs[i].MatchScore = &score
		if err := jobs[i].Validate(); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to score jobs", err.Error())
			return
		}
	}
	sort.SliceStable(jobs, func(i, j int) bool { return *jobs[i].MatchScore > *jobs[j].MatchScore })
	respond(s, w, http.StatusOK, jobs, "")
}

// handleCreateJob handles POST /jobs.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobInput
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}
	job := s.store.AddJob(req)
	respond(s, w, http.StatusCreated, job, "Job created successfully")
}

// handleAnalyze handles POST /jobs/analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.fail(w, r, &ErrInvalidToken{Reason: err.Error()})
		return
	}

	var req types.AnalyzeInput
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		s.fail(w, r, &ErrValidation{Field: "jobDescription", Message: "Job description is required"})
		return
	}

	resume, err := s.store.Resume(userID)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "Please upload your resume first", err.Error())
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), resume, req.JobDescription)
	if err != nil {
		s.log.WithError(err).Warn("job match analysis failed")
		s.errorResponse(w, http.StatusBadGateway, "Failed to analyze job match", err.Error())
		return
	}
	respond(s, w, http.StatusOK, analysis, "Analysis complete")
}
