package devserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jonathan/jobpilot/internal/devserver/middleware"
)

// Upload limits.
const (
	MaxResumeBytes = 10 << 20
	resumeField    = "resume"
)

// handleGetResume handles GET /resume.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.fail(w, r, &ErrInvalidToken{Reason: err.Error()})
		return
	}
	resume, err := s.store.Resume(userID)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "No resume found", err.Error())
		return
	}
	respond(s, w, http.StatusOK, resume, "")
}

// handleUploadResume handles POST /resume/upload with a multipart "resume" PDF part.
// The upload replaces any previous résumé.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.fail(w, r, &ErrInvalidToken{Reason: err.Error()})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxResumeBytes+1<<20)
	file, header, err := r.FormFile(resumeField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, &ErrValidation{Field: resumeField, Message: "File size must be less than 10MB"})
			return
		}
		s.fail(w, r, &ErrValidation{Field: resumeField, Message: "Please select a file to upload"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, MaxResumeBytes+1))
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: resumeField, Message: "Failed to read uploaded file"})
		return
	}
	if len(content) > MaxResumeBytes {
		s.fail(w, r, &ErrValidation{Field: resumeField, Message: "File size must be less than 10MB"})
		return
	}
	if !mimetype.Detect(content).Is("application/pdf") {
		s.fail(w, r, &ErrValidation{Field: resumeField, Message: "Please upload a PDF file"})
		return
	}

	resume := s.store.PutResume(userID, ParseResume(header.Filename, content))
	s.log.WithField("user_id", userID).WithField("skills", len(resume.Skills)).Info("resume uploaded")
	respond(s, w, http.StatusCreated, resume, "Resume uploaded successfully")
}
