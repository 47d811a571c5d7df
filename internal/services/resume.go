package services

import (
	"context"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/jobpilot/internal/apiclient"
	"github.com/jonathan/jobpilot/internal/types"
)

// MaxResumeBytes is the largest résumé accepted for upload.
const MaxResumeBytes = 10 * 1024 * 1024

// ResumeField is the multipart field name the upload endpoint expects.
const ResumeField = "resume"

const pdfMIME = "application/pdf"

// Résumé validation messages.
const (
	MsgNoFile    = "Please select a file to upload"
	MsgNotPDF    = "Please upload a PDF file"
	MsgTooLarge  = "File size must be less than 10MB"
	msgUploadErr = "Failed to upload resume"
)

// ValidateResumeFile checks that content is a non-empty PDF of at most MaxResumeBytes.
// It returns the user-facing message, or "" when the file is acceptable.
// The type is sniffed from the bytes; the filename extension is not trusted.
func ValidateResumeFile(content []byte) string {
	if len(content) == 0 {
		return MsgNoFile
	}
	if !mimetype.Detect(content).Is(pdfMIME) {
		return MsgNotPDF
	}
	if len(content) > MaxResumeBytes {
		return MsgTooLarge
	}
	return ""
}

// ResumeService reads and replaces the user's résumé.
type ResumeService struct {
	api API
}

// NewResumeService creates a ResumeService.
func NewResumeService(api API) *ResumeService {
	return &ResumeService{api: api}
}

// GetResume returns the current résumé. A user without one gets a failure envelope (usually 404).
func (s *ResumeService) GetResume(ctx context.Context) types.Envelope[types.Resume] {
	return call(func(out *types.Envelope[types.Resume]) error {
		return s.api.Do(ctx, http.MethodGet, "/resume", nil, out)
	}, "Failed to fetch resume")
}

// UploadResume validates and uploads a PDF. The new résumé replaces the old one.
func (s *ResumeService) UploadResume(ctx context.Context, filename string, content []byte) types.Envelope[types.Resume] {
	if msg := ValidateResumeFile(content); msg != "" {
		return types.Invalid[types.Resume](msg)
	}

	file := apiclient.File{
		Field:       ResumeField,
		Filename:    filename,
		ContentType: pdfMIME,
		Content:     content,
	}
	return call(func(out *types.Envelope[types.Resume]) error {
		return s.api.Upload(ctx, "/resume/upload", file, out)
	}, msgUploadErr)
}
