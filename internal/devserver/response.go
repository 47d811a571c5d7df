package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobpilot/internal/types"
)

// maxJSONBody bounds request bodies other than uploads.
const maxJSONBody = 1 << 20

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Warn("failed to encode JSON response")
	}
}

// respond writes a success envelope around data.
func respond[T any](s *Server, w http.ResponseWriter, status int, data T, message string) {
	s.jsonResponse(w, status, types.OK(status, data, message))
}

// errorResponse writes a failure envelope.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message, detail string) {
	s.jsonResponse(w, status, types.Fail[struct{}](status, message, detail))
}

// fail maps err to a status and writes it. Internal errors are logged and not echoed.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		s.errorResponse(w, status, "Internal server error", "internal")
		return
	}
	s.errorResponse(w, status, publicMessage(err), err.Error())
}

// publicMessage is the user-facing text for a typed error.
func publicMessage(err error) string {
	var validation *ErrValidation
	if errors.As(err, &validation) {
		return validation.Message
	}
	msg := err.Error()
	if msg == "" {
		return msg
	}
	runes := []rune(msg)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// decode reads a JSON body into dst.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "Invalid request body"}
	}
	return nil
}

// validationError converts validator errors into an ErrValidation naming the first failing field by its JSON name.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		field := ve.Field()
		return &ErrValidation{Field: field, Message: fieldMessage(field, ve.Tag(), ve.Param())}
	}
	return &ErrValidation{Field: "body", Message: "Invalid request"}
}

func fieldMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please provide a valid email address"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
