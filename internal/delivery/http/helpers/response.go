package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"guestlist/internal/domain"
)

// Return codes carried in every API response. Clients branch on
// return_code, never on the HTTP status.
const (
	CodeSuccess         = "SUCCESS"
	CodeMissingFields   = "MISSING_FIELDS"
	CodeInvalidEmail    = "INVALID_EMAIL"
	CodeInvalidPassword = "INVALID_PASSWORD"
	CodeEmailExists     = "EMAIL_EXISTS"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeServerError     = "SERVER_ERROR"
)

// Envelope is embedded in every response body. Message is only set on
// non-success codes and carries no internal detail.
// swagger:model Envelope
type Envelope struct {
	ReturnCode string `json:"return_code"`
	Message    string `json:"message,omitempty"`
}

// OK returns the success envelope for embedding in response bodies.
func OK() Envelope {
	return Envelope{ReturnCode: CodeSuccess}
}

// WriteJSON writes body as JSON with HTTP 200. The transport status is
// always 200; the outcome lives in the body's return_code.
func WriteJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteCode writes a bare envelope with the given return code and message.
func WriteCode(w http.ResponseWriter, code, message string) {
	WriteJSON(w, Envelope{ReturnCode: code, Message: message})
}

// CodeForError maps domain sentinel errors to return codes. Anything
// unrecognized is a SERVER_ERROR; the caller logs it before responding.
func CodeForError(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return CodeMissingFields
	case errors.Is(err, domain.ErrInvalidEmail):
		return CodeInvalidEmail
	case errors.Is(err, domain.ErrInvalidPassword):
		return CodeInvalidPassword
	case errors.Is(err, domain.ErrDuplicateEmail):
		return CodeEmailExists
	case errors.Is(err, domain.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenExpired):
		return CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return CodeForbidden
	default:
		return CodeServerError
	}
}

// MessageForCode returns the client-facing message for an error code.
func MessageForCode(code string) string {
	switch code {
	case CodeMissingFields:
		return "required fields are missing"
	case CodeInvalidEmail:
		return "invalid email format"
	case CodeInvalidPassword:
		return "password does not meet requirements"
	case CodeEmailExists:
		return "email already registered"
	case CodeNotFound:
		return "not found"
	case CodeUnauthorized:
		return "unauthorized"
	case CodeForbidden:
		return "forbidden"
	default:
		return "internal error"
	}
}
