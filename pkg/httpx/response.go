package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/campus/pkg/errx"
	"github.com/aussiebroadwan/campus/pkg/slogx"
)

// Error codes in the "error" member of every error body.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeValidationFailed  = "validation_failed"
	CodeInvalidToken      = "invalid_token"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeServerError       = "server_error"
	CodeRateLimitExceeded = "rate_limit_exceeded"
)

// AuthFailedDescription is the only text a client ever sees for a failed
// authentication, whatever the cause.
const AuthFailedDescription = "authentication failed"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error       string            `json:"error"`
	Description string            `json:"error_description"`
	Fields      map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WriteAuthError writes the uniform RFC 6750 401 response.
func WriteAuthError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteJSON(w, http.StatusUnauthorized, ErrorBody{
		Error:       CodeInvalidToken,
		Description: AuthFailedDescription,
	})
}

// WriteError maps err onto the error taxonomy and writes it. Anything that
// is not a known kind is logged and reported as a bare 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errx.KindOf(err)

	switch kind {
	case errx.ErrUnauthenticated:
		WriteAuthError(w)
		return
	case errx.ErrValidation:
		body := ErrorBody{Error: CodeValidationFailed, Description: errx.Message(err)}
		var ve *errx.ValidationError
		if errors.As(err, &ve) {
			body.Fields = ve.Fields
		}
		WriteJSON(w, http.StatusUnprocessableEntity, body)
		return
	}

	status, code := StatusFor(kind)
	if status == http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
	}

	WriteJSON(w, status, ErrorBody{Error: code, Description: errx.Message(err)})
}

// StatusFor returns the HTTP status and error code for a taxonomy kind.
func StatusFor(kind error) (int, string) {
	switch kind {
	case errx.ErrInvalidRequest:
		return http.StatusBadRequest, CodeInvalidRequest
	case errx.ErrValidation:
		return http.StatusUnprocessableEntity, CodeValidationFailed
	case errx.ErrUnauthenticated:
		return http.StatusUnauthorized, CodeInvalidToken
	case errx.ErrForbidden:
		return http.StatusForbidden, CodeForbidden
	case errx.ErrNotFound:
		return http.StatusNotFound, CodeNotFound
	case errx.ErrConflict:
		return http.StatusConflict, CodeConflict
	default:
		return http.StatusInternalServerError, CodeServerError
	}
}

// NotFoundHandler answers unmatched routes with the JSON error body.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, errx.NotFound("no route for %s", r.URL.Path))
	})
}
