package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/observability"
)

// statusOf maps error codes to HTTP statuses. Unlisted codes are 500.
var statusOf = map[errors.Code]int{
	errors.ErrCodeInvalidInput:     http.StatusBadRequest,
	errors.ErrCodeInvalidSize:      http.StatusBadRequest,
	errors.ErrCodeInvalidAxis:      http.StatusBadRequest,
	errors.ErrCodeInvalidDirective: http.StatusBadRequest,
	errors.ErrCodeInvalidIndex:     http.StatusBadRequest,
	errors.ErrCodeInvalidScene:     http.StatusBadRequest,
	errors.ErrCodeInvalidFormat:    http.StatusBadRequest,
	errors.ErrCodeInvalidPath:      http.StatusBadRequest,
	errors.ErrCodeInvalidRole:      http.StatusBadRequest,
	errors.ErrCodeUnknownWidget:    http.StatusBadRequest,
	errors.ErrCodeUnsupported:      http.StatusBadRequest,
	errors.ErrCodeNotFound:         http.StatusNotFound,
	errors.ErrCodeFileNotFound:     http.StatusNotFound,
	errors.ErrCodeTimeout:          http.StatusGatewayTimeout,
	errors.ErrCodeNetwork:          http.StatusBadGateway,
}

// StatusCode returns the HTTP status for err.
func StatusCode(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	if status, ok := statusOf[errors.GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

type errorPayload struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code, message string) errorPayload {
	return errorPayload{Error: errorDetail{Code: code, Message: message}}
}

// writeError writes err as a JSON error body. Server-side failures keep
// their message out of the response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	code := string(errors.GetCode(err))
	msg := err.Error()
	switch {
	case status == http.StatusRequestEntityTooLarge:
		code = "BODY_TOO_LARGE"
	case status == http.StatusGatewayTimeout && code == "":
		code = string(errors.ErrCodeTimeout)
	case status >= 500 && code == "":
		code = string(errors.ErrCodeInternal)
		msg = "internal error"
	case code == "":
		code = string(errors.ErrCodeInvalidInput)
	}
	writeJSON(w, status, errorBody(code, msg))
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
