package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/observability"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"pdf":  "application/pdf",
	"json": "application/json",
	"csv":  "text/csv; charset=utf-8",
	"dot":  "text/vnd.graphviz; charset=utf-8",
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func errorBody(code, message string) errorResponse {
	return errorResponse{Error: errorPayload{Code: code, Message: message}}
}

func errNotFound(format string, args ...any) error {
	return apperrors.New(apperrors.ErrCodeNotFound, format, args...)
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return 499
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}

	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidColumn,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidStyle,
		apperrors.ErrCodeInvalidFilename, apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case apperrors.ErrCodeInvalidRow:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound, apperrors.ErrCodeDatasetNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case apperrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as a JSON error body. Internal errors are reported
// without their cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(apperrors.GetCode(err))
	msg := apperrors.UserMessage(err)

	switch status {
	case http.StatusGatewayTimeout:
		code, msg = "TIMEOUT", "request timed out"
	case http.StatusRequestEntityTooLarge:
		code = string(apperrors.ErrCodeTooLarge)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			msg = fmt.Sprintf("upload exceeds %d bytes", maxErr.Limit)
		}
	case http.StatusInternalServerError:
		code, msg = string(apperrors.ErrCodeInternal), "internal error"
	}
	if code == "" {
		code = string(apperrors.ErrCodeInternal)
	}

	route := r.URL.Path
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		route = rc.RoutePattern()
	}
	observability.HTTP().OnError(r.Context(), r.Method, route, err)

	writeJSON(w, r, status, errorBody(code, msg))
}

// writeJSON encodes v with the given status, indented when ?pretty=true.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	if pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty")); pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}

// writeArtifact writes rendered bytes with the content type of format.
func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	ct, ok := contentTypes[format]
	if !ok {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
