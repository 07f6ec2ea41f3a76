package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	cerrors "github.com/matzehuels/constellation/pkg/errors"
)

type errorResponse struct {
	Error string       `json:"error"`
	Code  cerrors.Code `json:"code"`
}

// writeJSON encodes v before writing the header, so a value JSON cannot
// represent (such as a NaN coordinate) becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "response encoding failed", Code: cerrors.ErrCodeInternal})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// writeError maps coded errors to their HTTP status. Uncoded errors are
// logged and reported as a generic internal error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := cerrors.GetCode(err)
	msg := cerrors.UserMessage(err)

	switch {
	case code != "":
	case errors.Is(err, context.DeadlineExceeded):
		code = cerrors.ErrCodeTimeout
		msg = "request timed out"
	default:
		code = cerrors.ErrCodeInternal
		msg = "internal error"
	}

	status := cerrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "code", code, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}
