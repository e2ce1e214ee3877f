package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/lib/logger/sl"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", sl.Err(err))
	}
}

// respondError maps service errors to status codes: validation failures are
// 400 with the field map as body, missing path resources are 404.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, log, http.StatusBadRequest, ve.Fields)
	case errors.Is(err, domain.ErrPollNotFound), errors.Is(err, domain.ErrOptionNotFound):
		writeJSON(w, log, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		log.Error("request failed",
			sl.Err(err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		writeJSON(w, log, http.StatusInternalServerError, errorResponse{Error: domain.ErrInternal.Error()})
	}
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeJSON decodes the request body into v. An empty body decodes as {};
// anything after the first JSON value is rejected.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// rawID renders an id sent either as a JSON string or as a bare literal such
// as a number. Absent and null ids yield nil.
func rawID(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}

	v := string(raw)
	return &v
}
