package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"daybook/ledger"
)

// ErrorResponse is the JSON error envelope. Validation failures carry the
// full ordered violation list; other failures carry a single message.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses: validation failures
// become 422 with every message, unknown ids 404, storage failures 502.
func writeError(w http.ResponseWriter, err error) {
	var validation *ledger.ValidationErrors
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  validation.Error(),
			Errors: validation.Messages(),
		})
		return
	}

	var notFound *ledger.NotFoundError
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: notFound.Error()})
		return
	}

	var upstream *ledger.UpstreamError
	if errors.As(err, &upstream) {
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: upstream.Error()})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
