package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

var badRequestErrors = []error{
	domain.ErrInvalidPollID,
	domain.ErrInvalidParticipantID,
	domain.ErrTitleRequired,
	domain.ErrNameRequired,
	domain.ErrInvalidVoteType,
	domain.ErrInvalidDay,
	domain.ErrInvalidDateTime,
	domain.ErrInvalidTimeRange,
	domain.ErrInvalidTimeZone,
	domain.ErrMixedOptionTypes,
	domain.ErrNoOptions,
	domain.ErrOptionIndexOutOfRange,
	domain.ErrDayNotSelected,
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	var typeErr *domain.OptionTypeError
	switch {
	case errors.As(err, &typeErr), errors.Is(err, domain.ErrOptionTypeMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPollNotFound), errors.Is(err, domain.ErrParticipantNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrVoteCountMismatch):
		return http.StatusConflict
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError responds with the status err maps to. Internal errors
// are logged and hidden from the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeError(w, r, status, domain.ErrInternal.Error())
		return
	}
	writeError(w, r, status, err.Error())
}
