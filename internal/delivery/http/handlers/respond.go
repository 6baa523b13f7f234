package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/forgeline/rfq-service/internal/domain"
)

// httpStatusFor maps the domain error taxonomy onto HTTP statuses. Invalid
// requests land in the 4xx range; only conversion outages are a server fault.
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrRuleAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConversionUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrNotProposable),
		errors.Is(err, domain.ErrMaxRoundsReached),
		errors.Is(err, domain.ErrBusinessRuleViolation),
		errors.Is(err, domain.ErrFloorAboveThreshold),
		errors.Is(err, domain.ErrInactiveItem):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := httpStatusFor(err)
	msg := err.Error()
	if status >= 500 {
		slog.Error("request failed", "status", status, "error", err)
		if status == http.StatusInternalServerError {
			msg = "internal server error"
		}
	}
	writeJSON(w, status, map[string]any{"error": msg})
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

// partyID identifies the caller. Authentication happens at the gateway; the
// service trusts the forwarded header.
func partyID(r *http.Request) string {
	return r.Header.Get("X-Party-ID")
}
