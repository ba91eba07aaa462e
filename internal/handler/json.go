package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/questboard/internal/household"
	"github.com/dukerupert/questboard/internal/logging"
	"github.com/dukerupert/questboard/internal/quest"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeBadJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
}

// statusFor maps household and quest errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, household.ErrUnknownParticipant),
		errors.Is(err, household.ErrUnknownReward),
		errors.Is(err, household.ErrUnknownGoal):
		return http.StatusNotFound
	case errors.Is(err, household.ErrInsufficientCredits):
		return http.StatusConflict
	case errors.Is(err, household.ErrWrongAccessCode):
		return http.StatusForbidden
	case errors.Is(err, household.ErrInvalidSchedule),
		errors.Is(err, household.ErrEmptyAccessCode),
		errors.Is(err, household.ErrAccessCodeMismatch),
		errors.Is(err, quest.ErrTooManyPicks):
		return http.StatusBadRequest
	case errors.Is(err, household.ErrNoCatalogSource):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context(), logger).Error("request failed", "error", err)
		writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeResult writes a successful mutation response. A persistence failure
// still counts as success, flagged with "persisted": false.
func writeResult(w http.ResponseWriter, r *http.Request, logger *slog.Logger, body map[string]any, err error) {
	if err != nil {
		var pe *household.PersistError
		if !errors.As(err, &pe) {
			writeError(w, r, logger, err)
			return
		}
		if body == nil {
			body = map[string]any{}
		}
		logging.FromContext(r.Context(), logger).Warn("change not persisted", "error", err)
		body["persisted"] = false
	}
	if body == nil {
		body = map[string]any{"status": "ok"}
	}
	writeJSON(w, http.StatusOK, body)
}
