package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/questboard/internal/household"
)

type StatsHandler struct {
	state  *household.State
	logger *slog.Logger
}

func NewStatsHandler(state *household.State, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{state: state, logger: logger}
}

// List returns every participant's stats, or one participant's when the
// participant query parameter is set.
func (h *StatsHandler) List(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("participant"); name != "" {
		st, err := h.state.Stats(name)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
		return
	}
	writeJSON(w, http.StatusOK, h.state.AllStats())
}
