package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/questboard/internal/household"
)

type GoalHandler struct {
	state  *household.State
	logger *slog.Logger
}

func NewGoalHandler(state *household.State, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{state: state, logger: logger}
}

func (h *GoalHandler) Board(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state.GoalBoard())
}

type approveGoalRequest struct {
	Goal string `json:"goal"`
}

func (h *GoalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req approveGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	req.Goal = strings.TrimSpace(req.Goal)
	if req.Goal == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "goal is required"})
		return
	}

	entry, err := h.state.ApproveGoal(r.Context(), r.PathValue("name"), req.Goal)
	writeResult(w, r, h.logger, map[string]any{"entry": entry}, err)
}
