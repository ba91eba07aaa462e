package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/questboard/internal/household"
)

type RewardHandler struct {
	state  *household.State
	logger *slog.Logger
}

func NewRewardHandler(state *household.State, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{state: state, logger: logger}
}

func (h *RewardHandler) Store(w http.ResponseWriter, r *http.Request) {
	view, err := h.state.Store(r.PathValue("name"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type redeemRequest struct {
	RewardID string `json:"reward_id"`
}

func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if req.RewardID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reward_id is required"})
		return
	}

	redemption, err := h.state.Redeem(r.Context(), r.PathValue("name"), req.RewardID)
	writeResult(w, r, h.logger, map[string]any{"redemption": redemption}, err)
}
