package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/questboard/internal/household"
	"github.com/dukerupert/questboard/internal/model"
)

type AdminHandler struct {
	state  *household.State
	logger *slog.Logger
}

func NewAdminHandler(state *household.State, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{state: state, logger: logger}
}

type verifyRequest struct {
	Code string `json:"code"`
}

// Verify lets the admin screen check a code before unlocking itself.
func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if !h.state.CheckAccessCode(req.Code) {
		writeJSON(w, http.StatusForbidden, map[string]any{"valid": false, "error": household.ErrWrongAccessCode.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

type overrideRequest struct {
	Mode string `json:"mode"`
}

// Override sets the mode override; an empty mode clears it.
func (h *AdminHandler) Override(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	var mode *model.Mode
	if req.Mode != "" {
		m, err := model.ParseMode(req.Mode)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		mode = &m
	}

	err := h.state.SetOverride(r.Context(), mode)
	writeResult(w, r, h.logger, map[string]any{
		"mode":     h.state.Mode(),
		"override": h.state.Override(),
	}, err)
}

func (h *AdminHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state.Schedule())
}

type scheduleRequest struct {
	Morning        string `json:"morning"`
	Evening        string `json:"evening"`
	CreditsPerGoal int    `json:"credits_per_goal"`
}

func (h *AdminHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	err := h.state.SetSchedule(r.Context(), req.Morning, req.Evening, req.CreditsPerGoal)
	writeResult(w, r, h.logger, map[string]any{"schedule": h.state.Schedule()}, err)
}

type accessCodeRequest struct {
	Current string `json:"current"`
	New     string `json:"new"`
	Confirm string `json:"confirm"`
}

func (h *AdminHandler) ChangeAccessCode(w http.ResponseWriter, r *http.Request) {
	var req accessCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	err := h.state.ChangeAccessCode(r.Context(), req.Current, req.New, req.Confirm)
	writeResult(w, r, h.logger, nil, err)
}

type creditsRequest struct {
	Delta int `json:"delta"`
}

func (h *AdminHandler) AdjustCredits(w http.ResponseWriter, r *http.Request) {
	var req creditsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	balance, err := h.state.AdjustCredits(r.Context(), r.PathValue("name"), req.Delta)
	writeResult(w, r, h.logger, map[string]any{"credits": balance}, err)
}

func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	err := h.state.MasterReset(r.Context())
	writeResult(w, r, h.logger, nil, err)
}
