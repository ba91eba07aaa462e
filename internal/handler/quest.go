package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/questboard/internal/household"
	"github.com/dukerupert/questboard/internal/model"
)

type QuestHandler struct {
	state  *household.State
	logger *slog.Logger
}

func NewQuestHandler(state *household.State, logger *slog.Logger) *QuestHandler {
	return &QuestHandler{state: state, logger: logger}
}

func (h *QuestHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state.Dashboard())
}

func (h *QuestHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.state.Quest(r.PathValue("name"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *QuestHandler) Save(w http.ResponseWriter, r *http.Request) {
	var sel model.Selections
	if err := decodeJSON(r, &sel); err != nil {
		writeBadJSON(w)
		return
	}
	if sel.Checklist == nil {
		sel.Checklist = map[string]bool{}
	}
	if sel.Food == nil {
		sel.Food = map[model.FoodCategory][]string{}
	}

	out, err := h.state.SaveSelections(r.Context(), r.PathValue("name"), sel)
	writeResult(w, r, h.logger, map[string]any{
		"complete":  out.Complete,
		"celebrate": out.Celebrate,
		"rehearsal": out.Rehearsal,
		"entry":     out.Entry,
	}, err)
}
