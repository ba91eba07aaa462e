package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/dukerupert/questboard/internal/household"
	"github.com/dukerupert/questboard/internal/model"
)

// CatalogHandler edits the workbook-owned task lists, menu, rewards and goals.
type CatalogHandler struct {
	state  *household.State
	logger *slog.Logger
}

func NewCatalogHandler(state *household.State, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{state: state, logger: logger}
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state.Catalog())
}

func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.state.ReloadCatalog(r.Context()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.state.Catalog())
}

func (h *CatalogHandler) checkParticipant(w http.ResponseWriter, name string) bool {
	if !slices.Contains(h.state.Roster(), name) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("%s: %q", household.ErrUnknownParticipant, name)})
		return false
	}
	return true
}

func (h *CatalogHandler) update(w http.ResponseWriter, r *http.Request, mutate func(*model.Catalog)) {
	if err := h.state.UpdateCatalog(r.Context(), mutate); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.state.Catalog())
}

// cleanList trims entries and drops blanks.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type tasksRequest struct {
	Mode        string   `json:"mode"`
	Participant string   `json:"participant"`
	Tasks       []string `json:"tasks"`
}

func (h *CatalogHandler) UpdateTasks(w http.ResponseWriter, r *http.Request) {
	var req tasksRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if !h.checkParticipant(w, req.Participant) {
		return
	}

	tasks := cleanList(req.Tasks)
	h.update(w, r, func(c *model.Catalog) {
		if c.Tasks[mode] == nil {
			c.Tasks[mode] = make(map[string][]string)
		}
		c.Tasks[mode][req.Participant] = tasks
	})
}

type foodRequest struct {
	Category string           `json:"category"`
	Items    []model.FoodItem `json:"items"`
}

func (h *CatalogHandler) UpdateFood(w http.ResponseWriter, r *http.Request) {
	var req foodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	cat := model.FoodCategory(req.Category)
	if !slices.Contains(model.FoodCategories, cat) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("unknown food category %q", req.Category)})
		return
	}

	items := make([]model.FoodItem, 0, len(req.Items))
	for _, item := range req.Items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name != "" {
			items = append(items, item)
		}
	}
	h.update(w, r, func(c *model.Catalog) {
		c.Food[cat] = items
	})
}

type rewardEdit struct {
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

type rewardsRequest struct {
	Participant string       `json:"participant"`
	Rewards     []rewardEdit `json:"rewards"`
}

// UpdateRewards replaces a participant's rewards. IDs are reassigned by
// position, the same way the workbook reader assigns them.
func (h *CatalogHandler) UpdateRewards(w http.ResponseWriter, r *http.Request) {
	var req rewardsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if !h.checkParticipant(w, req.Participant) {
		return
	}

	rewards := make([]model.Reward, 0, len(req.Rewards))
	for _, edit := range req.Rewards {
		name := strings.TrimSpace(edit.Name)
		if name == "" {
			continue
		}
		if edit.Cost < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cost must be >= 0"})
			return
		}
		rewards = append(rewards, model.Reward{
			ID:   fmt.Sprintf("%s-%d", req.Participant, len(rewards)),
			Name: name,
			Cost: edit.Cost,
		})
	}
	h.update(w, r, func(c *model.Catalog) {
		c.Rewards[req.Participant] = rewards
	})
}

type goalsRequest struct {
	Participant string       `json:"participant"`
	Goals       []model.Goal `json:"goals"`
}

// UpdateGoals replaces a participant's weekend goals. A credit value of zero
// means the household default.
func (h *CatalogHandler) UpdateGoals(w http.ResponseWriter, r *http.Request) {
	var req goalsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if !h.checkParticipant(w, req.Participant) {
		return
	}

	goals := make([]model.Goal, 0, len(req.Goals))
	for _, g := range req.Goals {
		g.Name = strings.TrimSpace(g.Name)
		if g.Name == "" {
			continue
		}
		if g.Credits < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "credits must be >= 0"})
			return
		}
		goals = append(goals, g)
	}
	h.update(w, r, func(c *model.Catalog) {
		c.Goals[req.Participant] = goals
	})
}
