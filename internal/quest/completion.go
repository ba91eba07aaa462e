// Package quest decides when a participant's quest is done and records the
// once-per-day completion.
package quest

import (
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/questboard/internal/model"
)

var ErrTooManyPicks = errors.New("too many picks")

// TasksComplete reports whether every task is checked. An empty list is never complete.
func TasksComplete(tasks []string, checklist map[string]bool) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, task := range tasks {
		if !checklist[task] {
			return false
		}
	}
	return true
}

// FoodComplete reports whether the menu has been planned. Only the morning
// quest plans food. A category with nothing in stock has nothing to choose,
// and school lunch exempts the lunch categories.
func FoodComplete(mode model.Mode, menu *model.Catalog, sel model.Selections) bool {
	if mode != model.ModeMorning {
		return true
	}
	for _, cat := range model.FoodCategories {
		if sel.SchoolLunch && cat.IsLunch() {
			continue
		}
		if menu.InStock(cat) == 0 {
			continue
		}
		if len(sel.Food[cat]) == 0 {
			return false
		}
	}
	return true
}

// Complete is TasksComplete and FoodComplete together.
func Complete(mode model.Mode, tasks []string, menu *model.Catalog, sel model.Selections) bool {
	return TasksComplete(tasks, sel.Checklist) && FoodComplete(mode, menu, sel)
}

// ValidateSelections rejects more picks than a category allows.
func ValidateSelections(sel model.Selections) error {
	for cat, items := range sel.Food {
		if limit := cat.PickLimit(); len(items) > limit {
			return fmt.Errorf("%w: %s allows %d, got %d", ErrTooManyPicks, cat, limit, len(items))
		}
	}
	return nil
}

// SaveInput is everything a save needs besides the participant's own state.
type SaveInput struct {
	Selections model.Selections
	Mode       model.Mode
	Rehearsal  bool // an override is active
	Tasks      []string
	Menu       *model.Catalog
	Now        time.Time
}

// Outcome tells the caller what a save did.
type Outcome struct {
	Complete  bool                   `json:"complete"`
	Celebrate bool                   `json:"celebrate"`
	Rehearsal bool                   `json:"rehearsal"`
	Entry     *model.CompletionEntry `json:"entry,omitempty"`
}

// Save stores the selections and performs the completion transition:
//
//  1. a completion stamped on an earlier day is cleared first;
//  2. a complete quest with no completion today is stamped and logged;
//  3. under an override the quest is celebrated but nothing durable is written;
//  4. anything else just stores the selections.
//
// Repeated natural saves on one day therefore log at most one completion.
func Save(state *model.QuestState, log *[]model.CompletionEntry, in SaveInput) Outcome {
	today := model.DateOf(in.Now)
	ClearStale(state, in.Now)

	state.Selections = in.Selections.Clone()
	state.LastDate = today

	complete := Complete(in.Mode, in.Tasks, in.Menu, in.Selections)
	out := Outcome{Complete: complete}
	if !complete {
		return out
	}

	if in.Rehearsal {
		out.Celebrate = true
		out.Rehearsal = true
		return out
	}
	if state.CompletedAt != nil {
		return out
	}

	stamp := in.Now
	state.CompletedAt = &stamp
	entry := model.CompletionEntry{Date: today, Time: stamp, Mode: in.Mode}
	*log = append(*log, entry)
	out.Celebrate = true
	out.Entry = &entry
	return out
}

// ClearStale drops a completion stamp that belongs to an earlier day.
func ClearStale(state *model.QuestState, now time.Time) {
	if state.CompletedAt != nil && !model.SameDay(*state.CompletedAt, now) {
		state.CompletedAt = nil
	}
}

// CompletedToday reports whether the quest was completed on now's calendar date.
func CompletedToday(state model.QuestState, now time.Time) bool {
	return state.CompletedAt != nil &&
		state.LastDate == model.DateOf(now) &&
		model.SameDay(*state.CompletedAt, now)
}
