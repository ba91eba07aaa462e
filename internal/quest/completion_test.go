package quest

import (
	"errors"
	"testing"
	"time"

	"github.com/dukerupert/questboard/internal/model"
)

func menu() *model.Catalog {
	c := model.NewCatalog()
	c.Food[model.FoodBreakfast] = []model.FoodItem{{Name: "Cereal", InStock: true}, {Name: "Toast", InStock: true}}
	c.Food[model.FoodSpecialBreakfast] = []model.FoodItem{{Name: "Pancakes", InStock: false}}
	c.Food[model.FoodSnacks] = []model.FoodItem{{Name: "Apple", InStock: true}}
	c.Food[model.FoodLunchMain] = []model.FoodItem{{Name: "Sandwich", InStock: true}}
	c.Food[model.FoodLunchHealthy] = []model.FoodItem{{Name: "Carrots", InStock: true}}
	c.Food[model.FoodLunchTreat] = []model.FoodItem{{Name: "Chips", InStock: true}}
	return c
}

func fullFood() map[model.FoodCategory][]string {
	return map[model.FoodCategory][]string{
		model.FoodBreakfast:    {"Cereal"},
		model.FoodSnacks:       {"Apple"},
		model.FoodLunchMain:    {"Sandwich"},
		model.FoodLunchHealthy: {"Carrots"},
		model.FoodLunchTreat:   {"Chips"},
	}
}

var tasks = []string{"brush teeth", "make bed"}

func doneSelections() model.Selections {
	return model.Selections{
		Checklist: map[string]bool{"brush teeth": true, "make bed": true},
		Food:      fullFood(),
	}
}

func TestTasksComplete(t *testing.T) {
	tests := []struct {
		name      string
		tasks     []string
		checklist map[string]bool
		want      bool
	}{
		{"empty list is never complete", nil, map[string]bool{"x": true}, false},
		{"all checked", tasks, map[string]bool{"brush teeth": true, "make bed": true}, true},
		{"one unchecked", tasks, map[string]bool{"brush teeth": true, "make bed": false}, false},
		{"one missing", tasks, map[string]bool{"brush teeth": true}, false},
		{"nil checklist", tasks, nil, false},
		{"extra checked items ignored", []string{"a"}, map[string]bool{"a": true, "b": true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TasksComplete(tt.tasks, tt.checklist); got != tt.want {
				t.Errorf("TasksComplete = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFoodComplete(t *testing.T) {
	t.Run("non-morning is vacuous", func(t *testing.T) {
		for _, mode := range []model.Mode{model.ModeAfternoon, model.ModeWeekend} {
			if !FoodComplete(mode, menu(), model.Selections{}) {
				t.Errorf("FoodComplete(%q, nothing picked) = false, want true", mode)
			}
		}
	})

	t.Run("all in-stock categories picked", func(t *testing.T) {
		if !FoodComplete(model.ModeMorning, menu(), model.Selections{Food: fullFood()}) {
			t.Error("want complete")
		}
	})

	t.Run("out of stock category needs nothing", func(t *testing.T) {
		// special breakfast only has an out-of-stock item and is not picked
		sel := model.Selections{Food: fullFood()}
		delete(sel.Food, model.FoodSpecialBreakfast)
		if !FoodComplete(model.ModeMorning, menu(), sel) {
			t.Error("want complete")
		}
	})

	t.Run("missing breakfast", func(t *testing.T) {
		sel := model.Selections{Food: fullFood()}
		delete(sel.Food, model.FoodBreakfast)
		if FoodComplete(model.ModeMorning, menu(), sel) {
			t.Error("want incomplete")
		}
	})

	t.Run("school lunch exempts lunch categories", func(t *testing.T) {
		sel := model.Selections{
			Food: map[model.FoodCategory][]string{
				model.FoodBreakfast: {"Toast"},
				model.FoodSnacks:    {"Apple"},
			},
			SchoolLunch: true,
		}
		if !FoodComplete(model.ModeMorning, menu(), sel) {
			t.Error("want complete with school lunch")
		}
		sel.SchoolLunch = false
		if FoodComplete(model.ModeMorning, menu(), sel) {
			t.Error("want incomplete without school lunch")
		}
	})

	t.Run("school lunch does not exempt snacks", func(t *testing.T) {
		sel := model.Selections{
			Food:        map[model.FoodCategory][]string{model.FoodBreakfast: {"Toast"}},
			SchoolLunch: true,
		}
		if FoodComplete(model.ModeMorning, menu(), sel) {
			t.Error("want incomplete")
		}
	})

	t.Run("empty menu", func(t *testing.T) {
		if !FoodComplete(model.ModeMorning, nil, model.Selections{}) {
			t.Error("nil menu should be vacuously complete")
		}
		if !FoodComplete(model.ModeMorning, model.NewCatalog(), model.Selections{}) {
			t.Error("empty menu should be vacuously complete")
		}
	})
}

func TestValidateSelections(t *testing.T) {
	ok := model.Selections{Food: map[model.FoodCategory][]string{
		model.FoodBreakfast: {"a", "b", "c"},
		model.FoodSnacks:    {"a", "b"},
	}}
	if err := ValidateSelections(ok); err != nil {
		t.Fatalf("ValidateSelections: %v", err)
	}

	tooMany := model.Selections{Food: map[model.FoodCategory][]string{
		model.FoodLunchMain: {"a", "b"},
	}}
	err := ValidateSelections(tooMany)
	if !errors.Is(err, ErrTooManyPicks) {
		t.Errorf("err = %v, want ErrTooManyPicks", err)
	}
}

func morningInput(now time.Time, sel model.Selections) SaveInput {
	return SaveInput{
		Selections: sel,
		Mode:       model.ModeMorning,
		Tasks:      tasks,
		Menu:       menu(),
		Now:        now,
	}
}

func TestSaveRecordsFirstCompletion(t *testing.T) {
	var state model.QuestState
	var log []model.CompletionEntry
	now := time.Date(2026, 10, 13, 7, 5, 0, 0, time.UTC)

	out := Save(&state, &log, morningInput(now, doneSelections()))

	if !out.Complete || !out.Celebrate || out.Rehearsal {
		t.Errorf("outcome = %+v, want complete celebration", out)
	}
	if len(log) != 1 {
		t.Fatalf("log length = %d, want 1", len(log))
	}
	want := model.CompletionEntry{Date: "2026-10-13", Time: now, Mode: model.ModeMorning}
	if log[0] != want {
		t.Errorf("entry = %+v, want %+v", log[0], want)
	}
	if state.CompletedAt == nil || !state.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", state.CompletedAt, now)
	}
	if state.LastDate != "2026-10-13" {
		t.Errorf("LastDate = %q", state.LastDate)
	}
}

func TestSaveIsIdempotentWithinADay(t *testing.T) {
	var state model.QuestState
	var log []model.CompletionEntry
	first := time.Date(2026, 10, 13, 7, 5, 0, 0, time.UTC)
	second := first.Add(10 * time.Minute)

	Save(&state, &log, morningInput(first, doneSelections()))
	out := Save(&state, &log, morningInput(second, doneSelections()))

	if out.Celebrate {
		t.Error("second save should not celebrate")
	}
	if !out.Complete {
		t.Error("second save is still a complete quest")
	}
	if len(log) != 1 {
		t.Errorf("log length = %d, want 1", len(log))
	}
	if !state.CompletedAt.Equal(first) {
		t.Errorf("CompletedAt = %v, want first stamp %v", state.CompletedAt, first)
	}
}

func TestSaveStoresSelectionsWhenAlreadyComplete(t *testing.T) {
	var state model.QuestState
	var log []model.CompletionEntry
	now := time.Date(2026, 10, 13, 7, 5, 0, 0, time.UTC)
	Save(&state, &log, morningInput(now, doneSelections()))

	changed := doneSelections()
	changed.Food[model.FoodBreakfast] = []string{"Toast"}
	Save(&state, &log, morningInput(now.Add(time.Minute), changed))

	if got := state.Selections.Food[model.FoodBreakfast]; len(got) != 1 || got[0] != "Toast" {
		t.Errorf("breakfast = %v, want [Toast]", got)
	}
}

func TestSaveClearsStaleCompletion(t *testing.T) {
	yesterday := time.Date(2026, 10, 12, 7, 0, 0, 0, time.UTC)
	state := model.QuestState{LastDate: "2026-10-12", CompletedAt: &yesterday}
	var log []model.CompletionEntry
	now := time.Date(2026, 10, 13, 6, 50, 0, 0, time.UTC)

	incomplete := model.Selections{Checklist: map[string]bool{"brush teeth": true}}
	out := Save(&state, &log, morningInput(now, incomplete))

	if out.Complete {
		t.Error("quest is not complete")
	}
	if state.CompletedAt != nil {
		t.Errorf("stale CompletedAt kept: %v", state.CompletedAt)
	}

	out = Save(&state, &log, morningInput(now.Add(5*time.Minute), doneSelections()))
	if !out.Celebrate || len(log) != 1 {
		t.Errorf("new day completion: outcome %+v, log %d", out, len(log))
	}
}

func TestSaveRehearsalLeavesNoTrace(t *testing.T) {
	var state model.QuestState
	var log []model.CompletionEntry
	now := time.Date(2026, 10, 13, 7, 5, 0, 0, time.UTC)

	for i := range 3 {
		in := morningInput(now.Add(time.Duration(i)*time.Minute), doneSelections())
		in.Rehearsal = true
		out := Save(&state, &log, in)
		if !out.Celebrate || !out.Rehearsal {
			t.Errorf("save %d: outcome = %+v, want rehearsal celebration", i, out)
		}
		if out.Entry != nil {
			t.Errorf("save %d: rehearsal produced an entry", i)
		}
	}
	if len(log) != 0 {
		t.Errorf("log length = %d, want 0", len(log))
	}
	if state.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil", state.CompletedAt)
	}
	if !state.Selections.Checklist["make bed"] {
		t.Error("rehearsal saves still store selections")
	}
}

func TestSaveRehearsalCelebratesAfterRealCompletion(t *testing.T) {
	var state model.QuestState
	var log []model.CompletionEntry
	now := time.Date(2026, 10, 13, 7, 5, 0, 0, time.UTC)
	Save(&state, &log, morningInput(now, doneSelections()))

	in := morningInput(now.Add(time.Minute), doneSelections())
	in.Rehearsal = true
	out := Save(&state, &log, in)
	if !out.Celebrate {
		t.Error("override saves celebrate even when completed today")
	}
	if len(log) != 1 {
		t.Errorf("log length = %d, want 1", len(log))
	}
}

func TestSaveAfternoonIgnoresFood(t *testing.T) {
	var state model.QuestState
	var log []model.CompletionEntry
	now := time.Date(2026, 10, 13, 16, 0, 0, 0, time.UTC)
	in := SaveInput{
		Selections: model.Selections{Checklist: map[string]bool{"homework": true}},
		Mode:       model.ModeAfternoon,
		Tasks:      []string{"homework"},
		Menu:       menu(),
		Now:        now,
	}
	out := Save(&state, &log, in)
	if !out.Celebrate || log[0].Mode != model.ModeAfternoon {
		t.Errorf("outcome = %+v, log = %+v", out, log)
	}
}

func TestSaveDoesNotAliasCallerMaps(t *testing.T) {
	var state model.QuestState
	var log []model.CompletionEntry
	sel := doneSelections()
	Save(&state, &log, morningInput(time.Date(2026, 10, 13, 7, 0, 0, 0, time.UTC), sel))

	sel.Checklist["make bed"] = false
	if !state.Selections.Checklist["make bed"] {
		t.Error("stored checklist changed with the caller's map")
	}
}

func TestCompletedToday(t *testing.T) {
	now := time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)
	stamp := now.Add(-time.Hour)
	old := now.Add(-24 * time.Hour)

	tests := []struct {
		name  string
		state model.QuestState
		want  bool
	}{
		{"never", model.QuestState{}, false},
		{"today", model.QuestState{LastDate: "2026-10-13", CompletedAt: &stamp}, true},
		{"stale stamp", model.QuestState{LastDate: "2026-10-13", CompletedAt: &old}, false},
		{"stale last date", model.QuestState{LastDate: "2026-10-12", CompletedAt: &stamp}, false},
	}
	for _, tt := range tests {
		if got := CompletedToday(tt.state, now); got != tt.want {
			t.Errorf("%s: CompletedToday = %v, want %v", tt.name, got, tt.want)
		}
	}
}
