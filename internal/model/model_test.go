package model

import (
	"testing"
	"time"
)

func TestParseHM(t *testing.T) {
	tests := []struct {
		in           string
		hour, minute int
		wantErr      bool
	}{
		{"07:20", 7, 20, false},
		{" 19:00 ", 19, 0, false},
		{"0:5", 0, 5, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"1200", 0, 0, true},
		{"ab:cd", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, m, err := ParseHM(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (h != tt.hour || m != tt.minute) {
				t.Errorf("got = %d:%d, want %d:%d", h, m, tt.hour, tt.minute)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if got := FormatHM(cfg.MorningHour, cfg.MorningMinute); got != "07:20" {
		t.Errorf("morning = %q, want 07:20", got)
	}
	if cfg.EveningStart() != 19*60 {
		t.Errorf("evening start = %d, want %d", cfg.EveningStart(), 19*60)
	}
	if cfg.AccessCode != DefaultAccessCode || cfg.CreditsPerGoal != 1 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		if got, err := ParseMode(string(m)); err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("evening"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRecordCloneIsDeep(t *testing.T) {
	done := time.Date(2026, time.October, 12, 8, 0, 0, 0, time.UTC)
	rec := &Record{
		Quest: QuestState{
			Selections: Selections{
				Checklist: map[string]bool{"brush teeth": true},
				Food:      map[FoodCategory][]string{FoodBreakfast: {"Toast"}},
			},
			CompletedAt: &done,
		},
		Credits: 3,
		GoalLog: []GoalEntry{{Name: "Read", Date: "2026-10-12"}},
	}

	c := rec.Clone()
	c.Quest.Selections.Checklist["make bed"] = true
	c.Quest.Selections.Food[FoodBreakfast][0] = "Cereal"
	*c.Quest.CompletedAt = done.Add(time.Hour)
	c.GoalLog[0].Name = "Write"

	if len(rec.Quest.Selections.Checklist) != 1 {
		t.Error("checklist aliased")
	}
	if rec.Quest.Selections.Food[FoodBreakfast][0] != "Toast" {
		t.Error("food aliased")
	}
	if !rec.Quest.CompletedAt.Equal(done) {
		t.Error("completed_at aliased")
	}
	if rec.GoalLog[0].Name != "Read" {
		t.Error("goal log aliased")
	}

	var nilRec *Record
	if nilRec.Clone() == nil {
		t.Error("nil record should clone to an empty one")
	}
}

func TestClearFoodKeepsChecklist(t *testing.T) {
	sel := Selections{
		Checklist:   map[string]bool{"brush teeth": true},
		Food:        map[FoodCategory][]string{FoodSnacks: {"Apple"}},
		SchoolLunch: true,
	}
	sel.ClearFood()
	if len(sel.Food) != 0 || sel.SchoolLunch {
		t.Errorf("food = %v, school lunch = %v", sel.Food, sel.SchoolLunch)
	}
	if !sel.Checklist["brush teeth"] {
		t.Error("checklist should survive")
	}
}

func TestCatalogLookups(t *testing.T) {
	var nilCat *Catalog
	if nilCat.TasksFor(ModeMorning, "Jackson") != nil || nilCat.InStock(FoodBreakfast) != 0 {
		t.Error("nil catalog should be empty")
	}

	cat := NewCatalog()
	cat.Food[FoodBreakfast] = []FoodItem{{Name: "Toast", InStock: true}, {Name: "Waffles"}}
	cat.Goals["Jackson"] = []Goal{{Name: "Read"}, {Name: "Garage", Credits: 4}}
	if got := cat.InStock(FoodBreakfast); got != 1 {
		t.Errorf("in stock = %d, want 1", got)
	}
	g, _ := cat.Goal("Jackson", "Read")
	if g.Award(2) != 2 {
		t.Errorf("default award = %d, want 2", g.Award(2))
	}
	g, _ = cat.Goal("Jackson", "Garage")
	if g.Award(2) != 4 {
		t.Errorf("explicit award = %d, want 4", g.Award(2))
	}

	clone := cat.Clone()
	clone.Food[FoodBreakfast][0].InStock = false
	if cat.InStock(FoodBreakfast) != 1 {
		t.Error("clone aliased the menu")
	}
}
