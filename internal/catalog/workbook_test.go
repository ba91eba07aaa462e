package catalog

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/dukerupert/questboard/internal/model"
)

var roster = []string{"Jackson", "Natalie"}

// writeRows builds a workbook the way a person editing it by hand would.
func writeRows(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for sheet, rows := range sheets {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for i, row := range rows {
			addr, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(sheet, addr, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestLoadMissingWorkbook(t *testing.T) {
	w := NewWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"), roster)
	cat, err := w.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Tasks) != 0 || len(cat.Food) != 0 {
		t.Errorf("catalog = %+v, want empty", cat)
	}
}

func TestLoadNormalizesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goal_app_data.xlsx")
	writeRows(t, path, map[string][][]any{
		SheetMorningTasks: {
			{"Jackson", "Natalie"},
			{"brush teeth", "feed fish"},
			{" make bed ", ""},
		},
		SheetWeekendTasks: {
			{"Jackson", "Jackson Goal", "Jackson Goal Credits", "Natalie", "Natalie Goal"},
			{"mow lawn", "Read a book", "", "bake", "Ride a bike"},
			{"", "Clean garage", 3, "", ""},
		},
		SheetMenu: {
			{"Breakfast", "Inventory", "Special Breakfast", "Inventory", "Snacks"},
			{"Toast", "Yes", "Pancakes", "no", "Apple"},
			{"Cereal", "", "", "", ""},
		},
		SheetRewards: {
			{"Jackson", "Jackson Cost", "Natalie", "Natalie Cost"},
			{"Movie night", 5, "Sleepover", "ten"},
			{"Ice cream", "2.0", "", ""},
		},
	})

	cat, err := NewWorkbook(path, roster).Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := cat.TasksFor(model.ModeMorning, "Jackson"); len(got) != 2 || got[1] != "make bed" {
		t.Errorf("Jackson morning tasks = %q", got)
	}
	if got := cat.TasksFor(model.ModeMorning, "Natalie"); len(got) != 1 {
		t.Errorf("Natalie morning tasks = %q, want 1", got)
	}
	if got := cat.TasksFor(model.ModeWeekend, "Jackson"); len(got) != 1 || got[0] != "mow lawn" {
		t.Errorf("Jackson weekend tasks = %q, want [mow lawn]", got)
	}
	if got := cat.TasksFor(model.ModeAfternoon, "Jackson"); len(got) != 0 {
		t.Errorf("afternoon tasks = %q, want none", got)
	}

	goals := cat.Goals["Jackson"]
	if len(goals) != 2 {
		t.Fatalf("Jackson goals = %+v, want 2", goals)
	}
	if goals[0].Credits != 0 || goals[1].Credits != 3 {
		t.Errorf("goal credits = %d, %d, want 0, 3", goals[0].Credits, goals[1].Credits)
	}
	if g, ok := cat.Goal("Natalie", "Ride a bike"); !ok || g.Award(1) != 1 {
		t.Errorf("Natalie goal = %+v, %v", g, ok)
	}

	breakfast := cat.Food[model.FoodBreakfast]
	if len(breakfast) != 2 || !breakfast[0].InStock || breakfast[1].InStock {
		t.Errorf("breakfast = %+v, want Toast in stock and Cereal out", breakfast)
	}
	if cat.InStock(model.FoodSpecialBreakfast) != 0 {
		t.Error("Pancakes marked no should be out of stock")
	}
	if snacks := cat.Food[model.FoodSnacks]; len(snacks) != 1 || snacks[0].InStock {
		t.Errorf("snacks without inventory column = %+v, want listed but out of stock", snacks)
	}

	r, ok := cat.Reward("Jackson", "Jackson-1")
	if !ok || r.Name != "Ice cream" || r.Cost != 2 {
		t.Errorf("reward = %+v, %v", r, ok)
	}
	if r, _ := cat.Reward("Natalie", "Natalie-0"); r.Cost != 0 {
		t.Errorf("unreadable cost = %d, want 0", r.Cost)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	w := NewWorkbook(path, roster)

	cat := model.NewCatalog()
	cat.Tasks[model.ModeMorning] = map[string][]string{"Jackson": {"brush teeth", "make bed"}, "Natalie": {"feed fish"}}
	cat.Tasks[model.ModeWeekend] = map[string][]string{"Natalie": {"bake"}}
	cat.Goals["Natalie"] = []model.Goal{{Name: "Ride a bike"}, {Name: "Plant tomatoes", Credits: 2}}
	cat.Food[model.FoodLunchMain] = []model.FoodItem{{Name: "Sandwich", InStock: true}, {Name: "Soup"}}
	cat.Rewards["Jackson"] = []model.Reward{{ID: "Jackson-0", Name: "Movie night", Cost: 5}}

	if err := w.Save(t.Context(), cat); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := w.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if tasks := got.TasksFor(model.ModeMorning, "Jackson"); len(tasks) != 2 {
		t.Errorf("morning tasks = %q, want 2", tasks)
	}
	if tasks := got.TasksFor(model.ModeWeekend, "Natalie"); len(tasks) != 1 || tasks[0] != "bake" {
		t.Errorf("weekend tasks = %q, want [bake]", tasks)
	}
	goals := got.Goals["Natalie"]
	if len(goals) != 2 || goals[0].Credits != 0 || goals[1].Credits != 2 {
		t.Errorf("goals = %+v", goals)
	}
	lunch := got.Food[model.FoodLunchMain]
	if len(lunch) != 2 || !lunch[0].InStock || lunch[1].InStock {
		t.Errorf("lunch = %+v", lunch)
	}
	if r, ok := got.Reward("Jackson", "Jackson-0"); !ok || r.Cost != 5 {
		t.Errorf("reward = %+v, %v", r, ok)
	}
}

func TestSaveKeepsOtherSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	writeRows(t, path, map[string][][]any{
		"notes":           {{"keep me"}},
		SheetMorningTasks: {{"Jackson"}, {"old task"}, {"another old task"}},
	})

	w := NewWorkbook(path, roster)
	cat := model.NewCatalog()
	cat.Tasks[model.ModeMorning] = map[string][]string{"Jackson": {"new task"}}
	if err := w.Save(t.Context(), cat); err != nil {
		t.Fatalf("save: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	v, err := f.GetCellValue("notes", "A1")
	if err != nil {
		t.Fatalf("get cell: %v", err)
	}
	if v != "keep me" {
		t.Errorf("notes!A1 = %q, want %q", v, "keep me")
	}

	got, err := w.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tasks := got.TasksFor(model.ModeMorning, "Jackson"); len(tasks) != 1 || tasks[0] != "new task" {
		t.Errorf("tasks = %q, want [new task]", tasks)
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3", 3, true},
		{"3.0", 3, true},
		{" 12 credits", 12, true},
		{"-2", -2, true},
		{"ten", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLeadingInt(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseLeadingInt(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
