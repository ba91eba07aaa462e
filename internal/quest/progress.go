package quest

import "github.com/dukerupert/questboard/internal/model"

// Progress is a completed/total fraction. Total of zero means nothing to show.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Percent returns the fraction as 0-100, or 0 when there is nothing to track.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

func TaskProgress(tasks []string, checklist map[string]bool) Progress {
	p := Progress{Total: len(tasks)}
	for _, task := range tasks {
		if checklist[task] {
			p.Completed++
		}
	}
	return p
}

// FoodProgress counts food planning steps for the morning quest. The school
// lunch decision is always a finished step; choosing it removes the three
// lunch categories from the count.
func FoodProgress(mode model.Mode, menu *model.Catalog, sel model.Selections) Progress {
	var p Progress
	if mode != model.ModeMorning {
		return p
	}
	for _, cat := range model.FoodCategories {
		if cat == model.FoodLunchMain {
			p.Total++
			p.Completed++
		}
		if sel.SchoolLunch && cat.IsLunch() {
			continue
		}
		if menu.InStock(cat) == 0 {
			continue
		}
		p.Total++
		if len(sel.Food[cat]) > 0 {
			p.Completed++
		}
	}
	return p
}
