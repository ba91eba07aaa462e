package model

import "time"

// DateLayout is the calendar-date format used for every stored date.
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDay reports whether t falls on the calendar date of ref, read in ref's location.
func SameDay(t, ref time.Time) bool {
	return DateOf(t.In(ref.Location())) == DateOf(ref)
}

type FoodCategory string

const (
	FoodBreakfast        FoodCategory = "breakfast"
	FoodSpecialBreakfast FoodCategory = "special_breakfast"
	FoodSnacks           FoodCategory = "snacks"
	FoodLunchMain        FoodCategory = "lunch_main"
	FoodLunchHealthy     FoodCategory = "lunch_sides_healthy"
	FoodLunchTreat       FoodCategory = "lunch_sides_unhealthy"
)

// FoodCategories lists every category in menu order.
var FoodCategories = []FoodCategory{
	FoodBreakfast,
	FoodSpecialBreakfast,
	FoodSnacks,
	FoodLunchMain,
	FoodLunchHealthy,
	FoodLunchTreat,
}

// IsLunch reports whether school lunch exempts the category.
func (c FoodCategory) IsLunch() bool {
	return c == FoodLunchMain || c == FoodLunchHealthy || c == FoodLunchTreat
}

// PickLimit is the most items a participant may choose in the category.
func (c FoodCategory) PickLimit() int {
	switch c {
	case FoodBreakfast, FoodLunchHealthy:
		return 3
	case FoodSnacks:
		return 2
	default:
		return 1
	}
}

// Selections is what a participant has ticked for the current quest.
type Selections struct {
	Checklist   map[string]bool           `json:"checklist"`
	Food        map[FoodCategory][]string `json:"food"`
	SchoolLunch bool                      `json:"school_lunch"`
}

// Clone returns a deep copy so callers cannot alias stored maps.
func (s Selections) Clone() Selections {
	out := Selections{
		Checklist:   make(map[string]bool, len(s.Checklist)),
		Food:        make(map[FoodCategory][]string, len(s.Food)),
		SchoolLunch: s.SchoolLunch,
	}
	for k, v := range s.Checklist {
		out.Checklist[k] = v
	}
	for k, v := range s.Food {
		out.Food[k] = append([]string(nil), v...)
	}
	return out
}

// IsEmpty reports whether nothing has been chosen at all.
func (s Selections) IsEmpty() bool {
	return len(s.Checklist) == 0 && len(s.Food) == 0 && !s.SchoolLunch
}

// QuestState is a participant's record for the current day.
type QuestState struct {
	LastDate    string     `json:"last_date"`
	Selections  Selections `json:"selections"`
	CompletedAt *time.Time `json:"completed_at"`
}

type CompletionEntry struct {
	Date string    `json:"date"`
	Time time.Time `json:"time"`
	Mode Mode      `json:"mode"`
}

type GoalEntry struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

type Redemption struct {
	RewardID   string    `json:"reward_id"`
	RewardName string    `json:"reward_name"`
	Cost       int       `json:"cost"`
	Time       time.Time `json:"time"`
}

// Record is everything owned by one participant.
type Record struct {
	Quest         QuestState        `json:"quest"`
	Credits       int               `json:"credits"`
	Redeemed      []Redemption      `json:"redeemed"`
	GoalLog       []GoalEntry       `json:"goal_log"`
	CompletionLog []CompletionEntry `json:"completion_log"`
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return &Record{}
	}
	out := &Record{
		Quest: QuestState{
			LastDate:   r.Quest.LastDate,
			Selections: r.Quest.Selections.Clone(),
		},
		Credits:       r.Credits,
		Redeemed:      append([]Redemption(nil), r.Redeemed...),
		GoalLog:       append([]GoalEntry(nil), r.GoalLog...),
		CompletionLog: append([]CompletionEntry(nil), r.CompletionLog...),
	}
	if r.Quest.CompletedAt != nil {
		t := *r.Quest.CompletedAt
		out.Quest.CompletedAt = &t
	}
	return out
}

// ClearFood drops every food pick and the school-lunch flag, leaving the checklist.
func (s *Selections) ClearFood() {
	s.Food = make(map[FoodCategory][]string)
	s.SchoolLunch = false
}
