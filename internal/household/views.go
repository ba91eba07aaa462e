package household

import (
	"fmt"
	"time"

	"github.com/dukerupert/questboard/internal/ledger"
	"github.com/dukerupert/questboard/internal/model"
	"github.com/dukerupert/questboard/internal/quest"
	"github.com/dukerupert/questboard/internal/schedule"
	"github.com/dukerupert/questboard/internal/stats"
)

type ParticipantSummary struct {
	Name           string         `json:"name"`
	Credits        int            `json:"credits"`
	CompletedToday bool           `json:"completed_today"`
	Started        bool           `json:"started"`
	Tasks          quest.Progress `json:"tasks"`
	Food           quest.Progress `json:"food"`
	GoalsToday     []string       `json:"goals_today"`
}

type Dashboard struct {
	Mode         model.Mode           `json:"mode"`
	Computed     model.Mode           `json:"computed"`
	Override     *model.Override      `json:"override"`
	Participants []ParticipantSummary `json:"participants"`
}

// Dashboard summarizes every participant for the current effective mode.
func (s *State) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	computed := schedule.Compute(now, s.cfg)
	override := s.activeOverrideLocked(now)
	mode := schedule.Effective(computed, override)
	today := model.DateOf(now)

	d := Dashboard{Mode: mode, Computed: computed, Participants: make([]ParticipantSummary, 0, len(s.roster))}
	if override != nil {
		o := *override
		d.Override = &o
	}
	for _, name := range s.roster {
		rec := s.records[name]
		sel := rec.Quest.Selections
		tasks := s.catalog.TasksFor(mode, name)

		var goals []string
		for _, g := range ledger.CompletedGoals(s.catalog.Goals[name], rec.GoalLog, today) {
			goals = append(goals, g.Name)
		}
		d.Participants = append(d.Participants, ParticipantSummary{
			Name:           name,
			Credits:        rec.Credits,
			CompletedToday: quest.CompletedToday(rec.Quest, now),
			Started:        !sel.IsEmpty(),
			Tasks:          quest.TaskProgress(tasks, sel.Checklist),
			Food:           quest.FoodProgress(mode, s.catalog, sel),
			GoalsToday:     goals,
		})
	}
	return d
}

// QuestView is everything a participant's quest screen needs.
type QuestView struct {
	Name           string                                  `json:"name"`
	Mode           model.Mode                              `json:"mode"`
	Rehearsal      bool                                    `json:"rehearsal"`
	Tasks          []string                                `json:"tasks"`
	Menu           map[model.FoodCategory][]model.FoodItem `json:"menu,omitempty"`
	Limits         map[model.FoodCategory]int              `json:"limits,omitempty"`
	Selections     model.Selections                        `json:"selections"`
	CompletedToday bool                                    `json:"completed_today"`
	CompletedAt    *time.Time                              `json:"completed_at"`
	TaskProgress   quest.Progress                          `json:"task_progress"`
	FoodProgress   quest.Progress                          `json:"food_progress"`
}

func (s *State) Quest(name string) (QuestView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.record(name)
	if err != nil {
		return QuestView{}, err
	}
	now := s.now()
	override := s.activeOverrideLocked(now)
	mode := schedule.Effective(schedule.Compute(now, s.cfg), override)
	sel := rec.Quest.Selections.Clone()
	tasks := append([]string(nil), s.catalog.TasksFor(mode, name)...)

	v := QuestView{
		Name:           name,
		Mode:           mode,
		Rehearsal:      override != nil,
		Tasks:          tasks,
		Selections:     sel,
		CompletedToday: quest.CompletedToday(rec.Quest, now),
		TaskProgress:   quest.TaskProgress(tasks, sel.Checklist),
		FoodProgress:   quest.FoodProgress(mode, s.catalog, sel),
	}
	if rec.Quest.CompletedAt != nil {
		t := *rec.Quest.CompletedAt
		v.CompletedAt = &t
	}
	if mode == model.ModeMorning {
		v.Menu = make(map[model.FoodCategory][]model.FoodItem, len(model.FoodCategories))
		v.Limits = make(map[model.FoodCategory]int, len(model.FoodCategories))
		for _, cat := range model.FoodCategories {
			v.Menu[cat] = append([]model.FoodItem(nil), s.catalog.Food[cat]...)
			v.Limits[cat] = cat.PickLimit()
		}
	}
	return v, nil
}

type RewardView struct {
	model.Reward
	Affordable bool `json:"affordable"`
}

type StoreView struct {
	Name     string             `json:"name"`
	Credits  int                `json:"credits"`
	Rewards  []RewardView       `json:"rewards"`
	Redeemed []model.Redemption `json:"redeemed"`
}

func (s *State) Store(name string) (StoreView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.record(name)
	if err != nil {
		return StoreView{}, err
	}
	v := StoreView{
		Name:     name,
		Credits:  rec.Credits,
		Rewards:  make([]RewardView, 0, len(s.catalog.Rewards[name])),
		Redeemed: append([]model.Redemption(nil), rec.Redeemed...),
	}
	for _, r := range s.catalog.Rewards[name] {
		v.Rewards = append(v.Rewards, RewardView{Reward: r, Affordable: r.Cost <= rec.Credits})
	}
	return v, nil
}

type GoalView struct {
	Name      string `json:"name"`
	Award     int    `json:"award"`
	DoneToday bool   `json:"done_today"`
}

type GoalBoardEntry struct {
	Name    string     `json:"name"`
	Credits int        `json:"credits"`
	Goals   []GoalView `json:"goals"`
}

// GoalBoard lists every participant's weekend goals with today's approvals.
func (s *State) GoalBoard() []GoalBoardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := model.DateOf(s.now())
	out := make([]GoalBoardEntry, 0, len(s.roster))
	for _, name := range s.roster {
		rec := s.records[name]
		done := ledger.GoalsCompletedOn(rec.GoalLog, today)
		entry := GoalBoardEntry{Name: name, Credits: rec.Credits, Goals: []GoalView{}}
		for _, g := range s.catalog.Goals[name] {
			entry.Goals = append(entry.Goals, GoalView{
				Name:      g.Name,
				Award:     g.Award(s.cfg.CreditsPerGoal),
				DoneToday: done[g.Name],
			})
		}
		out = append(out, entry)
	}
	return out
}

type ParticipantStats struct {
	Name    string        `json:"name"`
	Stats   stats.Stats   `json:"stats"`
	Display stats.Display `json:"display"`
}

func (s *State) Stats(name string) (ParticipantStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.record(name)
	if err != nil {
		return ParticipantStats{}, err
	}
	st := stats.Compute(rec, s.cfg, s.now())
	return ParticipantStats{Name: name, Stats: st, Display: st.Display()}, nil
}

func (s *State) AllStats() []ParticipantStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]ParticipantStats, 0, len(s.roster))
	for _, name := range s.roster {
		st := stats.Compute(s.records[name], s.cfg, now)
		out = append(out, ParticipantStats{Name: name, Stats: st, Display: st.Display()})
	}
	return out
}

// ScheduleView is the runtime config without the access code.
type ScheduleView struct {
	Morning        string `json:"morning"`
	Evening        string `json:"evening"`
	CreditsPerGoal int    `json:"credits_per_goal"`
}

func (s *State) Config() model.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *State) Schedule() ScheduleView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ScheduleView{
		Morning:        model.FormatHM(s.cfg.MorningHour, s.cfg.MorningMinute),
		Evening:        model.FormatHM(s.cfg.EveningHour, s.cfg.EveningMinute),
		CreditsPerGoal: s.cfg.CreditsPerGoal,
	}
}

// Catalog returns a copy of the current catalog.
func (s *State) Catalog() *model.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Clone()
}

func (s *State) Record(name string) (*model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.record(name)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec.Clone(), nil
}
