package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"

	"github.com/dukerupert/questboard/internal/model"
)

// StateStore persists the runtime snapshot across the participant tables.
// Save replaces everything in one transaction.
type StateStore struct {
	db *sql.DB
}

func NewStateStore(db *sql.DB) *StateStore {
	return &StateStore{db: db}
}

// Load returns nil, nil when nothing has been saved yet.
func (s *StateStore) Load(ctx context.Context) (*model.Snapshot, error) {
	settings, err := getAllSettings(ctx, s.db)
	if err != nil {
		return nil, err
	}
	snap := &model.Snapshot{Records: make(map[string]*model.Record)}
	if err := s.loadParticipants(ctx, snap); err != nil {
		return nil, err
	}
	if len(settings) == 0 && len(snap.Roster) == 0 {
		return nil, nil
	}

	snap.Config, err = configFromSettings(settings)
	if err != nil {
		return nil, err
	}
	if mode := settings[keyOverrideMode]; mode != "" {
		m, err := model.ParseMode(mode)
		if err != nil {
			return nil, fmt.Errorf("load override: %w", err)
		}
		snap.Override = &model.Override{Mode: m, SetOn: settings[keyOverrideSetOn]}
	}

	for _, load := range []func(context.Context, map[string]*model.Record) error{
		s.loadChecklists,
		s.loadFood,
		s.loadCompletions,
		s.loadGoals,
		s.loadRedemptions,
	} {
		if err := load(ctx, snap.Records); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

func configFromSettings(settings map[string]string) (model.Config, error) {
	cfg := model.DefaultConfig()
	if v, ok := settings[keyMorning]; ok {
		h, m, err := model.ParseHM(v)
		if err != nil {
			return cfg, fmt.Errorf("load morning boundary: %w", err)
		}
		cfg.MorningHour, cfg.MorningMinute = h, m
	}
	if v, ok := settings[keyEvening]; ok {
		h, m, err := model.ParseHM(v)
		if err != nil {
			return cfg, fmt.Errorf("load evening boundary: %w", err)
		}
		cfg.EveningHour, cfg.EveningMinute = h, m
	}
	if v, ok := settings[keyCreditsPerGoal]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("load credits per goal: %w", err)
		}
		cfg.CreditsPerGoal = n
	}
	if v, ok := settings[KeyAccessCode]; ok && v != "" {
		cfg.AccessCode = v
	}
	return cfg, nil
}

func (s *StateStore) loadParticipants(ctx context.Context, snap *model.Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, credits, last_date, school_lunch, completed_at FROM participants ORDER BY position`)
	if err != nil {
		return fmt.Errorf("load participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, lastDate string
		var credits int
		var schoolLunch bool
		var completedAt sql.NullString
		if err := rows.Scan(&name, &credits, &lastDate, &schoolLunch, &completedAt); err != nil {
			return fmt.Errorf("scan participant: %w", err)
		}
		rec := &model.Record{
			Credits: credits,
			Quest: model.QuestState{
				LastDate: lastDate,
				Selections: model.Selections{
					Checklist:   make(map[string]bool),
					Food:        make(map[model.FoodCategory][]string),
					SchoolLunch: schoolLunch,
				},
			},
		}
		if completedAt.Valid {
			t, err := parseTime(completedAt.String)
			if err != nil {
				return err
			}
			rec.Quest.CompletedAt = &t
		}
		snap.Roster = append(snap.Roster, name)
		snap.Records[name] = rec
	}
	return rows.Err()
}

func (s *StateStore) loadChecklists(ctx context.Context, records map[string]*model.Record) error {
	rows, err := s.db.QueryContext(ctx, `SELECT participant, task, done FROM checklist`)
	if err != nil {
		return fmt.Errorf("load checklist: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, task string
		var done bool
		if err := rows.Scan(&name, &task, &done); err != nil {
			return fmt.Errorf("scan checklist: %w", err)
		}
		if rec := records[name]; rec != nil {
			rec.Quest.Selections.Checklist[task] = done
		}
	}
	return rows.Err()
}

func (s *StateStore) loadFood(ctx context.Context, records map[string]*model.Record) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant, category, item FROM food_selections ORDER BY participant, category, position`)
	if err != nil {
		return fmt.Errorf("load food selections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, category, item string
		if err := rows.Scan(&name, &category, &item); err != nil {
			return fmt.Errorf("scan food selection: %w", err)
		}
		if rec := records[name]; rec != nil {
			cat := model.FoodCategory(category)
			rec.Quest.Selections.Food[cat] = append(rec.Quest.Selections.Food[cat], item)
		}
	}
	return rows.Err()
}

func (s *StateStore) loadCompletions(ctx context.Context, records map[string]*model.Record) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant, date, completed_at, mode FROM completion_log ORDER BY id`)
	if err != nil {
		return fmt.Errorf("load completion log: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, date, at, mode string
		if err := rows.Scan(&name, &date, &at, &mode); err != nil {
			return fmt.Errorf("scan completion: %w", err)
		}
		t, err := parseTime(at)
		if err != nil {
			return err
		}
		if rec := records[name]; rec != nil {
			rec.CompletionLog = append(rec.CompletionLog, model.CompletionEntry{Date: date, Time: t, Mode: model.Mode(mode)})
		}
	}
	return rows.Err()
}

func (s *StateStore) loadGoals(ctx context.Context, records map[string]*model.Record) error {
	rows, err := s.db.QueryContext(ctx, `SELECT participant, name, date FROM goal_log ORDER BY id`)
	if err != nil {
		return fmt.Errorf("load goal log: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var participant, name, date string
		if err := rows.Scan(&participant, &name, &date); err != nil {
			return fmt.Errorf("scan goal: %w", err)
		}
		if rec := records[participant]; rec != nil {
			rec.GoalLog = append(rec.GoalLog, model.GoalEntry{Name: name, Date: date})
		}
	}
	return rows.Err()
}

func (s *StateStore) loadRedemptions(ctx context.Context, records map[string]*model.Record) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant, reward_id, reward_name, cost, redeemed_at FROM redemptions ORDER BY id`)
	if err != nil {
		return fmt.Errorf("load redemptions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r model.Redemption
		var name, at string
		if err := rows.Scan(&name, &r.RewardID, &r.RewardName, &r.Cost, &at); err != nil {
			return fmt.Errorf("scan redemption: %w", err)
		}
		if r.Time, err = parseTime(at); err != nil {
			return err
		}
		if rec := records[name]; rec != nil {
			rec.Redeemed = append(rec.Redeemed, r)
		}
	}
	return rows.Err()
}

// Save replaces the stored state with snap.
func (s *StateStore) Save(ctx context.Context, snap *model.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"redemptions", "goal_log", "completion_log", "food_selections", "checklist", "participants"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := saveSettings(ctx, tx, snap); err != nil {
		return err
	}
	for i, name := range snapshotOrder(snap) {
		if err := saveRecord(ctx, tx, i, name, snap.Records[name]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func saveSettings(ctx context.Context, tx *sql.Tx, snap *model.Snapshot) error {
	cfg := snap.Config
	overrideMode, overrideSetOn := "", ""
	if snap.Override != nil {
		overrideMode, overrideSetOn = string(snap.Override.Mode), snap.Override.SetOn
	}
	for _, kv := range [][2]string{
		{keyMorning, model.FormatHM(cfg.MorningHour, cfg.MorningMinute)},
		{keyEvening, model.FormatHM(cfg.EveningHour, cfg.EveningMinute)},
		{keyCreditsPerGoal, strconv.Itoa(cfg.CreditsPerGoal)},
		{KeyAccessCode, cfg.AccessCode},
		{keyOverrideMode, overrideMode},
		{keyOverrideSetOn, overrideSetOn},
	} {
		if err := setSetting(ctx, tx, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// snapshotOrder is the roster followed by any other recorded names, sorted.
func snapshotOrder(snap *model.Snapshot) []string {
	seen := make(map[string]bool, len(snap.Records))
	var order []string
	for _, name := range snap.Roster {
		if _, ok := snap.Records[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range snap.Records {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func saveRecord(ctx context.Context, tx *sql.Tx, position int, name string, rec *model.Record) error {
	if rec == nil {
		rec = &model.Record{}
	}
	var completedAt *string
	if rec.Quest.CompletedAt != nil {
		v := formatTime(*rec.Quest.CompletedAt)
		completedAt = &v
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO participants (name, position, credits, last_date, school_lunch, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, position, rec.Credits, rec.Quest.LastDate, rec.Quest.Selections.SchoolLunch, completedAt,
	)
	if err != nil {
		return fmt.Errorf("insert participant %s: %w", name, err)
	}

	for task, done := range rec.Quest.Selections.Checklist {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO checklist (participant, task, done) VALUES (?, ?, ?)`, name, task, done); err != nil {
			return fmt.Errorf("insert checklist: %w", err)
		}
	}
	for cat, items := range rec.Quest.Selections.Food {
		for i, item := range items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO food_selections (participant, category, position, item) VALUES (?, ?, ?, ?)`,
				name, string(cat), i, item); err != nil {
				return fmt.Errorf("insert food selection: %w", err)
			}
		}
	}
	for _, e := range rec.CompletionLog {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO completion_log (participant, date, completed_at, mode) VALUES (?, ?, ?, ?)`,
			name, e.Date, formatTime(e.Time), string(e.Mode)); err != nil {
			return fmt.Errorf("insert completion: %w", err)
		}
	}
	for _, g := range rec.GoalLog {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO goal_log (participant, name, date) VALUES (?, ?, ?)`, name, g.Name, g.Date); err != nil {
			return fmt.Errorf("insert goal: %w", err)
		}
	}
	for _, r := range rec.Redeemed {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO redemptions (participant, reward_id, reward_name, cost, redeemed_at) VALUES (?, ?, ?, ?, ?)`,
			name, r.RewardID, r.RewardName, r.Cost, formatTime(r.Time)); err != nil {
			return fmt.Errorf("insert redemption: %w", err)
		}
	}
	return nil
}
