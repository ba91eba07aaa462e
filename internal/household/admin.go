package household

import (
	"context"
	"fmt"

	"github.com/dukerupert/questboard/internal/model"
)

// SetOverride forces a mode for the rest of the day. A nil mode clears it.
func (s *State) SetOverride(ctx context.Context, mode *model.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == nil {
		s.override = nil
	} else {
		s.override = &model.Override{Mode: *mode, SetOn: model.DateOf(s.now())}
	}
	s.logger.Info("mode override set", "override", s.override)

	err := s.commitLocked(ctx)
	s.emit("mode", "changed", map[string]any{"effective": s.modeLocked(s.now())})
	return err
}

// SetSchedule changes the morning and evening boundaries ("HH:MM") and the
// default goal award, then re-evaluates the mode at once.
func (s *State) SetSchedule(ctx context.Context, morning, evening string, creditsPerGoal int) error {
	mh, mm, err := model.ParseHM(morning)
	if err != nil {
		return fmt.Errorf("%w: morning: %v", ErrInvalidSchedule, err)
	}
	eh, em, err := model.ParseHM(evening)
	if err != nil {
		return fmt.Errorf("%w: evening: %v", ErrInvalidSchedule, err)
	}
	if mh*60+mm >= eh*60+em {
		return fmt.Errorf("%w: morning %s must be before evening %s", ErrInvalidSchedule, morning, evening)
	}
	if creditsPerGoal < 1 {
		return fmt.Errorf("%w: credits per goal must be at least 1", ErrInvalidSchedule)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.MorningHour, s.cfg.MorningMinute = mh, mm
	s.cfg.EveningHour, s.cfg.EveningMinute = eh, em
	s.cfg.CreditsPerGoal = creditsPerGoal
	s.logger.Info("schedule updated", "morning", morning, "evening", evening, "credits_per_goal", creditsPerGoal)

	s.tickLocked(ctx, s.now())
	err = s.commitLocked(ctx)
	s.emit("config", "updated", nil)
	return err
}

// ChangeAccessCode replaces the administrative code after checking the
// current one and that next was typed the same way twice.
func (s *State) ChangeAccessCode(ctx context.Context, current, next, confirm string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current != s.cfg.AccessCode {
		return ErrWrongAccessCode
	}
	if next == "" {
		return ErrEmptyAccessCode
	}
	if next != confirm {
		return ErrAccessCodeMismatch
	}
	s.cfg.AccessCode = next
	s.logger.Info("access code changed")

	err := s.commitLocked(ctx)
	s.emit("config", "updated", nil)
	return err
}

// MasterReset wipes every participant's credits, goal log, selections and
// completion stamp. Completion history and redemptions are kept.
func (s *State) MasterReset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range s.roster {
		rec := s.records[name]
		rec.Credits = 0
		rec.GoalLog = nil
		rec.Quest = model.QuestState{}
	}
	s.logger.Warn("master reset", "participants", len(s.roster))

	err := s.commitLocked(ctx)
	s.emit("state", "reset", nil)
	return err
}

// ReloadCatalog re-reads the spreadsheet. On failure the previous catalog stays.
func (s *State) ReloadCatalog(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadCatalogLocked(ctx); err != nil {
		return err
	}
	s.emit("catalog", "reloaded", nil)
	return nil
}

func (s *State) reloadCatalogLocked(ctx context.Context) error {
	if s.source == nil {
		return ErrNoCatalogSource
	}
	cat, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if cat == nil {
		cat = model.NewCatalog()
	}
	s.catalog = cat
	return nil
}

// UpdateCatalog applies an administrative edit to a copy of the catalog and
// writes it back. The in-memory catalog only changes once the write succeeds.
func (s *State) UpdateCatalog(ctx context.Context, mutate func(*model.Catalog)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.source == nil {
		return ErrNoCatalogSource
	}
	next := s.catalog.Clone()
	mutate(next)
	if err := s.source.Save(ctx, next); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	s.catalog = next
	s.emit("catalog", "updated", nil)
	return nil
}
