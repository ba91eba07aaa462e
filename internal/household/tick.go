package household

import (
	"context"
	"time"

	"github.com/dukerupert/questboard/internal/model"
	"github.com/dukerupert/questboard/internal/schedule"
)

// Tick is called by the poller. It drops an override left over from an
// earlier day and, when the computed mode moves into afternoon, clears every
// participant's food picks and school-lunch flag.
func (s *State) Tick(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tickLocked(ctx, now) {
		return nil
	}
	return s.commitLocked(ctx)
}

// tickLocked reports whether persisted state changed.
func (s *State) tickLocked(_ context.Context, now time.Time) bool {
	changed := false
	if s.override != nil && s.override.SetOn != model.DateOf(now) {
		s.logger.Info("clearing stale mode override", "mode", s.override.Mode, "set_on", s.override.SetOn)
		s.override = nil
		changed = true
	}

	prev := s.tracker.Last()
	mode, entered := s.tracker.Observe(now, s.cfg)
	if entered {
		for _, name := range s.roster {
			s.records[name].Quest.Selections.ClearFood()
		}
		s.logger.Info("afternoon started, cleared food selections", "participants", len(s.roster))
		changed = true
	}
	if prev != mode {
		s.emit("mode", "changed", map[string]any{
			"computed":  mode,
			"effective": schedule.Effective(mode, s.override),
		})
	}
	return changed
}

// Mode returns the effective mode right now.
func (s *State) Mode() model.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modeLocked(s.now())
}

func (s *State) modeLocked(now time.Time) model.Mode {
	return schedule.Effective(schedule.Compute(now, s.cfg), s.activeOverrideLocked(now))
}

// activeOverrideLocked ignores an override that has not been cleared yet but
// belongs to an earlier day.
func (s *State) activeOverrideLocked(now time.Time) *model.Override {
	if s.override == nil || s.override.SetOn != model.DateOf(now) {
		return nil
	}
	return s.override
}

// Override returns the active override, or nil.
func (s *State) Override() *model.Override {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.activeOverrideLocked(s.now())
	if o == nil {
		return nil
	}
	out := *o
	return &out
}
