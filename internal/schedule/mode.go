package schedule

import (
	"time"

	"github.com/dukerupert/questboard/internal/model"
)

// Compute returns the scheduled mode at now. It is a pure function of the
// weekday, the time of day and the configured boundaries.
//
// The weekend runs from Friday evening until Sunday evening; Sunday evening
// already belongs to Monday's morning quest, just as every weekday evening
// rolls into the next morning.
func Compute(now time.Time, cfg model.Config) model.Mode {
	minutes := now.Hour()*60 + now.Minute()
	pastEvening := minutes >= cfg.EveningStart()
	beforeMorning := minutes < cfg.MorningStart()

	day := now.Weekday()
	switch {
	case day == time.Friday && pastEvening,
		day == time.Saturday,
		day == time.Sunday && !pastEvening:
		return model.ModeWeekend
	}

	if (day <= time.Thursday && pastEvening) || (day >= time.Monday && day <= time.Friday && beforeMorning) {
		return model.ModeMorning
	}
	return model.ModeAfternoon
}

// Effective applies an override on top of the computed mode.
func Effective(computed model.Mode, override *model.Override) model.Mode {
	if override != nil && override.Mode != "" {
		return override.Mode
	}
	return computed
}

// Tracker remembers the last computed mode so transitions can be detected.
type Tracker struct {
	prev model.Mode
}

// Observe computes the mode at now and reports whether it just moved into
// afternoon from some other mode. The first observation never reports a
// transition.
func (t *Tracker) Observe(now time.Time, cfg model.Config) (model.Mode, bool) {
	mode := Compute(now, cfg)
	entered := t.prev != "" && t.prev != model.ModeAfternoon && mode == model.ModeAfternoon
	t.prev = mode
	return mode, entered
}

// Last returns the most recently observed mode, or "" before the first observation.
func (t *Tracker) Last() model.Mode {
	return t.prev
}
