package model

import "fmt"

type Mode string

const (
	ModeMorning   Mode = "morning"
	ModeAfternoon Mode = "afternoon"
	ModeWeekend   Mode = "weekend"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeMorning, ModeAfternoon, ModeWeekend}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMorning, ModeAfternoon, ModeWeekend:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Override forces the effective mode. SetOn is the calendar date (YYYY-MM-DD)
// the override was chosen; an override from an earlier day is stale.
type Override struct {
	Mode  Mode   `json:"mode"`
	SetOn string `json:"set_on"`
}
