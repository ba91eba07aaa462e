package model

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultAccessCode = "1234"

// Config holds the administrator-editable schedule and ledger settings.
type Config struct {
	MorningHour    int    `json:"morning_hour"`
	MorningMinute  int    `json:"morning_minute"`
	EveningHour    int    `json:"evening_hour"`
	EveningMinute  int    `json:"evening_minute"`
	CreditsPerGoal int    `json:"credits_per_goal"`
	AccessCode     string `json:"access_code"`
}

func DefaultConfig() Config {
	return Config{
		MorningHour:    7,
		MorningMinute:  20,
		EveningHour:    19,
		EveningMinute:  0,
		CreditsPerGoal: 1,
		AccessCode:     DefaultAccessCode,
	}
}

// MorningStart returns the morning boundary as minutes since midnight.
func (c Config) MorningStart() int {
	return c.MorningHour*60 + c.MorningMinute
}

// EveningStart returns the evening boundary as minutes since midnight.
func (c Config) EveningStart() int {
	return c.EveningHour*60 + c.EveningMinute
}

// FormatHM renders hour and minute as "HH:MM".
func FormatHM(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseHM parses "HH:MM" in 24-hour form.
func ParseHM(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("time %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("time %q: invalid hour", s)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q: invalid minute", s)
	}
	return hour, minute, nil
}
