// Package stats derives streaks, finish times and credit totals from a
// participant's history. Everything here is read-only.
package stats

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dukerupert/questboard/internal/ledger"
	"github.com/dukerupert/questboard/internal/model"
)

// Absent is shown for a statistic with no underlying data.
const Absent = "—"

// Stats holds one participant's figures. Nil means "no data", never zero.
// The counts stay plain ints; Display treats zero as no data.
type Stats struct {
	Streak                int  `json:"streak"`
	TotalQuests           int  `json:"total_quests"`
	MorningCount          int  `json:"morning_count"`
	AverageFinish         *int `json:"average_finish"`
	BestFinish            *int `json:"best_finish"`
	OnTimeRate            *int `json:"on_time_rate"`
	AverageBeforeDeadline *int `json:"average_before_deadline"`
	LifetimeCredits       int  `json:"lifetime_credits"`
	RewardsClaimed        int  `json:"rewards_claimed"`
}

// Compute derives Stats from a record. Finish times are minutes since
// midnight in now's location; on-time means finished before the evening
// boundary.
func Compute(rec *model.Record, cfg model.Config, now time.Time) Stats {
	if rec == nil {
		rec = &model.Record{}
	}
	s := Stats{
		Streak:          Streak(rec.CompletionLog, now),
		TotalQuests:     len(rec.CompletionLog),
		LifetimeCredits: ledger.Lifetime(rec.Credits, rec.Redeemed),
		RewardsClaimed:  len(rec.Redeemed),
	}

	var finishes []int
	for _, e := range rec.CompletionLog {
		if e.Mode == model.ModeMorning {
			finishes = append(finishes, minutesOfDay(e.Time.In(now.Location())))
		}
	}
	s.MorningCount = len(finishes)
	if len(finishes) == 0 {
		return s
	}

	deadline := cfg.EveningStart()
	sum, best, onTime, before := 0, finishes[0], 0, 0
	for _, m := range finishes {
		sum += m
		best = min(best, m)
		if m < deadline {
			onTime++
		}
		before += deadline - m
	}
	n := float64(len(finishes))
	avg := roundHalfUp(float64(sum) / n)
	rate := roundHalfUp(float64(onTime) / n * 100)
	avgBefore := roundHalfUp(float64(before) / n)

	s.AverageFinish = &avg
	s.BestFinish = &best
	s.OnTimeRate = &rate
	s.AverageBeforeDeadline = &avgBefore
	return s
}

// Streak counts consecutive days with a completion, walking back from today
// and stopping at the first day without one.
func Streak(log []model.CompletionEntry, now time.Time) int {
	dates := make(map[string]bool, len(log))
	for _, e := range log {
		dates[e.Date] = true
	}
	streak := 0
	y, m, d := now.Date()
	for {
		day := time.Date(y, m, d-streak, 12, 0, 0, 0, now.Location())
		if !dates[model.DateOf(day)] {
			return streak
		}
		streak++
	}
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Display is Stats rendered for people.
type Display struct {
	Streak                string `json:"streak"`
	TotalQuests           string `json:"total_quests"`
	AverageFinish         string `json:"average_finish"`
	BestFinish            string `json:"best_finish"`
	OnTimeRate            string `json:"on_time_rate"`
	AverageBeforeDeadline string `json:"average_before_deadline"`
	LifetimeCredits       string `json:"lifetime_credits"`
	RewardsClaimed        string `json:"rewards_claimed"`
}

// Display renders every figure, with Absent for a zero streak, zero quests,
// zero rewards claimed and any time figure without morning completions.
func (s Stats) Display() Display {
	return Display{
		Streak:                countOrAbsent(s.Streak, FormatStreak),
		TotalQuests:           countOrAbsent(s.TotalQuests, strconv.Itoa),
		AverageFinish:         orAbsent(s.AverageFinish, FormatClock),
		BestFinish:            orAbsent(s.BestFinish, FormatClock),
		OnTimeRate:            orAbsent(s.OnTimeRate, func(v int) string { return fmt.Sprintf("%d%%", v) }),
		AverageBeforeDeadline: orAbsent(s.AverageBeforeDeadline, FormatSpan),
		LifetimeCredits:       fmt.Sprintf("%d", s.LifetimeCredits),
		RewardsClaimed:        countOrAbsent(s.RewardsClaimed, strconv.Itoa),
	}
}

func countOrAbsent(n int, format func(int) string) string {
	if n == 0 {
		return Absent
	}
	return format(n)
}

func orAbsent(v *int, format func(int) string) string {
	if v == nil {
		return Absent
	}
	return format(*v)
}

// FormatStreak renders a streak as "1 day" or "N days".
func FormatStreak(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// FormatClock renders minutes since midnight on a 12-hour clock, e.g. "7:05 AM".
func FormatClock(minutes int) string {
	h, m := minutes/60, minutes%60
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, ampm)
}

// FormatSpan renders a minute count as "Xh Ym" from an hour up, otherwise "Ym".
func FormatSpan(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
