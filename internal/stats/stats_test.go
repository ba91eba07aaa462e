package stats

import (
	"testing"
	"time"

	"github.com/dukerupert/questboard/internal/model"
)

var today = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

func entry(date string, hour, minute int, mode model.Mode) model.CompletionEntry {
	d, _ := time.Parse(model.DateLayout, date)
	return model.CompletionEntry{
		Date: date,
		Time: time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC),
		Mode: mode,
	}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name string
		log  []model.CompletionEntry
		want int
	}{
		{"empty", nil, 0},
		{"three consecutive days", []model.CompletionEntry{
			entry("2026-10-13", 7, 0, model.ModeMorning),
			entry("2026-10-14", 7, 0, model.ModeMorning),
			entry("2026-10-15", 7, 0, model.ModeMorning),
		}, 3},
		{"gap yesterday", []model.CompletionEntry{
			entry("2026-10-13", 7, 0, model.ModeMorning),
			entry("2026-10-15", 7, 0, model.ModeMorning),
		}, 1},
		{"nothing today", []model.CompletionEntry{
			entry("2026-10-13", 7, 0, model.ModeMorning),
			entry("2026-10-14", 7, 0, model.ModeMorning),
		}, 0},
		{"several modes on one day count once", []model.CompletionEntry{
			entry("2026-10-14", 7, 0, model.ModeMorning),
			entry("2026-10-15", 7, 0, model.ModeMorning),
			entry("2026-10-15", 16, 0, model.ModeAfternoon),
		}, 2},
		{"out of order log", []model.CompletionEntry{
			entry("2026-10-15", 7, 0, model.ModeMorning),
			entry("2026-10-13", 7, 0, model.ModeMorning),
			entry("2026-10-14", 7, 0, model.ModeMorning),
		}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.log, today); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakAcrossMonthBoundary(t *testing.T) {
	log := []model.CompletionEntry{
		entry("2026-09-30", 7, 0, model.ModeMorning),
		entry("2026-10-01", 7, 0, model.ModeMorning),
	}
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	if got := Streak(log, now); got != 2 {
		t.Errorf("Streak = %d, want 2", got)
	}
}

func TestComputeEmptyIsAbsent(t *testing.T) {
	s := Compute(&model.Record{Credits: 4}, model.DefaultConfig(), today)

	if s.AverageFinish != nil || s.BestFinish != nil || s.OnTimeRate != nil || s.AverageBeforeDeadline != nil {
		t.Errorf("time stats should be absent: %+v", s)
	}
	if s.TotalQuests != 0 || s.Streak != 0 {
		t.Errorf("counts = %d/%d, want 0/0", s.TotalQuests, s.Streak)
	}
	if s.LifetimeCredits != 4 {
		t.Errorf("lifetime = %d, want 4", s.LifetimeCredits)
	}

	d := s.Display()
	if d.AverageFinish != Absent || d.BestFinish != Absent || d.OnTimeRate != Absent || d.AverageBeforeDeadline != Absent {
		t.Errorf("display = %+v", d)
	}
	if d.Streak != Absent || d.TotalQuests != Absent || d.RewardsClaimed != Absent {
		t.Errorf("empty counts = %q/%q/%q, want %q", d.Streak, d.TotalQuests, d.RewardsClaimed, Absent)
	}
	if d.LifetimeCredits != "4" {
		t.Errorf("lifetime = %q, want 4", d.LifetimeCredits)
	}
}

func TestDisplayCounts(t *testing.T) {
	tests := []struct {
		stats   Stats
		streak  string
		total   string
		rewards string
	}{
		{Stats{Streak: 1, TotalQuests: 1, RewardsClaimed: 2}, "1 day", "1", "2"},
		{Stats{Streak: 3, TotalQuests: 12}, "3 days", "12", Absent},
		{Stats{TotalQuests: 5, RewardsClaimed: 1}, Absent, "5", "1"},
	}
	for _, tt := range tests {
		d := tt.stats.Display()
		if d.Streak != tt.streak || d.TotalQuests != tt.total || d.RewardsClaimed != tt.rewards {
			t.Errorf("Display(%+v) = %q/%q/%q, want %q/%q/%q",
				tt.stats, d.Streak, d.TotalQuests, d.RewardsClaimed, tt.streak, tt.total, tt.rewards)
		}
	}
}

func TestComputeOnlyAfternoonIsAbsent(t *testing.T) {
	rec := &model.Record{CompletionLog: []model.CompletionEntry{entry("2026-10-15", 16, 0, model.ModeAfternoon)}}
	s := Compute(rec, model.DefaultConfig(), today)
	if s.TotalQuests != 1 {
		t.Errorf("total = %d, want 1", s.TotalQuests)
	}
	if s.AverageFinish != nil {
		t.Errorf("average finish = %d, want absent", *s.AverageFinish)
	}
}

func TestComputeFinishTimes(t *testing.T) {
	rec := &model.Record{
		Credits: 3,
		Redeemed: []model.Redemption{
			{RewardID: "a", Cost: 5},
			{RewardID: "b", Cost: 2},
		},
		CompletionLog: []model.CompletionEntry{
			entry("2026-10-12", 7, 0, model.ModeMorning),
			entry("2026-10-13", 7, 10, model.ModeMorning),
			entry("2026-10-14", 7, 5, model.ModeMorning),
			entry("2026-10-14", 16, 0, model.ModeAfternoon),
			entry("2026-10-15", 19, 30, model.ModeMorning),
		},
	}
	s := Compute(rec, model.DefaultConfig(), today)

	if s.TotalQuests != 5 || s.MorningCount != 4 {
		t.Errorf("total/morning = %d/%d, want 5/4", s.TotalQuests, s.MorningCount)
	}
	// (420 + 430 + 425 + 1170) / 4 = 611.25
	if *s.AverageFinish != 611 {
		t.Errorf("average = %d, want 611", *s.AverageFinish)
	}
	if *s.BestFinish != 420 {
		t.Errorf("best = %d, want 420", *s.BestFinish)
	}
	// 19:30 is past the 19:00 evening boundary
	if *s.OnTimeRate != 75 {
		t.Errorf("on-time = %d, want 75", *s.OnTimeRate)
	}
	// (720 + 710 + 715 - 30) / 4 = 528.75
	if *s.AverageBeforeDeadline != 529 {
		t.Errorf("avg before = %d, want 529", *s.AverageBeforeDeadline)
	}
	if s.LifetimeCredits != 10 || s.RewardsClaimed != 2 {
		t.Errorf("lifetime/claimed = %d/%d, want 10/2", s.LifetimeCredits, s.RewardsClaimed)
	}
	if s.Streak != 4 {
		t.Errorf("streak = %d, want 4", s.Streak)
	}

	d := s.Display()
	if d.AverageFinish != "10:11 AM" || d.BestFinish != "7:00 AM" || d.OnTimeRate != "75%" || d.AverageBeforeDeadline != "8h 49m" {
		t.Errorf("display = %+v", d)
	}
}

func TestOnTimeUsesEveningBoundary(t *testing.T) {
	// Finishing at 08:00 is after the 07:20 morning boundary yet still counts
	// as on time, because the comparison is against the evening boundary.
	rec := &model.Record{CompletionLog: []model.CompletionEntry{entry("2026-10-15", 8, 0, model.ModeMorning)}}
	s := Compute(rec, model.DefaultConfig(), today)
	if *s.OnTimeRate != 100 {
		t.Errorf("on-time = %d, want 100", *s.OnTimeRate)
	}
}

func TestAverageRoundsHalfUp(t *testing.T) {
	rec := &model.Record{CompletionLog: []model.CompletionEntry{
		entry("2026-10-14", 7, 0, model.ModeMorning),
		entry("2026-10-15", 7, 1, model.ModeMorning),
	}}
	cfg := model.Config{EveningHour: 7, EveningMinute: 0}
	s := Compute(rec, cfg, today)
	if *s.AverageFinish != 421 {
		t.Errorf("average = %d, want 421", *s.AverageFinish)
	}
	// (0 + -1) / 2 = -0.5 rounds to 0
	if *s.AverageBeforeDeadline != 0 {
		t.Errorf("avg before = %d, want 0", *s.AverageBeforeDeadline)
	}
	if *s.OnTimeRate != 0 {
		t.Errorf("on-time = %d, want 0", *s.OnTimeRate)
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{0: "12:00 AM", 425: "7:05 AM", 720: "12:00 PM", 1139: "6:59 PM"}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatSpan(t *testing.T) {
	tests := map[int]string{45: "45m", 60: "1h 0m", 125: "2h 5m", -10: "-10m"}
	for in, want := range tests {
		if got := FormatSpan(in); got != want {
			t.Errorf("FormatSpan(%d) = %q, want %q", in, got, want)
		}
	}
}
