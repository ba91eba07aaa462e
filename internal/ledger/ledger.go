// Package ledger moves credits: goals earn them, rewards spend them.
package ledger

import (
	"time"

	"github.com/dukerupert/questboard/internal/model"
)

// Redeem spends reward.Cost credits and records the redemption. It refuses,
// changing nothing, when the balance cannot cover the cost.
func Redeem(rec *model.Record, reward model.Reward, now time.Time) bool {
	if reward.Cost < 0 || rec.Credits < reward.Cost {
		return false
	}
	rec.Credits -= reward.Cost
	rec.Redeemed = append(rec.Redeemed, model.Redemption{
		RewardID:   reward.ID,
		RewardName: reward.Name,
		Cost:       reward.Cost,
		Time:       now,
	})
	return true
}

// ApproveGoal awards credits for a goal and logs it under today's date. A goal
// can be approved again on later days.
func ApproveGoal(rec *model.Record, name string, award int, now time.Time) model.GoalEntry {
	if award > 0 {
		rec.Credits += award
	}
	entry := model.GoalEntry{Name: name, Date: model.DateOf(now)}
	rec.GoalLog = append(rec.GoalLog, entry)
	return entry
}

// Adjust applies an administrative credit change. The balance never drops below zero.
func Adjust(rec *model.Record, delta int) int {
	rec.Credits = max(0, rec.Credits+delta)
	return rec.Credits
}

// Lifetime is every credit ever earned: what is left plus what was spent.
func Lifetime(credits int, redeemed []model.Redemption) int {
	total := credits
	for _, r := range redeemed {
		total += r.Cost
	}
	return total
}

// GoalsCompletedOn returns the names of goals approved on date.
func GoalsCompletedOn(log []model.GoalEntry, date string) map[string]bool {
	done := make(map[string]bool)
	for _, e := range log {
		if e.Date == date {
			done[e.Name] = true
		}
	}
	return done
}

// CompletedGoals filters a participant's catalog goals down to those approved on date.
func CompletedGoals(goals []model.Goal, log []model.GoalEntry, date string) []model.Goal {
	done := GoalsCompletedOn(log, date)
	var out []model.Goal
	for _, g := range goals {
		if done[g.Name] {
			out = append(out, g)
		}
	}
	return out
}
