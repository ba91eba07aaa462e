package household

import (
	"context"
	"fmt"

	"github.com/dukerupert/questboard/internal/ledger"
	"github.com/dukerupert/questboard/internal/model"
	"github.com/dukerupert/questboard/internal/quest"
)

// SaveSelections stores a participant's picks for the active quest and runs
// the completion check. Under an override the quest can be celebrated but no
// completion is recorded.
func (s *State) SaveSelections(ctx context.Context, name string, sel model.Selections) (quest.Outcome, error) {
	if err := quest.ValidateSelections(sel); err != nil {
		return quest.Outcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.record(name)
	if err != nil {
		return quest.Outcome{}, err
	}
	now := s.now()
	override := s.activeOverrideLocked(now)
	mode := s.modeLocked(now)

	out := quest.Save(&rec.Quest, &rec.CompletionLog, quest.SaveInput{
		Selections: sel,
		Mode:       mode,
		Rehearsal:  override != nil,
		Tasks:      s.catalog.TasksFor(mode, name),
		Menu:       s.catalog,
		Now:        now,
	})
	if out.Entry != nil {
		s.logger.Info("quest completed", "participant", name, "mode", mode)
	}

	err = s.commitLocked(ctx)
	s.emit("quest", "saved", map[string]any{"participant": name, "complete": out.Complete})
	if out.Entry != nil {
		s.emit("quest", "completed", map[string]any{"participant": name, "mode": mode})
	}
	return out, err
}

// Redeem spends credits on a reward from the participant's own catalog.
func (s *State) Redeem(ctx context.Context, name, rewardID string) (model.Redemption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.record(name)
	if err != nil {
		return model.Redemption{}, err
	}
	reward, ok := s.catalog.Reward(name, rewardID)
	if !ok {
		return model.Redemption{}, fmt.Errorf("%w: %q", ErrUnknownReward, rewardID)
	}
	if !ledger.Redeem(rec, reward, s.now()) {
		return model.Redemption{}, fmt.Errorf("%w: %s costs %d, balance %d",
			ErrInsufficientCredits, reward.Name, reward.Cost, rec.Credits)
	}
	redemption := rec.Redeemed[len(rec.Redeemed)-1]
	s.logger.Info("reward redeemed", "participant", name, "reward", reward.Name, "cost", reward.Cost)

	err = s.commitLocked(ctx)
	s.emit("reward", "redeemed", map[string]any{"participant": name, "reward_id": reward.ID, "credits": rec.Credits})
	return redemption, err
}

// ApproveGoal awards a goal's credits. The same goal may be approved again on
// a later day; every approval is logged.
func (s *State) ApproveGoal(ctx context.Context, name, goalName string) (model.GoalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.record(name)
	if err != nil {
		return model.GoalEntry{}, err
	}
	goal, ok := s.catalog.Goal(name, goalName)
	if !ok {
		return model.GoalEntry{}, fmt.Errorf("%w: %q", ErrUnknownGoal, goalName)
	}
	award := goal.Award(s.cfg.CreditsPerGoal)
	entry := ledger.ApproveGoal(rec, goal.Name, award, s.now())
	s.logger.Info("goal approved", "participant", name, "goal", goal.Name, "award", award)

	err = s.commitLocked(ctx)
	s.emit("goal", "approved", map[string]any{"participant": name, "goal": goal.Name, "credits": rec.Credits})
	return entry, err
}

// AdjustCredits applies an administrative credit change and returns the new
// balance, which never goes below zero.
func (s *State) AdjustCredits(ctx context.Context, name string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.record(name)
	if err != nil {
		return 0, err
	}
	balance := ledger.Adjust(rec, delta)
	s.logger.Info("credits adjusted", "participant", name, "delta", delta, "balance", balance)

	err = s.commitLocked(ctx)
	s.emit("credits", "adjusted", map[string]any{"participant": name, "credits": balance})
	return balance, err
}
