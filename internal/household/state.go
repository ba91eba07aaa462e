// Package household owns the runtime state: every participant's quest,
// ledger and history, the schedule config and the spreadsheet catalog. All
// reads and mutations go through State; each one runs to completion under a
// single lock, then the new snapshot is persisted and broadcast.
package household

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/questboard/internal/model"
	"github.com/dukerupert/questboard/internal/schedule"
)

var (
	ErrUnknownParticipant  = errors.New("unknown participant")
	ErrUnknownReward       = errors.New("unknown reward")
	ErrUnknownGoal         = errors.New("unknown goal")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrWrongAccessCode     = errors.New("wrong access code")
	ErrEmptyAccessCode     = errors.New("access code cannot be empty")
	ErrAccessCodeMismatch  = errors.New("access codes do not match")
	ErrInvalidSchedule     = errors.New("invalid schedule")
	ErrNoCatalogSource     = errors.New("no catalog source configured")
)

// PersistError reports that a mutation was applied in memory but could not be
// written to durable storage. The in-memory change stands.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string { return "persist state: " + e.Err.Error() }
func (e *PersistError) Unwrap() error { return e.Err }

// Persister stores and loads the runtime snapshot.
type Persister interface {
	Load(ctx context.Context) (*model.Snapshot, error)
	Save(ctx context.Context, snap *model.Snapshot) error
}

// CatalogSource supplies the spreadsheet-owned task lists, menu, rewards and goals.
type CatalogSource interface {
	Load(ctx context.Context) (*model.Catalog, error)
	Save(ctx context.Context, cat *model.Catalog) error
}

// Notifier is told about every state change, e.g. to fan it out to websocket clients.
type Notifier func(entity, action string, extra map[string]any)

// Clock supplies the current local time.
type Clock func() time.Time

type Options struct {
	Persister Persister
	Catalog   CatalogSource
	Notify    Notifier
	Clock     Clock
	Logger    *slog.Logger
}

type State struct {
	mu       sync.Mutex
	roster   []string
	records  map[string]*model.Record
	cfg      model.Config
	override *model.Override
	catalog  *model.Catalog
	tracker  schedule.Tracker

	persist Persister
	source  CatalogSource
	notify  Notifier
	now     Clock
	logger  *slog.Logger
}

// New creates a State for a fixed roster with default config and empty history.
func New(roster []string, opts Options) *State {
	s := &State{
		roster:  append([]string(nil), roster...),
		records: make(map[string]*model.Record, len(roster)),
		cfg:     model.DefaultConfig(),
		catalog: model.NewCatalog(),
		persist: opts.Persister,
		source:  opts.Catalog,
		notify:  opts.Notify,
		now:     opts.Clock,
		logger:  opts.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, name := range s.roster {
		s.records[name] = &model.Record{}
	}
	return s
}

// Open loads the saved snapshot and the catalog, then takes the first mode
// reading. A missing catalog is logged and leaves an empty one in place.
func (s *State) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persist != nil {
		snap, err := s.persist.Load(ctx)
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}
		if snap != nil {
			s.applySnapshotLocked(snap)
		}
	}

	if err := s.reloadCatalogLocked(ctx); err != nil && !errors.Is(err, ErrNoCatalogSource) {
		s.logger.Warn("catalog unavailable, continuing with an empty one", "error", err)
	}

	s.tickLocked(ctx, s.now())
	if err := s.commitLocked(ctx); err != nil {
		s.logger.Warn("initial save failed", "error", err)
	}
	return nil
}

// Restore replaces all runtime state with snap, keeping the configured roster.
func (s *State) Restore(ctx context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return errors.New("restore: empty snapshot")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for name := range s.records {
		s.records[name] = &model.Record{}
	}
	s.applySnapshotLocked(snap)
	s.tickLocked(ctx, s.now())
	err := s.commitLocked(ctx)
	s.emit("state", "restored", nil)
	return err
}

func (s *State) applySnapshotLocked(snap *model.Snapshot) {
	snap = snap.Clone()
	for _, name := range s.roster {
		if rec, ok := snap.Records[name]; ok && rec != nil {
			s.records[name] = rec
		}
	}
	s.cfg = snap.Config
	if s.cfg.MorningStart() >= s.cfg.EveningStart() || s.cfg.CreditsPerGoal < 1 {
		s.logger.Warn("saved schedule is invalid, using defaults",
			"morning", s.cfg.MorningStart(), "evening", s.cfg.EveningStart(), "credits_per_goal", s.cfg.CreditsPerGoal)
		code := s.cfg.AccessCode
		s.cfg = model.DefaultConfig()
		s.cfg.AccessCode = code
	}
	if s.cfg.AccessCode == "" {
		s.cfg.AccessCode = model.DefaultAccessCode
	}
	s.override = snap.Override
}

// Snapshot returns a deep copy of the persisted part of the state.
func (s *State) Snapshot() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() *model.Snapshot {
	snap := &model.Snapshot{
		Roster:  append([]string(nil), s.roster...),
		Records: make(map[string]*model.Record, len(s.records)),
		Config:  s.cfg,
	}
	for name, rec := range s.records {
		snap.Records[name] = rec.Clone()
	}
	if s.override != nil {
		o := *s.override
		snap.Override = &o
	}
	return snap
}

// commitLocked writes the snapshot. A failure is logged and returned as a
// *PersistError; nothing is rolled back.
func (s *State) commitLocked(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.Save(ctx, s.snapshotLocked()); err != nil {
		s.logger.Error("failed to persist state", "error", err)
		return &PersistError{Err: err}
	}
	return nil
}

func (s *State) emit(entity, action string, extra map[string]any) {
	if s.notify != nil {
		s.notify(entity, action, extra)
	}
}

func (s *State) record(name string) (*model.Record, error) {
	rec, ok := s.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParticipant, name)
	}
	return rec, nil
}

// Roster returns the participants in display order.
func (s *State) Roster() []string {
	return append([]string(nil), s.roster...)
}

// CheckAccessCode is the administrative gate: a plain equality check.
func (s *State) CheckAccessCode(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return code == s.cfg.AccessCode
}
