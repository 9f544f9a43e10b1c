package app

import (
	"context"
	"fmt"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/domain/journal"
	"lifeos/domain/snapshot"
	"lifeos/internal"
	"lifeos/internal/errors"
	"lifeos/ports"
)

// Bounds of a full export. Days are stored as YYYY-MM-DD text.
const (
	firstDay core.Day = "1900-01-01"
	lastDay  core.Day = "9999-12-31"
)

// TransferService moves every tracked record in and out of a snapshot
type TransferService struct {
	checkins    ports.CheckInRepository
	smokefree   ports.SmokeFreeRepository
	expressions ports.ExpressionRepository
	journal     ports.JournalRepository
	goals       ports.GoalRepository
	urges       ports.UrgeRepository
	clock       core.Clock
	logger      *internal.Logger
}

func NewTransferService(
	checkins ports.CheckInRepository,
	smokefree ports.SmokeFreeRepository,
	expressions ports.ExpressionRepository,
	journal ports.JournalRepository,
	goals ports.GoalRepository,
	urges ports.UrgeRepository,
	clock core.Clock,
	logger *internal.Logger,
) *TransferService {
	return &TransferService{
		checkins:    checkins,
		smokefree:   smokefree,
		expressions: expressions,
		journal:     journal,
		goals:       goals,
		urges:       urges,
		clock:       clock,
		logger:      logger.With("transfer"),
	}
}

// Export loads everything into a snapshot stamped with the current time
func (s *TransferService) Export(ctx context.Context) (*snapshot.Snapshot, error) {
	snap := snapshot.New(s.clock().UTC())

	profile, err := s.smokefree.GetProfile(ctx)
	switch {
	case err == nil:
		snap.Profile = profile
	case !core.IsNotFoundError(err):
		return nil, errors.DatabaseError("failed to load smoke-free profile", err)
	}

	if snap.CheckIns, err = s.checkins.ListCheckIns(ctx, firstDay, lastDay); err != nil {
		return nil, errors.DatabaseError("failed to load check-ins", err)
	}
	if snap.DayStatuses, err = s.smokefree.ListDayStatuses(ctx, firstDay, lastDay); err != nil {
		return nil, errors.DatabaseError("failed to load day statuses", err)
	}
	if snap.Expressions, err = s.expressions.ListExpressions(ctx, firstDay, lastDay); err != nil {
		return nil, errors.DatabaseError("failed to load self-expression records", err)
	}
	if snap.Journal, err = s.journal.ListEntries(ctx, journal.Filter{}); err != nil {
		return nil, errors.DatabaseError("failed to load journal", err)
	}
	if snap.Goals, err = s.goals.ListGoals(ctx, ""); err != nil {
		return nil, errors.DatabaseError("failed to load goals", err)
	}
	if snap.Urges, err = s.urges.ListUrges(ctx, "", ""); err != nil {
		return nil, errors.DatabaseError("failed to load urges", err)
	}

	s.logger.Info("exported %s", snap.Counts())
	return snap, nil
}

// Import validates snap and merges it into storage. Records keyed by day
// replace what is stored for that day; journal entries, goals and urges are
// matched by id and created when unknown.
func (s *TransferService) Import(ctx context.Context, snap *snapshot.Snapshot) (snapshot.Counts, error) {
	if snap == nil {
		return snapshot.Counts{}, errors.ValidationError("snapshot is empty")
	}
	if err := snap.Validate(); err != nil {
		return snapshot.Counts{}, errors.Wrap(err, "invalid snapshot")
	}

	if snap.Profile != nil {
		if err := s.smokefree.SaveProfile(ctx, snap.Profile.WithDefaults()); err != nil {
			return snapshot.Counts{}, errors.DatabaseError("failed to import smoke-free profile", err)
		}
	}
	for _, c := range snap.CheckIns {
		c.Factors = normalizeTags(c.Factors)
		if err := s.checkins.UpsertCheckIn(ctx, c); err != nil {
			return snapshot.Counts{}, errors.DatabaseError(fmt.Sprintf("failed to import check-in %s", c.Date), err)
		}
	}
	if len(snap.DayStatuses) > 0 {
		if err := s.smokefree.SetDayStatuses(ctx, snap.DayStatuses); err != nil {
			return snapshot.Counts{}, errors.DatabaseError("failed to import day statuses", err)
		}
	}
	for _, e := range snap.Expressions {
		e.Types = normalizeTags(e.Types)
		if err := s.expressions.UpsertExpression(ctx, e); err != nil {
			return snapshot.Counts{}, errors.DatabaseError(fmt.Sprintf("failed to import self-expression %s", e.Date), err)
		}
	}

	now := s.clock().UTC()
	for _, e := range snap.Journal {
		if err := s.importEntry(ctx, e, now); err != nil {
			return snapshot.Counts{}, err
		}
	}
	for _, g := range snap.Goals {
		if err := s.importGoal(ctx, g, now); err != nil {
			return snapshot.Counts{}, err
		}
	}

	for _, u := range snap.Urges {
		u.Normalize()
		if u.ID == "" {
			u.ID = core.UrgeID(core.NewID())
		}
		if err := s.urges.SaveUrge(ctx, u); err != nil {
			return snapshot.Counts{}, errors.DatabaseError(fmt.Sprintf("failed to import urge %s", u.ID), err)
		}
	}

	counts := snap.Counts()
	s.logger.Info("imported %s", counts)
	return counts, nil
}

func (s *TransferService) importEntry(ctx context.Context, e *journal.Entry, now time.Time) error {
	e.Tags = normalizeTags(e.Tags)
	if e.ID != "" {
		_, err := s.journal.GetEntry(ctx, e.ID)
		if err == nil {
			e.UpdatedAt = now
			if err := s.journal.UpdateEntry(ctx, e); err != nil {
				return errors.DatabaseError("failed to import journal entry", err)
			}
			return nil
		}
		if !core.IsNotFoundError(err) {
			return errors.DatabaseError("failed to look up journal entry", err)
		}
	} else {
		e.ID = core.JournalEntryID(core.NewID())
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}
	if err := s.journal.CreateEntry(ctx, e); err != nil {
		return errors.DatabaseError("failed to import journal entry", err)
	}
	return nil
}

func (s *TransferService) importGoal(ctx context.Context, g *goal.Goal, now time.Time) error {
	g.Milestones = fillMilestones(g.Milestones, now)
	g.Progress = progressOf(*g)

	exists := false
	if g.ID != "" {
		_, err := s.goals.GetGoal(ctx, g.ID)
		switch {
		case err == nil:
			exists = true
		case !core.IsNotFoundError(err):
			return errors.DatabaseError("failed to look up goal", err)
		}
	} else {
		g.ID = core.GoalID(core.NewID())
	}

	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	if exists {
		if err := s.goals.UpdateGoal(ctx, g); err != nil {
			return errors.DatabaseError("failed to import goal", err)
		}
		return nil
	}
	if err := s.goals.CreateGoal(ctx, g); err != nil {
		return errors.DatabaseError("failed to import goal", err)
	}
	return nil
}
