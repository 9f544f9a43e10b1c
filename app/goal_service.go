package app

import (
	"context"
	"fmt"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/internal"
	"lifeos/internal/errors"
	"lifeos/ports"
)

// DefaultGoalPriority is used when a goal is created without one
const DefaultGoalPriority = 3

// GoalService manages goals and their milestones
type GoalService struct {
	repo   ports.GoalRepository
	clock  core.Clock
	today  func() core.Day
	logger *internal.Logger
}

func NewGoalService(repo ports.GoalRepository, clock core.Clock, today func() core.Day, logger *internal.Logger) *GoalService {
	return &GoalService{
		repo:   repo,
		clock:  clock,
		today:  today,
		logger: logger.With("goals"),
	}
}

// Create fills defaults, assigns IDs and stores a new goal
func (s *GoalService) Create(ctx context.Context, g goal.Goal) (*goal.Goal, error) {
	now := s.clock().UTC()
	g.ID = core.GoalID(core.NewID())
	if g.Status == "" {
		g.Status = goal.StatusActive
	}
	if g.Timeframe == "" {
		g.Timeframe = goal.ShortTerm
	}
	if g.Category == "" {
		g.Category = goal.CategoryOther
	}
	if g.Priority == 0 {
		g.Priority = DefaultGoalPriority
	}
	if g.StartDate == "" {
		g.StartDate = s.today()
	}
	g.Milestones = fillMilestones(g.Milestones, s.clock().UTC())
	g.Progress = progressOf(g)
	g.CreatedAt = now
	g.UpdatedAt = now

	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid goal")
	}
	if err := s.repo.CreateGoal(ctx, &g); err != nil {
		return nil, errors.DatabaseError("failed to create goal", err)
	}
	s.logger.Debug("created goal %s %q", g.ID, g.Title)
	return &g, nil
}

// Update replaces the editable fields of a goal, keeping its identity
func (s *GoalService) Update(ctx context.Context, id core.GoalID, g goal.Goal) (*goal.Goal, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	g.ID = existing.ID
	g.CreatedAt = existing.CreatedAt
	g.Milestones = fillMilestones(g.Milestones, s.clock().UTC())
	g.Progress = progressOf(g)
	return s.save(ctx, &g)
}

// SetStatus moves a goal through its lifecycle
func (s *GoalService) SetStatus(ctx context.Context, id core.GoalID, status goal.Status) (*goal.Goal, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Status = status
	return s.save(ctx, g)
}

// ToggleMilestone flips one milestone and recomputes progress
func (s *GoalService) ToggleMilestone(ctx context.Context, id core.GoalID, milestoneID string) (*goal.Goal, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range g.Milestones {
		m := &g.Milestones[i]
		if m.ID != milestoneID {
			continue
		}
		found = true
		m.Completed = !m.Completed
		if m.Completed {
			at := s.clock().UTC()
			m.CompletedAt = &at
		} else {
			m.CompletedAt = nil
		}
	}
	if !found {
		return nil, errors.NotFound(fmt.Sprintf("milestone %s of goal %s", milestoneID, id))
	}

	g.Progress = progressOf(*g)
	return s.save(ctx, g)
}

func (s *GoalService) save(ctx context.Context, g *goal.Goal) (*goal.Goal, error) {
	g.UpdatedAt = s.clock().UTC()
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid goal")
	}
	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return nil, errors.Wrapf(err, "failed to update goal %s", g.ID)
	}
	return g, nil
}

func (s *GoalService) Get(ctx context.Context, id core.GoalID) (*goal.Goal, error) {
	g, err := s.repo.GetGoal(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get goal %s", id)
	}
	return g, nil
}

// List returns goals with status, or every goal when status is empty
func (s *GoalService) List(ctx context.Context, status goal.Status) ([]*goal.Goal, error) {
	goals, err := s.repo.ListGoals(ctx, status)
	if err != nil {
		return nil, errors.DatabaseError("failed to list goals", err)
	}
	return goals, nil
}

func (s *GoalService) Delete(ctx context.Context, id core.GoalID) error {
	if err := s.repo.DeleteGoal(ctx, id); err != nil {
		return errors.Wrapf(err, "failed to delete goal %s", id)
	}
	return nil
}

// progressOf derives progress from milestones when there are any and
// otherwise clamps the manual value to 0-100.
func progressOf(g goal.Goal) int {
	if len(g.Milestones) > 0 {
		return goal.MilestoneProgress(g.Milestones)
	}
	switch {
	case g.Progress < 0:
		return 0
	case g.Progress > 100:
		return 100
	}
	return g.Progress
}

// fillMilestones assigns missing ids and stamps newly completed milestones
func fillMilestones(milestones []goal.Milestone, now time.Time) []goal.Milestone {
	out := make([]goal.Milestone, len(milestones))
	for i, m := range milestones {
		if m.ID == "" {
			m.ID = core.NewID().String()
		}
		if m.Completed && m.CompletedAt == nil {
			at := now
			m.CompletedAt = &at
		}
		out[i] = m
	}
	return out
}
