package app

import (
	"context"
	"strings"

	"lifeos/domain/core"
	"lifeos/domain/wellness"
	"lifeos/internal"
	"lifeos/internal/errors"
	"lifeos/ports"
)

// DailyService records energy check-ins and self-expression
type DailyService struct {
	checkins    ports.CheckInRepository
	expressions ports.ExpressionRepository
	today       func() core.Day
	logger      *internal.Logger
}

func NewDailyService(checkins ports.CheckInRepository, expressions ports.ExpressionRepository, today func() core.Day, logger *internal.Logger) *DailyService {
	return &DailyService{
		checkins:    checkins,
		expressions: expressions,
		today:       today,
		logger:      logger.With("daily"),
	}
}

// RecordCheckIn stores the check-in for its day, replacing an earlier one.
// An empty date means today.
func (s *DailyService) RecordCheckIn(ctx context.Context, c wellness.EnergyCheckIn) (wellness.EnergyCheckIn, error) {
	if c.Date == "" {
		c.Date = s.today()
	}
	c.Factors = normalizeTags(c.Factors)
	if err := c.Validate(); err != nil {
		return c, errors.Wrap(err, "invalid check-in")
	}
	if err := s.notFuture(c.Date); err != nil {
		return c, err
	}
	if err := s.checkins.UpsertCheckIn(ctx, c); err != nil {
		return c, errors.DatabaseError("failed to save check-in", err)
	}
	s.logger.Debug("check-in recorded for %s: %s/%s", c.Date, c.Energy, c.NervousSystem)
	return c, nil
}

func (s *DailyService) GetCheckIn(ctx context.Context, day core.Day) (*wellness.EnergyCheckIn, error) {
	c, err := s.checkins.GetCheckIn(ctx, day)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get check-in for %s", day)
	}
	return c, nil
}

func (s *DailyService) ListCheckIns(ctx context.Context, from, to core.Day) ([]wellness.EnergyCheckIn, error) {
	checkins, err := s.checkins.ListCheckIns(ctx, from, to)
	if err != nil {
		return nil, errors.DatabaseError("failed to list check-ins", err)
	}
	return checkins, nil
}

func (s *DailyService) DeleteCheckIn(ctx context.Context, day core.Day) error {
	if err := s.checkins.DeleteCheckIn(ctx, day); err != nil {
		return errors.Wrapf(err, "failed to delete check-in for %s", day)
	}
	return nil
}

// RecordExpression stores the self-expression record for its day
func (s *DailyService) RecordExpression(ctx context.Context, e wellness.SelfExpression) (wellness.SelfExpression, error) {
	if e.Date == "" {
		e.Date = s.today()
	}
	e.Types = normalizeTags(e.Types)
	if err := e.Validate(); err != nil {
		return e, errors.Wrap(err, "invalid self-expression record")
	}
	if err := s.notFuture(e.Date); err != nil {
		return e, err
	}
	if err := s.expressions.UpsertExpression(ctx, e); err != nil {
		return e, errors.DatabaseError("failed to save self-expression record", err)
	}
	return e, nil
}

func (s *DailyService) ListExpressions(ctx context.Context, from, to core.Day) ([]wellness.SelfExpression, error) {
	expressions, err := s.expressions.ListExpressions(ctx, from, to)
	if err != nil {
		return nil, errors.DatabaseError("failed to list self-expression records", err)
	}
	return expressions, nil
}

func (s *DailyService) notFuture(day core.Day) error {
	if today := s.today(); day.After(today) {
		return errors.Wrapf(core.ErrFutureDay, "%s is after %s", day, today)
	}
	return nil
}

// normalizeTags trims, lowercases and dedupes tags, keeping first-seen order
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
