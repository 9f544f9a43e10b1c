package app

import (
	"context"

	"lifeos/domain/core"
	"lifeos/domain/insight"
	"lifeos/domain/wellness"
	"lifeos/internal"
	"lifeos/internal/errors"
	"lifeos/internal/patterns"
	"lifeos/internal/trends"
	"lifeos/ports"

	"golang.org/x/sync/errgroup"
)

// DefaultHistoryDays is how far back the insight input is loaded
const DefaultHistoryDays = 365

// InsightService loads tracked data and runs the pattern engine over it
type InsightService struct {
	checkins    ports.CheckInRepository
	smokefree   ports.SmokeFreeRepository
	expressions ports.ExpressionRepository
	engine      *patterns.Engine
	historyDays int
	logger      *internal.Logger
}

func NewInsightService(
	checkins ports.CheckInRepository,
	smokefree ports.SmokeFreeRepository,
	expressions ports.ExpressionRepository,
	engine *patterns.Engine,
	historyDays int,
	logger *internal.Logger,
) *InsightService {
	if historyDays <= 0 {
		historyDays = DefaultHistoryDays
	}
	return &InsightService{
		checkins:    checkins,
		smokefree:   smokefree,
		expressions: expressions,
		engine:      engine,
		historyDays: historyDays,
		logger:      logger.With("insights"),
	}
}

// Today is the day every insight window ends at
func (s *InsightService) Today() core.Day {
	return s.engine.Today()
}

// LoadInput reads the history ending at today from all repositories concurrently
func (s *InsightService) LoadInput(ctx context.Context, today core.Day) (patterns.Input, error) {
	from := today.AddDays(-(s.historyDays - 1))

	var in patterns.Input
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		checkins, err := s.checkins.ListCheckIns(gctx, from, today)
		if err != nil {
			return errors.Wrap(err, "failed to load check-ins")
		}
		in.CheckIns = checkins
		return nil
	})

	g.Go(func() error {
		statuses, err := s.smokefree.ListDayStatuses(gctx, from, today)
		if err != nil {
			return errors.Wrap(err, "failed to load day statuses")
		}
		in.DayStatuses = statuses
		return nil
	})

	g.Go(func() error {
		profile, err := s.smokefree.GetProfile(gctx)
		if core.IsNotFoundError(err) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to load smoke-free profile")
		}
		in.QuitDate = profile.QuitDate
		return nil
	})

	g.Go(func() error {
		expressions, err := s.expressions.ListExpressions(gctx, from, today)
		if err != nil {
			return errors.Wrap(err, "failed to load self-expression records")
		}
		in.Expressions = expressions
		return nil
	})

	if err := g.Wait(); err != nil {
		return patterns.Input{}, err
	}
	if in.DayStatuses == nil {
		in.DayStatuses = wellness.DayStatuses{}
	}

	s.logger.Debug("loaded %d check-ins, %d statuses, %d expressions from %s",
		len(in.CheckIns), len(in.DayStatuses), len(in.Expressions), from)
	return in, nil
}

// WeeklySummary returns the priority-sorted insights and weekly stats as of today
func (s *InsightService) WeeklySummary(ctx context.Context) (insight.WeeklySummary, error) {
	return s.SummaryAsOf(ctx, s.Today())
}

// SummaryAsOf returns the weekly summary as of an explicit day
func (s *InsightService) SummaryAsOf(ctx context.Context, today core.Day) (insight.WeeklySummary, error) {
	in, err := s.LoadInput(ctx, today)
	if err != nil {
		return insight.WeeklySummary{}, err
	}
	return s.engine.SummaryAsOf(in, today), nil
}

// Dashboard returns the three insights to show first
func (s *InsightService) Dashboard(ctx context.Context) ([]insight.Insight, error) {
	in, err := s.LoadInput(ctx, s.Today())
	if err != nil {
		return nil, err
	}
	return s.engine.Dashboard(in), nil
}

// Trends returns the 30-day energy trend report
func (s *InsightService) Trends(ctx context.Context) (trends.Report, error) {
	today := s.Today()
	in, err := s.LoadInput(ctx, today)
	if err != nil {
		return trends.Report{}, err
	}
	return trends.Analyze(in.CheckIns, in.DayStatuses, today, trends.DefaultDays), nil
}
