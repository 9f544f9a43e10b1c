package app

import (
	"context"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/wellness"
	"lifeos/internal"
	"lifeos/internal/errors"
	"lifeos/internal/smokefree"
	"lifeos/ports"
)

// TrackerService manages the smoke-free profile, day statuses and the urge log
type TrackerService struct {
	repo   ports.SmokeFreeRepository
	urges  ports.UrgeRepository
	clock  core.Clock
	today  func() core.Day
	logger *internal.Logger
}

func NewTrackerService(repo ports.SmokeFreeRepository, urges ports.UrgeRepository, clock core.Clock, today func() core.Day, logger *internal.Logger) *TrackerService {
	return &TrackerService{
		repo:   repo,
		urges:  urges,
		clock:  clock,
		today:  today,
		logger: logger.With("tracker"),
	}
}

// Profile returns the stored profile with habit defaults applied
func (s *TrackerService) Profile(ctx context.Context) (wellness.SmokeFreeProfile, error) {
	profile, err := s.repo.GetProfile(ctx)
	if core.IsNotFoundError(err) {
		return wellness.SmokeFreeProfile{}.WithDefaults(), nil
	}
	if err != nil {
		return wellness.SmokeFreeProfile{}, errors.DatabaseError("failed to load smoke-free profile", err)
	}
	return profile.WithDefaults(), nil
}

// SetQuitDate saves the profile and marks every day from the quit date
// through today as clean.
func (s *TrackerService) SetQuitDate(ctx context.Context, profile wellness.SmokeFreeProfile) (wellness.SmokeFreeProfile, error) {
	today := s.today()
	if profile.QuitDate.IsZero() {
		return profile, errors.Wrapf(core.ErrInvalidDay, "quit date %q", profile.QuitDate)
	}
	if profile.QuitDate.After(today) {
		return profile, errors.Wrapf(core.ErrFutureDay, "quit date %s is after %s", profile.QuitDate, today)
	}

	profile = profile.WithDefaults()
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return profile, errors.DatabaseError("failed to save smoke-free profile", err)
	}
	filled := smokefree.FillClean(profile.QuitDate, today)
	if err := s.repo.SetDayStatuses(ctx, filled); err != nil {
		return profile, errors.DatabaseError("failed to initialize day statuses", err)
	}

	s.logger.Info("quit date set to %s, %d days marked clean", profile.QuitDate, len(filled))
	return profile, nil
}

// SetDayStatus records how a single day went
func (s *TrackerService) SetDayStatus(ctx context.Context, day core.Day, status wellness.SmokeStatus) error {
	if day.IsZero() {
		return errors.Wrapf(core.ErrInvalidDay, "day %q", day)
	}
	if !status.Valid() {
		return errors.Wrapf(core.ErrInvalidStatus, "status %q", status)
	}
	if today := s.today(); day.After(today) {
		return errors.Wrapf(core.ErrFutureDay, "%s is after %s", day, today)
	}
	if err := s.repo.SetDayStatus(ctx, day, status); err != nil {
		return errors.DatabaseError("failed to save day status", err)
	}
	return nil
}

// Statuses returns the recorded statuses in [from, to]
func (s *TrackerService) Statuses(ctx context.Context, from, to core.Day) (wellness.DayStatuses, error) {
	statuses, err := s.repo.ListDayStatuses(ctx, from, to)
	if err != nil {
		return nil, errors.DatabaseError("failed to list day statuses", err)
	}
	return statuses, nil
}

// Stats computes the tracker statistics as of today
func (s *TrackerService) Stats(ctx context.Context) (wellness.SmokeFreeStats, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return wellness.SmokeFreeStats{}, err
	}
	if profile.QuitDate.IsZero() {
		return smokefree.Compute(profile, nil, s.today()), nil
	}

	today := s.today()
	statuses, err := s.Statuses(ctx, profile.QuitDate, today)
	if err != nil {
		return wellness.SmokeFreeStats{}, err
	}
	return smokefree.Compute(profile, statuses, today), nil
}

// UrgeInput carries the fields of a newly logged urge
type UrgeInput struct {
	Intensity   wellness.UrgeIntensity `json:"intensity"`
	Trigger     string                 `json:"trigger"`
	Replacement string                 `json:"replacement"`
	Notes       string                 `json:"notes"`
}

// UrgeLog is a page of urges with the counts of the whole range
type UrgeLog struct {
	Urges []wellness.UrgeEntry `json:"urges"`
	Today int                  `json:"today"`
	Total int                  `json:"total"`
	ByDay map[core.Day]int     `json:"byDay"`
}

// LogUrge records a craving now. A zero intensity means the default.
func (s *TrackerService) LogUrge(ctx context.Context, in UrgeInput) (*wellness.UrgeEntry, error) {
	urge := wellness.UrgeEntry{
		ID:          core.UrgeID(core.NewID()),
		At:          s.clock().UTC().Truncate(time.Millisecond),
		Day:         s.today(),
		Intensity:   in.Intensity,
		Trigger:     in.Trigger,
		Replacement: in.Replacement,
		Notes:       in.Notes,
	}
	if urge.Intensity == 0 {
		urge.Intensity = wellness.DefaultUrgeIntensity
	}
	urge.Normalize()
	if err := urge.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid urge")
	}

	if err := s.urges.SaveUrge(ctx, urge); err != nil {
		return nil, errors.DatabaseError("failed to save urge", err)
	}
	s.logger.Debug("logged %s urge on %s", urge.Intensity.Label(), urge.Day)
	return &urge, nil
}

// ListUrges returns the urges of [from, to], newest first, with per-day
// counts. A positive limit caps the returned urges but not the counts.
func (s *TrackerService) ListUrges(ctx context.Context, from, to core.Day, limit int) (*UrgeLog, error) {
	urges, err := s.urges.ListUrges(ctx, from, to)
	if err != nil {
		return nil, errors.DatabaseError("failed to list urges", err)
	}
	wellness.SortUrges(urges)

	counts := wellness.UrgeCounts(urges)
	page := &UrgeLog{
		Urges: urges,
		Today: counts[s.today()],
		Total: len(urges),
		ByDay: counts,
	}
	if limit > 0 && len(page.Urges) > limit {
		page.Urges = page.Urges[:limit]
	}
	return page, nil
}

// DeleteUrge removes one urge
func (s *TrackerService) DeleteUrge(ctx context.Context, id core.UrgeID) error {
	if err := s.urges.DeleteUrge(ctx, id); err != nil {
		return errors.Wrapf(err, "failed to delete urge %s", id)
	}
	return nil
}
