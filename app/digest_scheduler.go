package app

import (
	"context"
	"sync"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/insight"
	"lifeos/internal"
	"lifeos/internal/errors"
	"lifeos/ports"

	"github.com/robfig/cron/v3"
)

// DefaultDigestSchedule runs the digest on Sunday evenings
const DefaultDigestSchedule = "0 20 * * 0"

// WeeklySummarizer produces the summary a digest stores
type WeeklySummarizer interface {
	Today() core.Day
	SummaryAsOf(ctx context.Context, today core.Day) (insight.WeeklySummary, error)
}

// DigestScheduler stores a weekly summary on a cron schedule
type DigestScheduler struct {
	summarizer WeeklySummarizer
	repo       ports.DigestRepository
	schedule   string
	clock      core.Clock
	location   *time.Location
	logger     *internal.Logger
	events     ports.EventBroadcaster

	mu   sync.Mutex
	cron *cron.Cron
}

func NewDigestScheduler(
	summarizer WeeklySummarizer,
	repo ports.DigestRepository,
	schedule string,
	clock core.Clock,
	location *time.Location,
	logger *internal.Logger,
) *DigestScheduler {
	if schedule == "" {
		schedule = DefaultDigestSchedule
	}
	if clock == nil {
		clock = core.SystemClock
	}
	if location == nil {
		location = time.Local
	}
	return &DigestScheduler{
		summarizer: summarizer,
		repo:       repo,
		schedule:   schedule,
		clock:      clock,
		location:   location,
		logger:     logger.With("digest"),
	}
}

// SetBroadcaster announces newly stored digests to live clients
func (d *DigestScheduler) SetBroadcaster(events ports.EventBroadcaster) {
	d.events = events
}

// Start registers the job and runs the scheduler until ctx is done
func (d *DigestScheduler) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(d.location))
	if _, err := c.AddFunc(d.schedule, func() {
		if _, _, err := d.RunOnce(ctx); err != nil {
			d.logger.Error("weekly digest failed: %v", err)
		}
	}); err != nil {
		return errors.Wrapf(errors.ConfigInvalid("invalid digest schedule"), "%q: %v", d.schedule, err)
	}

	d.mu.Lock()
	d.cron = c
	d.mu.Unlock()

	c.Start()
	d.logger.Info("scheduled weekly digest %q", d.schedule)

	go func() {
		<-ctx.Done()
		d.Stop()
	}()
	return nil
}

// Stop halts the scheduler and waits briefly for a running job
func (d *DigestScheduler) Stop() {
	d.mu.Lock()
	c := d.cron
	d.cron = nil
	d.mu.Unlock()
	if c == nil {
		return
	}

	select {
	case <-c.Stop().Done():
	case <-time.After(5 * time.Second):
		d.logger.Warn("timed out waiting for running digest")
	}
	d.logger.Info("digest scheduler stopped")
}

// RunOnce builds and stores this week's digest. When the latest stored
// digest has the same week and content it is returned unchanged and
// created is false.
func (d *DigestScheduler) RunOnce(ctx context.Context) (digest *insight.WeeklyDigest, created bool, err error) {
	today := d.summarizer.Today()
	summary, err := d.summarizer.SummaryAsOf(ctx, today)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to build weekly summary")
	}

	fingerprint, err := core.HashJSON(summary)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to fingerprint weekly summary")
	}

	latest, err := d.repo.LatestDigest(ctx)
	switch {
	case err == nil:
		if latest.WeekEnding == today && latest.Fingerprint == fingerprint {
			d.logger.Debug("digest for %s unchanged", today)
			return latest, false, nil
		}
	case !core.IsNotFoundError(err):
		return nil, false, errors.DatabaseError("failed to load latest digest", err)
	}

	digest = &insight.WeeklyDigest{
		ID:          core.DigestID(core.NewID()),
		WeekEnding:  today,
		Summary:     summary,
		Fingerprint: fingerprint,
		CreatedAt:   d.clock().UTC(),
	}
	if err := d.repo.SaveDigest(ctx, digest); err != nil {
		return nil, false, errors.DatabaseError("failed to save weekly digest", err)
	}

	d.logger.Info("stored digest for week ending %s with %d insights", today, len(summary.Insights))
	if d.events != nil {
		d.events.Broadcast(ports.Event{
			Type:      ports.EventDigestCreated,
			Data:      map[string]interface{}{"id": digest.ID.String(), "weekEnding": today.String()},
			Timestamp: digest.CreatedAt,
		})
	}
	return digest, true, nil
}

// Latest returns the most recent stored digest
func (d *DigestScheduler) Latest(ctx context.Context) (*insight.WeeklyDigest, error) {
	digest, err := d.repo.LatestDigest(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load latest digest")
	}
	return digest, nil
}

// List returns up to limit digests, newest first
func (d *DigestScheduler) List(ctx context.Context, limit int) ([]*insight.WeeklyDigest, error) {
	digests, err := d.repo.ListDigests(ctx, limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list digests", err)
	}
	return digests, nil
}
