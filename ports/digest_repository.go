package ports

import (
	"context"

	"lifeos/domain/insight"
)

// DigestRepository stores weekly digests produced by the scheduler
type DigestRepository interface {
	SaveDigest(ctx context.Context, digest *insight.WeeklyDigest) error

	// LatestDigest returns the newest digest or core.ErrDigestNotFound
	LatestDigest(ctx context.Context) (*insight.WeeklyDigest, error)

	ListDigests(ctx context.Context, limit int) ([]*insight.WeeklyDigest, error)
}
