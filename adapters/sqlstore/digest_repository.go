package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"lifeos/domain/core"
	"lifeos/domain/insight"
	"lifeos/ports"

	"github.com/jmoiron/sqlx"
)

type digestRow struct {
	ID          string                      `db:"id"`
	WeekEnding  string                      `db:"week_ending"`
	Summary     JSON[insight.WeeklySummary] `db:"summary"`
	Fingerprint string                      `db:"fingerprint"`
	CreatedAt   timestamp                   `db:"created_at"`
}

func (r digestRow) toDomain() *insight.WeeklyDigest {
	return &insight.WeeklyDigest{
		ID:          core.DigestID(r.ID),
		WeekEnding:  core.Day(r.WeekEnding),
		Summary:     r.Summary.V,
		Fingerprint: core.Hash(r.Fingerprint),
		CreatedAt:   timeOf(r.CreatedAt),
	}
}

// DigestRepository implements ports.DigestRepository
type DigestRepository struct {
	db *sqlx.DB
}

// NewDigestRepository creates a new weekly digest repository
func NewDigestRepository(db *sqlx.DB) ports.DigestRepository {
	return &DigestRepository{db: db}
}

// SaveDigest keeps one digest per week; a rerun for the same week replaces it.
func (r *DigestRepository) SaveDigest(ctx context.Context, d *insight.WeeklyDigest) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO weekly_digests (id, week_ending, summary, fingerprint, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (week_ending) DO UPDATE SET
			id = excluded.id,
			summary = excluded.summary,
			fingerprint = excluded.fingerprint,
			created_at = excluded.created_at
	`), d.ID.String(), d.WeekEnding.String(), JSON[insight.WeeklySummary]{V: d.Summary},
		d.Fingerprint.String(), timestamp(d.CreatedAt))
	return err
}

func (r *DigestRepository) LatestDigest(ctx context.Context) (*insight.WeeklyDigest, error) {
	var row digestRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, week_ending, summary, fingerprint, created_at
		FROM weekly_digests
		ORDER BY week_ending DESC
		LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrDigestNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *DigestRepository) ListDigests(ctx context.Context, limit int) ([]*insight.WeeklyDigest, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []digestRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT id, week_ending, summary, fingerprint, created_at
		FROM weekly_digests
		ORDER BY week_ending DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, err
	}

	digests := make([]*insight.WeeklyDigest, 0, len(rows))
	for _, row := range rows {
		digests = append(digests, row.toDomain())
	}
	return digests, nil
}
