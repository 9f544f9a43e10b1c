package sqlstore

import (
	"context"
	"fmt"

	"lifeos/domain/core"
	"lifeos/domain/wellness"
	"lifeos/ports"

	"github.com/jmoiron/sqlx"
)

type urgeRow struct {
	ID          string    `db:"id"`
	LoggedAt    timestamp `db:"logged_at"`
	Day         string    `db:"day"`
	Intensity   int       `db:"intensity"`
	Trigger     string    `db:"trigger_text"`
	Replacement string    `db:"replacement"`
	Notes       string    `db:"notes"`
}

func (r urgeRow) toDomain() wellness.UrgeEntry {
	return wellness.UrgeEntry{
		ID:          core.UrgeID(r.ID),
		At:          timeOf(r.LoggedAt),
		Day:         core.Day(r.Day),
		Intensity:   wellness.UrgeIntensity(r.Intensity),
		Trigger:     r.Trigger,
		Replacement: r.Replacement,
		Notes:       r.Notes,
	}
}

const urgeColumns = `id, logged_at, day, intensity, trigger_text, replacement, notes`

// UrgeRepository implements ports.UrgeRepository
type UrgeRepository struct {
	db *sqlx.DB
}

// NewUrgeRepository creates a new urge repository
func NewUrgeRepository(db *sqlx.DB) ports.UrgeRepository {
	return &UrgeRepository{db: db}
}

func (r *UrgeRepository) SaveUrge(ctx context.Context, u wellness.UrgeEntry) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO urges (`+urgeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			logged_at = excluded.logged_at,
			day = excluded.day,
			intensity = excluded.intensity,
			trigger_text = excluded.trigger_text,
			replacement = excluded.replacement,
			notes = excluded.notes
	`), u.ID.String(), timestamp(u.At), u.Day.String(), int(u.Intensity), u.Trigger, u.Replacement, u.Notes)
	return err
}

func (r *UrgeRepository) ListUrges(ctx context.Context, from, to core.Day) ([]wellness.UrgeEntry, error) {
	where, args := dateRange("day", from, to)
	var rows []urgeRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT `+urgeColumns+` FROM urges`+where+`
		ORDER BY logged_at DESC, id DESC
	`), args...)
	if err != nil {
		return nil, err
	}

	urges := make([]wellness.UrgeEntry, 0, len(rows))
	for _, row := range rows {
		urges = append(urges, row.toDomain())
	}
	return urges, nil
}

func (r *UrgeRepository) DeleteUrge(ctx context.Context, id core.UrgeID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM urges WHERE id = ?`), id.String())
	if err != nil {
		return err
	}
	return expectAffected(res, fmt.Errorf("%w: %s", core.ErrUrgeNotFound, id))
}
