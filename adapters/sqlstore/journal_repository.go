package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lifeos/domain/core"
	"lifeos/domain/journal"
	"lifeos/ports"

	"github.com/jmoiron/sqlx"
)

type journalRow struct {
	ID        string         `db:"id"`
	Date      string         `db:"date"`
	Content   string         `db:"content"`
	Mood      string         `db:"mood"`
	Tags      JSON[[]string] `db:"tags"`
	CreatedAt timestamp      `db:"created_at"`
	UpdatedAt timestamp      `db:"updated_at"`
}

func (r journalRow) toDomain() *journal.Entry {
	return &journal.Entry{
		ID:        core.JournalEntryID(r.ID),
		Date:      core.Day(r.Date),
		Content:   r.Content,
		Mood:      journal.Mood(r.Mood),
		Tags:      orEmpty(r.Tags.V),
		CreatedAt: timeOf(r.CreatedAt),
		UpdatedAt: timeOf(r.UpdatedAt),
	}
}

const journalColumns = `id, date, content, mood, tags, created_at, updated_at`

// JournalRepository implements ports.JournalRepository
type JournalRepository struct {
	db *sqlx.DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *sqlx.DB) ports.JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) CreateEntry(ctx context.Context, e *journal.Entry) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO journal_entries (`+journalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), e.ID.String(), e.Date.String(), e.Content, string(e.Mood),
		JSON[[]string]{V: orEmpty(e.Tags)}, timestamp(e.CreatedAt), timestamp(e.UpdatedAt))
	return err
}

func (r *JournalRepository) UpdateEntry(ctx context.Context, e *journal.Entry) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE journal_entries
		SET date = ?, content = ?, mood = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`), e.Date.String(), e.Content, string(e.Mood), JSON[[]string]{V: orEmpty(e.Tags)},
		timestamp(e.UpdatedAt), e.ID.String())
	if err != nil {
		return err
	}
	return expectAffected(res, fmt.Errorf("%w: %s", core.ErrJournalEntryNotFound, e.ID))
}

func (r *JournalRepository) GetEntry(ctx context.Context, id core.JournalEntryID) (*journal.Entry, error) {
	var row journalRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT `+journalColumns+` FROM journal_entries WHERE id = ?
	`), id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrJournalEntryNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// ListEntries narrows by date and mood in SQL; tag and text search run on the rows.
func (r *JournalRepository) ListEntries(ctx context.Context, filter journal.Filter) ([]*journal.Entry, error) {
	where, args := dateRange("date", filter.From, filter.To)
	if filter.Mood != "" {
		if where == "" {
			where = " WHERE mood = ?"
		} else {
			where += " AND mood = ?"
		}
		args = append(args, string(filter.Mood))
	}

	var rows []journalRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT `+journalColumns+` FROM journal_entries`+where+`
		ORDER BY date DESC, created_at DESC
	`), args...)
	if err != nil {
		return nil, err
	}

	entries := make([]*journal.Entry, 0, len(rows))
	for _, row := range rows {
		entry := row.toDomain()
		if !filter.Matches(*entry) {
			continue
		}
		entries = append(entries, entry)
		if filter.Limit > 0 && len(entries) == filter.Limit {
			break
		}
	}
	return entries, nil
}

func (r *JournalRepository) DeleteEntry(ctx context.Context, id core.JournalEntryID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM journal_entries WHERE id = ?`), id.String())
	if err != nil {
		return err
	}
	return expectAffected(res, fmt.Errorf("%w: %s", core.ErrJournalEntryNotFound, id))
}
