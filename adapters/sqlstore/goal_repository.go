package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/ports"

	"github.com/jmoiron/sqlx"
)

type goalRow struct {
	ID          string                 `db:"id"`
	Title       string                 `db:"title"`
	Description string                 `db:"description"`
	Category    string                 `db:"category"`
	Timeframe   string                 `db:"timeframe"`
	Status      string                 `db:"status"`
	Progress    int                    `db:"progress"`
	Milestones  JSON[[]goal.Milestone] `db:"milestones"`
	StartDate   string                 `db:"start_date"`
	TargetDate  string                 `db:"target_date"`
	Priority    int                    `db:"priority"`
	CreatedAt   timestamp              `db:"created_at"`
	UpdatedAt   timestamp              `db:"updated_at"`
}

func (r goalRow) toDomain() *goal.Goal {
	milestones := r.Milestones.V
	if milestones == nil {
		milestones = []goal.Milestone{}
	}
	return &goal.Goal{
		ID:          core.GoalID(r.ID),
		Title:       r.Title,
		Description: r.Description,
		Category:    goal.Category(r.Category),
		Timeframe:   goal.Timeframe(r.Timeframe),
		Status:      goal.Status(r.Status),
		Progress:    r.Progress,
		Milestones:  milestones,
		StartDate:   core.Day(r.StartDate),
		TargetDate:  core.Day(r.TargetDate),
		Priority:    r.Priority,
		CreatedAt:   timeOf(r.CreatedAt),
		UpdatedAt:   timeOf(r.UpdatedAt),
	}
}

const goalColumns = `id, title, description, category, timeframe, status, progress,
	milestones, start_date, target_date, priority, created_at, updated_at`

// GoalRepository implements ports.GoalRepository
type GoalRepository struct {
	db *sqlx.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *sqlx.DB) ports.GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) CreateGoal(ctx context.Context, g *goal.Goal) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), g.ID.String(), g.Title, g.Description, string(g.Category), string(g.Timeframe),
		string(g.Status), g.Progress, JSON[[]goal.Milestone]{V: g.Milestones},
		g.StartDate.String(), g.TargetDate.String(), g.Priority,
		timestamp(g.CreatedAt), timestamp(g.UpdatedAt))
	return err
}

func (r *GoalRepository) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE goals SET
			title = ?, description = ?, category = ?, timeframe = ?, status = ?,
			progress = ?, milestones = ?, start_date = ?, target_date = ?,
			priority = ?, updated_at = ?
		WHERE id = ?
	`), g.Title, g.Description, string(g.Category), string(g.Timeframe), string(g.Status),
		g.Progress, JSON[[]goal.Milestone]{V: g.Milestones}, g.StartDate.String(),
		g.TargetDate.String(), g.Priority, timestamp(g.UpdatedAt), g.ID.String())
	if err != nil {
		return err
	}
	return expectAffected(res, fmt.Errorf("%w: %s", core.ErrGoalNotFound, g.ID))
}

func (r *GoalRepository) GetGoal(ctx context.Context, id core.GoalID) (*goal.Goal, error) {
	var row goalRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT `+goalColumns+` FROM goals WHERE id = ?`), id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrGoalNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *GoalRepository) ListGoals(ctx context.Context, status goal.Status) ([]*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY priority DESC, created_at ASC`

	var rows []goalRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	goals := make([]*goal.Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, row.toDomain())
	}
	return goals, nil
}

func (r *GoalRepository) DeleteGoal(ctx context.Context, id core.GoalID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM goals WHERE id = ?`), id.String())
	if err != nil {
		return err
	}
	return expectAffected(res, fmt.Errorf("%w: %s", core.ErrGoalNotFound, id))
}
