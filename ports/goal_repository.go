package ports

import (
	"context"

	"lifeos/domain/core"
	"lifeos/domain/goal"
)

// GoalRepository defines the interface for goal data operations
type GoalRepository interface {
	CreateGoal(ctx context.Context, g *goal.Goal) error
	UpdateGoal(ctx context.Context, g *goal.Goal) error
	GetGoal(ctx context.Context, id core.GoalID) (*goal.Goal, error)

	// ListGoals returns goals with the given status, or all when status is empty
	ListGoals(ctx context.Context, status goal.Status) ([]*goal.Goal, error)
	DeleteGoal(ctx context.Context, id core.GoalID) error
}
