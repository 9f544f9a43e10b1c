package goal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"lifeos/domain/core"
)

// Category groups goals by life area
type Category string

const (
	CategoryWork          Category = "work"
	CategoryPersonal      Category = "personal"
	CategoryHealth        Category = "health"
	CategoryRelationships Category = "relationships"
	CategoryLearning      Category = "learning"
	CategoryFinancial     Category = "financial"
	CategoryOther         Category = "other"
)

// Timeframe distinguishes short and long horizon goals
type Timeframe string

const (
	ShortTerm Timeframe = "short-term"
	LongTerm  Timeframe = "long-term"
)

// Status is the lifecycle state of a goal
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Milestone is one checkpoint of a goal
type Milestone struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	TargetValue float64    `json:"targetValue" yaml:"targetValue"`
	Completed   bool       `json:"completed" yaml:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// Goal is a tracked personal goal
type Goal struct {
	ID          core.GoalID `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category    `json:"category" yaml:"category"`
	Timeframe   Timeframe   `json:"timeframe" yaml:"timeframe"`
	Status      Status      `json:"status" yaml:"status"`
	Progress    int         `json:"progress" yaml:"progress"`
	Milestones  []Milestone `json:"milestones" yaml:"milestones"`
	StartDate   core.Day    `json:"startDate" yaml:"startDate"`
	TargetDate  core.Day    `json:"targetDate,omitempty" yaml:"targetDate,omitempty"`
	Priority    int         `json:"priority" yaml:"priority"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" yaml:"updatedAt"`
}

// Validate checks a goal before it is stored
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: title is required", core.ErrInvalidGoal)
	}
	switch g.Category {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryRelationships,
		CategoryLearning, CategoryFinancial, CategoryOther:
	default:
		return fmt.Errorf("%w: unknown category %q", core.ErrInvalidGoal, g.Category)
	}
	switch g.Status {
	case StatusActive, StatusPaused, StatusCompleted, StatusArchived:
	default:
		return fmt.Errorf("%w: unknown status %q", core.ErrInvalidGoal, g.Status)
	}
	if g.Priority < 1 || g.Priority > 5 {
		return fmt.Errorf("%w: priority must be 1-5", core.ErrInvalidGoal)
	}
	if g.StartDate.IsZero() {
		return fmt.Errorf("%w: %q", core.ErrInvalidDay, g.StartDate)
	}
	if g.TargetDate != "" && g.TargetDate.Before(g.StartDate) {
		return fmt.Errorf("%w: target date precedes start date", core.ErrInvalidGoal)
	}
	return nil
}

// MilestoneProgress is the rounded percentage of completed milestones
func MilestoneProgress(milestones []Milestone) int {
	if len(milestones) == 0 {
		return 0
	}
	done := 0
	for _, m := range milestones {
		if m.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(milestones)) * 100))
}
