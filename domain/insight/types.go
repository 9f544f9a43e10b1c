package insight

import (
	"time"

	"lifeos/domain/core"
)

// Type classifies an insight
type Type string

const (
	TypeCorrelation Type = "correlation"
	TypeStreak      Type = "streak"
	TypeWarning     Type = "warning"
	TypeCelebration Type = "celebration"
	TypeObservation Type = "observation"
)

// Priority orders insights for display. High sorts first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns 0 for high, 1 for medium, 2 for low and 3 for anything else.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Insight is one derived observation about recent data
type Insight struct {
	Type        Type                   `json:"type" yaml:"type"`
	Title       string                 `json:"title" yaml:"title"`
	Description string                 `json:"description" yaml:"description"`
	Priority    Priority               `json:"priority" yaml:"priority"`
	Data        map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"`
}

// FactorCount is a tag and how often it occurred
type FactorCount struct {
	Factor string `json:"factor" yaml:"factor"`
	Count  int    `json:"count" yaml:"count"`
}

// Stats summarizes the trailing week
type Stats struct {
	AvgEnergy                  float64       `json:"avgEnergy" yaml:"avgEnergy"`
	DominantNervousSystemState string        `json:"dominantNervousSystemState" yaml:"dominantNervousSystemState"`
	CleanDays                  int           `json:"cleanDays" yaml:"cleanDays"`
	CigaretteDays              int           `json:"cigaretteDays" yaml:"cigaretteDays"`
	VapeDays                   int           `json:"vapeDays" yaml:"vapeDays"`
	TopFactors                 []FactorCount `json:"topFactors" yaml:"topFactors"`
	ExpressionDays             int           `json:"expressionDays" yaml:"expressionDays"`
}

// WeeklySummary is the priority-sorted insight list plus weekly stats
type WeeklySummary struct {
	Insights []Insight `json:"insights" yaml:"insights"`
	Stats    Stats     `json:"stats" yaml:"stats"`
}

// CountByPriority counts insights with priority p
func CountByPriority(insights []Insight, p Priority) int {
	n := 0
	for _, in := range insights {
		if in.Priority == p {
			n++
		}
	}
	return n
}

// WeeklyDigest is a stored weekly summary produced by the scheduler
type WeeklyDigest struct {
	ID          core.DigestID `json:"id"`
	WeekEnding  core.Day      `json:"weekEnding"`
	Summary     WeeklySummary `json:"summary"`
	Fingerprint core.Hash     `json:"fingerprint"`
	CreatedAt   time.Time     `json:"createdAt"`
}
