package patterns

import (
	"fmt"

	"lifeos/domain/core"
	"lifeos/domain/insight"
	"lifeos/domain/wellness"
)

// Smoke-free thresholds over the trailing month
const (
	excellentCleanDays = 25
	strongCleanDays    = 20
	frequentVapeDays   = 5
	maxMinimalCigDays  = 3
	recentSpikeDays    = 4
	streakMilestoneMin = 7
	streakMilestoneMax = 30
)

// AnalyzeVaping scores the 30 days ending at today. Days without a status are
// clean. quitDate does not narrow the window; see Engine for the clamped variant.
func AnalyzeVaping(statuses wellness.DayStatuses, quitDate core.Day, today core.Day) []insight.Insight {
	return analyzeVaping(statuses, quitDate, today, false)
}

func analyzeVaping(statuses wellness.DayStatuses, quitDate core.Day, today core.Day, clamp bool) []insight.Insight {
	var floor core.Day
	if clamp {
		floor = quitDate
	}

	insights := []insight.Insight{}
	month := statusWindow(statuses, today, monthDays, floor)
	if len(month) == 0 {
		return insights
	}
	counts := countStatuses(month)

	if counts.Clean >= excellentCleanDays {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeCelebration,
			Title:       "Excellent Smoke-Free Month",
			Description: fmt.Sprintf("You've been fully clean %d out of %d days this month. You're crushing it.", counts.Clean, len(month)),
			Priority:    insight.PriorityHigh,
			Data:        map[string]interface{}{"cleanDays": counts.Clean},
		})
	} else if counts.Clean >= strongCleanDays {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeCelebration,
			Title:       "Strong Progress",
			Description: fmt.Sprintf("%d/%d clean days this month. Keep building on this momentum.", counts.Clean, len(month)),
			Priority:    insight.PriorityMedium,
			Data:        map[string]interface{}{"cleanDays": counts.Clean},
		})
	}

	if counts.Vape >= frequentVapeDays {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeWarning,
			Title:       "Vaping Frequency Increasing",
			Description: fmt.Sprintf("You've vaped %d days this month. This pattern is worth examining - what's triggering it?", counts.Vape),
			Priority:    insight.PriorityHigh,
		})
	}

	if counts.Cigarette > 0 && counts.Cigarette <= maxMinimalCigDays {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeObservation,
			Title:       "Minimal Cigarette Use",
			Description: fmt.Sprintf("Only %d cigarette days this month. You're managing to avoid the worst harm even on tough days.", counts.Cigarette),
			Priority:    insight.PriorityLow,
		})
	}

	recent := month
	if len(recent) > weekDays {
		recent = recent[len(recent)-weekDays:]
	}
	if recentVape := countStatuses(recent).Vape; recentVape >= recentSpikeDays {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeWarning,
			Title:       "Recent Vaping Spike",
			Description: fmt.Sprintf("You've vaped %d out of the last 7 days. Something's going on - check your energy and nervous system data.", recentVape),
			Priority:    insight.PriorityHigh,
		})
	}

	streak := currentStreak(statuses, today, floor)
	if streak >= streakMilestoneMin && streak < streakMilestoneMax {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeCelebration,
			Title:       fmt.Sprintf("%d-Day Vape-Free Streak", streak),
			Description: fmt.Sprintf("You've gone %d days without vaping. Keep going - 30 days is within reach.", streak),
			Priority:    insight.PriorityMedium,
			Data:        map[string]interface{}{"streak": streak},
		})
	}

	return insights
}

// CurrentStreak counts consecutive non-vape days walking back from today,
// at most 365. Cigarette days do not break the streak.
func CurrentStreak(statuses wellness.DayStatuses, today core.Day) int {
	return currentStreak(statuses, today, "")
}

func currentStreak(statuses wellness.DayStatuses, today core.Day, floor core.Day) int {
	streak := 0
	for i := 0; i < streakDays; i++ {
		day := today.AddDays(-i)
		if !floor.IsZero() && day.Before(floor) {
			break
		}
		if statuses.StatusOn(day) == wellness.StatusVape {
			break
		}
		streak++
	}
	return streak
}
