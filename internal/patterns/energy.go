package patterns

import (
	"fmt"

	"lifeos/domain/core"
	"lifeos/domain/insight"
	"lifeos/domain/wellness"
)

// Energy thresholds over the trailing week
const (
	minCheckIns          = 3
	lowEnergyAverage     = 1.5
	highEnergyAverage    = 2.5
	anxiousDaysWarning   = 4
	calmDaysCelebration  = 5
	majorFactorCount     = 4
	anxiousLowCorrelated = 3
	lowCapacityDays      = 3
)

// AnalyzeEnergy inspects the check-ins of the 7 days ending at today.
// Fewer than 3 check-ins in total yields no insights.
func AnalyzeEnergy(checkins []wellness.EnergyCheckIn, today core.Day) []insight.Insight {
	if len(checkins) < minCheckIns {
		return []insight.Insight{}
	}

	insights := []insight.Insight{}
	week := checkInWindow(checkins, today, weekDays)
	if len(week) == 0 {
		return insights
	}

	avg, scored := averageEnergy(week)
	if scored && avg < lowEnergyAverage {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeWarning,
			Title:       "Low Energy Week",
			Description: fmt.Sprintf("Your energy has been consistently low this week (avg: %.1f/3). Consider what might be draining you.", avg),
			Priority:    insight.PriorityHigh,
			Data:        map[string]interface{}{"avgEnergy": avg},
		})
	} else if scored && avg > highEnergyAverage {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeCelebration,
			Title:       "High Energy Week",
			Description: fmt.Sprintf("You've had strong energy this week (avg: %.1f/3). What's working well?", avg),
			Priority:    insight.PriorityMedium,
			Data:        map[string]interface{}{"avgEnergy": avg},
		})
	}

	var anxious, calm, anxiousLow, lowCapacity int
	factors := newTally()
	for _, c := range week {
		switch c.NervousSystem {
		case wellness.NervousAnxious:
			anxious++
		case wellness.NervousCalm:
			calm++
		}
		if c.Energy == wellness.EnergyLow {
			if c.NervousSystem == wellness.NervousAnxious {
				anxiousLow++
			}
			if c.NervousSystem == wellness.NervousAnxious || c.NervousSystem == wellness.NervousNumb {
				lowCapacity++
			}
		}
		factors.addSet(c.Factors)
	}

	if anxious >= anxiousDaysWarning {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeWarning,
			Title:       "Anxious Pattern Detected",
			Description: fmt.Sprintf("You've felt anxious %d out of %d days this week. What's contributing to this?", anxious, len(week)),
			Priority:    insight.PriorityHigh,
		})
	}

	if calm >= calmDaysCelebration {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeCelebration,
			Title:       "Regulated Nervous System",
			Description: fmt.Sprintf("You've been feeling calm %d out of %d days this week. Your nervous system is well-regulated.", calm, len(week)),
			Priority:    insight.PriorityLow,
		})
	}

	if top := factors.top(1); len(top) > 0 && top[0].Count >= majorFactorCount {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeObservation,
			Title:       fmt.Sprintf("%s is a Major Factor", top[0].Key),
			Description: fmt.Sprintf("%s has affected your state %d out of %d days this week.", top[0].Key, top[0].Count, len(week)),
			Priority:    insight.PriorityMedium,
			Data:        map[string]interface{}{"factor": top[0].Key, "frequency": top[0].Count},
		})
	}

	if anxiousLow >= anxiousLowCorrelated {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeCorrelation,
			Title:       "Anxiety + Low Energy Pattern",
			Description: fmt.Sprintf("Anxiety and low energy occurred together %d times this week. This combination deserves attention.", anxiousLow),
			Priority:    insight.PriorityHigh,
		})
	}

	if lowCapacity >= lowCapacityDays {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeWarning,
			Title:       "Multiple Low-Capacity Days",
			Description: fmt.Sprintf("You've had %d days this week with low energy and a dysregulated nervous system. Consider activating Low-Capacity Mode.", lowCapacity),
			Priority:    insight.PriorityHigh,
		})
	}

	return insights
}
