package patterns

import (
	"fmt"

	"lifeos/domain/insight"
	"lifeos/domain/wellness"
)

const (
	minCorrelationCheckIns = 7
	minConditionDays       = 3
	vapeTriggerFraction    = 0.6
	cleanEnergyFraction    = 0.8
)

// AnalyzeEnergyVapeCorrelation matches every check-in with that day's status
// and looks for energy or anxiety driven vaping. It needs 7 check-ins.
func AnalyzeEnergyVapeCorrelation(checkins []wellness.EnergyCheckIn, statuses wellness.DayStatuses) []insight.Insight {
	insights := []insight.Insight{}
	if len(checkins) < minCorrelationCheckIns {
		return insights
	}

	var lowDays, lowVape, anxiousDays, anxiousVape, highDays, highClean int
	for _, day := range checkInIndex(checkins) {
		status := statuses.StatusOn(day.Date)
		if day.Energy == wellness.EnergyLow {
			lowDays++
			if status == wellness.StatusVape {
				lowVape++
			}
		}
		if day.NervousSystem == wellness.NervousAnxious {
			anxiousDays++
			if status == wellness.StatusVape {
				anxiousVape++
			}
		}
		if day.Energy == wellness.EnergyHigh {
			highDays++
			if status == wellness.StatusClean {
				highClean++
			}
		}
	}

	if lowDays >= minConditionDays && ratio(lowVape, lowDays) >= vapeTriggerFraction {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeCorrelation,
			Title:       "Low Energy → Vaping Pattern",
			Description: fmt.Sprintf("You're more likely to vape on low-energy days (%d/%d times). Low energy might be a trigger.", lowVape, lowDays),
			Priority:    insight.PriorityHigh,
			Data:        map[string]interface{}{"matches": lowVape, "days": lowDays},
		})
	}

	if anxiousDays >= minConditionDays && ratio(anxiousVape, anxiousDays) >= vapeTriggerFraction {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeCorrelation,
			Title:       "Anxiety → Vaping Pattern",
			Description: fmt.Sprintf("You're more likely to vape when anxious (%d/%d times). Anxiety regulation might help reduce vaping.", anxiousVape, anxiousDays),
			Priority:    insight.PriorityHigh,
			Data:        map[string]interface{}{"matches": anxiousVape, "days": anxiousDays},
		})
	}

	if highDays >= minConditionDays && ratio(highClean, highDays) >= cleanEnergyFraction {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeCelebration,
			Title:       "High Energy = Clean Days",
			Description: fmt.Sprintf("You stay clean when your energy is high (%d/%d times). Energy management is key.", highClean, highDays),
			Priority:    insight.PriorityMedium,
			Data:        map[string]interface{}{"matches": highClean, "days": highDays},
		})
	}

	return insights
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
