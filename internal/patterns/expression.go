package patterns

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"lifeos/domain/core"
	"lifeos/domain/insight"
	"lifeos/domain/wellness"
)

const (
	minExpressions           = 3
	consistentExpressionDays = 5
	limitedExpressionDays    = 2
	minMatchedExpressions    = 5
	minExpressedMatches      = 3
	wellbeingFraction        = 0.6
	primaryOutletCount       = 3
)

// AnalyzeSelfExpression looks at the 7 days ending at today and cross-references
// every expression record with the check-in of the same day.
func AnalyzeSelfExpression(expressions []wellness.SelfExpression, checkins []wellness.EnergyCheckIn, today core.Day) []insight.Insight {
	if len(expressions) < minExpressions {
		return []insight.Insight{}
	}

	insights := []insight.Insight{}
	week := expressionWindow(expressions, today, weekDays)

	expressedDays := 0
	types := newTally()
	for _, e := range week {
		if !e.Expressed {
			continue
		}
		expressedDays++
		types.addSet(e.Types)
	}

	if expressedDays >= consistentExpressionDays {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeCelebration,
			Title:       "Consistent Self-Expression",
			Description: fmt.Sprintf("You've expressed yourself %d out of 7 days this week. You're honoring your authentic self.", expressedDays),
			Priority:    insight.PriorityLow,
		})
	} else if expressedDays <= limitedExpressionDays {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeObservation,
			Title:       "Limited Self-Expression",
			Description: fmt.Sprintf("Only %d days of self-expression this week. Are you giving yourself permission to be authentic?", expressedDays),
			Priority:    insight.PriorityMedium,
		})
	}

	if boostsWellbeing(expressions, checkins) {
		insights = append(insights, insight.Insight{
			Type:        insight.TypeCorrelation,
			Title:       "Expression Boosts Wellbeing",
			Description: "You tend to feel better (higher energy or calmer) on days when you express yourself. Self-expression might be key for you.",
			Priority:    insight.PriorityHigh,
		})
	}

	if top := types.top(1); len(top) > 0 && top[0].Count >= primaryOutletCount {
		name := capitalize(top[0].Key)
		insights = append(insights, insight.Insight{
			Type:        insight.TypeObservation,
			Title:       fmt.Sprintf("%s Expression", name),
			Description: fmt.Sprintf("%s expression has been your primary outlet (%d times this week).", name, top[0].Count),
			Priority:    insight.PriorityLow,
			Data:        map[string]interface{}{"type": top[0].Key, "frequency": top[0].Count},
		})
	}

	return insights
}

// boostsWellbeing reports whether expressed days skew high-energy or calm.
// It needs at least 3 check-ins, 5 date matches and 3 expressed matches.
func boostsWellbeing(expressions []wellness.SelfExpression, checkins []wellness.EnergyCheckIn) bool {
	if len(checkins) < minCheckIns {
		return false
	}
	idx := checkInIndex(checkins)

	matched, expressed, highEnergy, calm := 0, 0, 0, 0
	for _, e := range expressions {
		c, ok := idx[e.Date]
		if !ok {
			continue
		}
		matched++
		if !e.Expressed {
			continue
		}
		expressed++
		if c.Energy == wellness.EnergyHigh {
			highEnergy++
		}
		if c.NervousSystem == wellness.NervousCalm {
			calm++
		}
	}

	if matched < minMatchedExpressions || expressed < minExpressedMatches {
		return false
	}
	return float64(highEnergy)/float64(expressed) >= wellbeingFraction ||
		float64(calm)/float64(expressed) >= wellbeingFraction
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
