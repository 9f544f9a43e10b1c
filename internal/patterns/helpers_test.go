package patterns

import (
	"lifeos/domain/core"
	"lifeos/domain/insight"
	"lifeos/domain/wellness"
)

var today = core.MustParseDay("2024-06-30")

func daysAgo(n int) core.Day {
	return today.AddDays(-n)
}

func checkIn(ago int, energy wellness.EnergyLevel, ns wellness.NervousSystemState, factors ...string) wellness.EnergyCheckIn {
	return wellness.EnergyCheckIn{
		Date:          daysAgo(ago),
		Energy:        energy,
		NervousSystem: ns,
		Factors:       factors,
	}
}

func expression(ago int, expressed bool, types ...string) wellness.SelfExpression {
	return wellness.SelfExpression{Date: daysAgo(ago), Expressed: expressed, Types: types}
}

// week returns one check-in per day for the last n days, oldest first.
func week(n int, energy wellness.EnergyLevel, ns wellness.NervousSystemState) []wellness.EnergyCheckIn {
	out := make([]wellness.EnergyCheckIn, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, checkIn(i, energy, ns))
	}
	return out
}

func find(insights []insight.Insight, title string) (insight.Insight, bool) {
	for _, in := range insights {
		if in.Title == title {
			return in, true
		}
	}
	return insight.Insight{}, false
}

func titles(insights []insight.Insight) []string {
	out := make([]string, 0, len(insights))
	for _, in := range insights {
		out = append(out, in.Title)
	}
	return out
}
