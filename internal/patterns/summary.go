package patterns

import (
	"sort"

	"lifeos/domain/core"
	"lifeos/domain/insight"
	"lifeos/domain/wellness"
)

const (
	dashboardSize   = 3
	topFactorsCount = 3
	unknownState    = "unknown"
)

// Input is everything the engine reads. Callers own the data; the engine
// never mutates it.
type Input struct {
	CheckIns    []wellness.EnergyCheckIn
	DayStatuses wellness.DayStatuses
	QuitDate    core.Day
	Expressions []wellness.SelfExpression
}

// GenerateWeeklySummary runs every analyzer, sorts by priority and computes
// the trailing-week stats.
func GenerateWeeklySummary(in Input, today core.Day) insight.WeeklySummary {
	return summarize(in, today, Options{})
}

// DashboardInsights returns the three insights worth showing first: the
// leading three high-priority ones when there are at least three, otherwise
// the first three overall.
func DashboardInsights(in Input, today core.Day) []insight.Insight {
	return dashboard(summarize(in, today, Options{}))
}

func summarize(in Input, today core.Day, opts Options) insight.WeeklySummary {
	all := []insight.Insight{}
	all = append(all, AnalyzeEnergy(in.CheckIns, today)...)
	all = append(all, analyzeVaping(in.DayStatuses, in.QuitDate, today, opts.ClampToQuitDate)...)
	all = append(all, AnalyzeEnergyVapeCorrelation(in.CheckIns, in.DayStatuses)...)
	all = append(all, AnalyzeSelfExpression(in.Expressions, in.CheckIns, today)...)

	if opts.DedupeInsights {
		all = DedupeInsights(all)
	}
	SortByPriority(all)

	return insight.WeeklySummary{
		Insights: all,
		Stats:    weeklyStats(in, today),
	}
}

func dashboard(summary insight.WeeklySummary) []insight.Insight {
	high := make([]insight.Insight, 0, dashboardSize)
	for _, in := range summary.Insights {
		if in.Priority == insight.PriorityHigh {
			high = append(high, in)
		}
	}
	if len(high) >= dashboardSize {
		return high[:dashboardSize]
	}
	if len(summary.Insights) > dashboardSize {
		return summary.Insights[:dashboardSize]
	}
	return summary.Insights
}

// SortByPriority stable-sorts insights high, medium, low in place.
func SortByPriority(insights []insight.Insight) {
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority.Rank() < insights[j].Priority.Rank()
	})
}

// DedupeInsights drops every insight whose (type, title) was already seen.
func DedupeInsights(insights []insight.Insight) []insight.Insight {
	type key struct {
		t     insight.Type
		title string
	}
	seen := make(map[key]bool, len(insights))
	out := make([]insight.Insight, 0, len(insights))
	for _, in := range insights {
		k := key{in.Type, in.Title}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, in)
	}
	return out
}

func weeklyStats(in Input, today core.Day) insight.Stats {
	week := checkInWindow(in.CheckIns, today, weekDays)

	states := newTally()
	factors := newTally()
	for _, c := range week {
		states.add(string(c.NervousSystem))
		factors.addSet(c.Factors)
	}

	dominant := unknownState
	if top := states.top(1); len(top) > 0 {
		dominant = top[0].Key
	}

	topFactors := []insight.FactorCount{}
	for _, kc := range factors.top(topFactorsCount) {
		topFactors = append(topFactors, insight.FactorCount{Factor: kc.Key, Count: kc.Count})
	}

	counts := countStatuses(statusWindow(in.DayStatuses, today, weekDays, ""))

	avg, _ := averageEnergy(week)

	expressed := 0
	for _, e := range expressionWindow(in.Expressions, today, weekDays) {
		if e.Expressed {
			expressed++
		}
	}

	return insight.Stats{
		AvgEnergy:                  avg,
		DominantNervousSystemState: dominant,
		CleanDays:                  counts.Clean,
		CigaretteDays:              counts.Cigarette,
		VapeDays:                   counts.Vape,
		TopFactors:                 topFactors,
		ExpressionDays:             expressed,
	}
}
