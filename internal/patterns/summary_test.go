package patterns

import (
	"testing"

	"lifeos/domain/insight"
	"lifeos/domain/wellness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyInput() Input {
	checkins := week(7, wellness.EnergyLow, wellness.NervousAnxious)
	for i := range checkins {
		checkins[i].Factors = []string{"work"}
	}
	var exprs []wellness.SelfExpression
	for i := 0; i < 7; i++ {
		exprs = append(exprs, expression(i, i%3 == 0, "writing"))
	}
	return Input{
		CheckIns:    checkins,
		DayStatuses: statusesAgo(wellness.StatusVape, 0, 1, 2, 3, 4, 5),
		QuitDate:    daysAgo(60),
		Expressions: exprs,
	}
}

func TestGenerateWeeklySummary_PriorityOrder(t *testing.T) {
	summary := GenerateWeeklySummary(busyInput(), today)
	require.NotEmpty(t, summary.Insights)

	for i := 1; i < len(summary.Insights); i++ {
		prev, cur := summary.Insights[i-1].Priority.Rank(), summary.Insights[i].Priority.Rank()
		assert.LessOrEqual(t, prev, cur, "insight %d (%s) precedes a higher priority", i-1, summary.Insights[i-1].Title)
	}
}

func TestGenerateWeeklySummary_StableWithinPriority(t *testing.T) {
	in := busyInput()
	summary := GenerateWeeklySummary(in, today)

	var expectedHigh []string
	for _, group := range [][]insight.Insight{
		AnalyzeEnergy(in.CheckIns, today),
		AnalyzeVaping(in.DayStatuses, in.QuitDate, today),
		AnalyzeEnergyVapeCorrelation(in.CheckIns, in.DayStatuses),
		AnalyzeSelfExpression(in.Expressions, in.CheckIns, today),
	} {
		for _, in := range group {
			if in.Priority == insight.PriorityHigh {
				expectedHigh = append(expectedHigh, in.Title)
			}
		}
	}

	var gotHigh []string
	for _, in := range summary.Insights {
		if in.Priority == insight.PriorityHigh {
			gotHigh = append(gotHigh, in.Title)
		}
	}
	assert.Equal(t, expectedHigh, gotHigh)
}

func TestGenerateWeeklySummary_Stats(t *testing.T) {
	in := Input{
		CheckIns: []wellness.EnergyCheckIn{
			checkIn(0, wellness.EnergyLow, wellness.NervousAnxious, "work", "sleep"),
			checkIn(10, wellness.EnergyLow, wellness.NervousNumb, "travel"),
			checkIn(1, wellness.EnergyMedium, wellness.NervousCalm, "work"),
			checkIn(2, wellness.EnergyHigh, wellness.NervousCalm, "social"),
			checkIn(3, wellness.EnergyMedium, wellness.NervousAnxious, "work"),
		},
		DayStatuses: wellness.DayStatuses{
			daysAgo(1): wellness.StatusVape,
			daysAgo(5): wellness.StatusCigarette,
			daysAgo(8): wellness.StatusVape,
		},
		Expressions: []wellness.SelfExpression{
			expression(0, true),
			expression(1, false),
			expression(6, true),
			expression(7, true),
		},
	}

	stats := GenerateWeeklySummary(in, today).Stats
	assert.Equal(t, 2.0, stats.AvgEnergy)
	assert.Equal(t, "anxious", stats.DominantNervousSystemState, "ties keep the first state seen")
	assert.Equal(t, 5, stats.CleanDays)
	assert.Equal(t, 1, stats.CigaretteDays)
	assert.Equal(t, 1, stats.VapeDays)
	assert.Equal(t, []insight.FactorCount{
		{Factor: "work", Count: 3},
		{Factor: "social", Count: 1},
		{Factor: "sleep", Count: 1},
	}, stats.TopFactors)
	assert.Equal(t, 2, stats.ExpressionDays)
}

func TestGenerateWeeklySummary_EmptyInput(t *testing.T) {
	summary := GenerateWeeklySummary(Input{}, today)

	assert.Equal(t, 0.0, summary.Stats.AvgEnergy)
	assert.Equal(t, "unknown", summary.Stats.DominantNervousSystemState)
	assert.Equal(t, 7, summary.Stats.CleanDays)
	assert.Empty(t, summary.Stats.TopFactors)
	assert.NotNil(t, summary.Stats.TopFactors)
	assert.Equal(t, 0, summary.Stats.ExpressionDays)
	assert.Equal(t, []string{"Excellent Smoke-Free Month"}, titles(summary.Insights))
}

func TestGenerateWeeklySummary_AvgSkipsUnknownLevels(t *testing.T) {
	in := Input{CheckIns: []wellness.EnergyCheckIn{
		checkIn(0, wellness.EnergyHigh, wellness.NervousCalm),
		checkIn(1, wellness.EnergyLevel("bogus"), wellness.NervousCalm),
		checkIn(2, wellness.EnergyMedium, wellness.NervousCalm),
	}}
	assert.Equal(t, 2.5, GenerateWeeklySummary(in, today).Stats.AvgEnergy)

	in = Input{CheckIns: []wellness.EnergyCheckIn{
		checkIn(0, wellness.EnergyLevel(""), wellness.NervousCalm),
	}}
	assert.Equal(t, 0.0, GenerateWeeklySummary(in, today).Stats.AvgEnergy)
}

func TestGenerateWeeklySummary_Idempotent(t *testing.T) {
	in := busyInput()
	assert.Equal(t, GenerateWeeklySummary(in, today), GenerateWeeklySummary(in, today))
}

func TestDashboardInsights_PrefersHighPriority(t *testing.T) {
	in := busyInput()
	summary := GenerateWeeklySummary(in, today)
	require.GreaterOrEqual(t, insight.CountByPriority(summary.Insights, insight.PriorityHigh), 3)

	top := DashboardInsights(in, today)
	require.Len(t, top, 3)
	for _, in := range top {
		assert.Equal(t, insight.PriorityHigh, in.Priority)
	}
	assert.Equal(t, summary.Insights[:3], top)
}

func TestDashboardInsights_FallsBackToOverall(t *testing.T) {
	in := Input{
		CheckIns: week(7, wellness.EnergyHigh, wellness.NervousCalm),
		Expressions: []wellness.SelfExpression{
			expression(0, false), expression(1, false), expression(2, false),
		},
	}
	summary := GenerateWeeklySummary(in, today)
	require.Less(t, insight.CountByPriority(summary.Insights, insight.PriorityHigh), 3)

	top := DashboardInsights(in, today)
	assert.LessOrEqual(t, len(top), 3)
	assert.Equal(t, summary.Insights[:len(top)], top)
	assert.Equal(t, "Excellent Smoke-Free Month", top[0].Title)
}

func TestDashboardInsights_Short(t *testing.T) {
	top := DashboardInsights(Input{}, today)
	assert.Len(t, top, 1)
}

func TestDedupeInsights(t *testing.T) {
	in := []insight.Insight{
		{Type: insight.TypeWarning, Title: "A", Priority: insight.PriorityHigh},
		{Type: insight.TypeObservation, Title: "A", Priority: insight.PriorityLow},
		{Type: insight.TypeWarning, Title: "A", Priority: insight.PriorityLow, Description: "dup"},
		{Type: insight.TypeWarning, Title: "B", Priority: insight.PriorityMedium},
	}
	out := DedupeInsights(in)
	require.Len(t, out, 3)
	assert.Equal(t, "", out[0].Description)
	assert.Equal(t, "B", out[2].Title)
	assert.Len(t, in, 4, "input untouched")
}

func TestSortByPriority_UnknownLast(t *testing.T) {
	in := []insight.Insight{
		{Title: "odd", Priority: "urgent"},
		{Title: "low", Priority: insight.PriorityLow},
		{Title: "high", Priority: insight.PriorityHigh},
	}
	SortByPriority(in)
	assert.Equal(t, []string{"high", "low", "odd"}, titles(in))
}
