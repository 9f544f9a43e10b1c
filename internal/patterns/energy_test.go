package patterns

import (
	"testing"

	"lifeos/domain/insight"
	"lifeos/domain/wellness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEnergy_InsufficientData(t *testing.T) {
	for n := 0; n < 3; n++ {
		got := AnalyzeEnergy(week(n, wellness.EnergyLow, wellness.NervousAnxious), today)
		assert.Empty(t, got, "expected no insights for %d check-ins", n)
		assert.NotNil(t, got)
	}
}

func TestAnalyzeEnergy_LowEnergyWeek(t *testing.T) {
	got := AnalyzeEnergy(week(7, wellness.EnergyLow, wellness.NervousWired), today)

	low, ok := find(got, "Low Energy Week")
	require.True(t, ok, "missing Low Energy Week in %v", titles(got))
	assert.Equal(t, insight.TypeWarning, low.Type)
	assert.Equal(t, insight.PriorityHigh, low.Priority)
	assert.Equal(t, 1.0, low.Data["avgEnergy"])
	assert.Contains(t, low.Description, "avg: 1.0/3")
}

func TestAnalyzeEnergy_HighEnergyWeek(t *testing.T) {
	got := AnalyzeEnergy(week(5, wellness.EnergyHigh, wellness.NervousWired), today)

	high, ok := find(got, "High Energy Week")
	require.True(t, ok)
	assert.Equal(t, insight.TypeCelebration, high.Type)
	assert.Equal(t, insight.PriorityMedium, high.Priority)
	_, low := find(got, "Low Energy Week")
	assert.False(t, low)
}

func TestAnalyzeEnergy_MediumAverageIsQuiet(t *testing.T) {
	got := AnalyzeEnergy(week(7, wellness.EnergyMedium, wellness.NervousWired), today)
	assert.Empty(t, got)
}

func TestAnalyzeEnergy_NervousSystemCounts(t *testing.T) {
	anxious := week(7, wellness.EnergyMedium, wellness.NervousWired)
	for i := 0; i < 4; i++ {
		anxious[i].NervousSystem = wellness.NervousAnxious
	}
	got := AnalyzeEnergy(anxious, today)
	w, ok := find(got, "Anxious Pattern Detected")
	require.True(t, ok)
	assert.Equal(t, insight.PriorityHigh, w.Priority)
	assert.Contains(t, w.Description, "4 out of 7 days")

	calm := week(7, wellness.EnergyMedium, wellness.NervousCalm)
	got = AnalyzeEnergy(calm, today)
	c, ok := find(got, "Regulated Nervous System")
	require.True(t, ok)
	assert.Equal(t, insight.PriorityLow, c.Priority)

	fourCalm := week(7, wellness.EnergyMedium, wellness.NervousWired)
	for i := 0; i < 4; i++ {
		fourCalm[i].NervousSystem = wellness.NervousCalm
	}
	_, ok = find(AnalyzeEnergy(fourCalm, today), "Regulated Nervous System")
	assert.False(t, ok)
}

func TestAnalyzeEnergy_MajorFactor(t *testing.T) {
	checkins := []wellness.EnergyCheckIn{
		checkIn(0, wellness.EnergyMedium, wellness.NervousWired, "sleep", "work"),
		checkIn(1, wellness.EnergyMedium, wellness.NervousWired, "work"),
		checkIn(2, wellness.EnergyMedium, wellness.NervousWired, "work", "work"),
		checkIn(3, wellness.EnergyMedium, wellness.NervousWired, "sleep"),
		checkIn(4, wellness.EnergyMedium, wellness.NervousWired, "work"),
	}
	got := AnalyzeEnergy(checkins, today)

	obs, ok := find(got, "work is a Major Factor")
	require.True(t, ok, "got %v", titles(got))
	assert.Equal(t, insight.TypeObservation, obs.Type)
	assert.Equal(t, insight.PriorityMedium, obs.Priority)
	assert.Equal(t, "work", obs.Data["factor"])
	assert.Equal(t, 4, obs.Data["frequency"])
	assert.Contains(t, obs.Description, "4 out of 5 days")
}

func TestAnalyzeEnergy_LowCapacityAndCorrelation(t *testing.T) {
	checkins := []wellness.EnergyCheckIn{
		checkIn(0, wellness.EnergyLow, wellness.NervousAnxious),
		checkIn(1, wellness.EnergyLow, wellness.NervousAnxious),
		checkIn(2, wellness.EnergyLow, wellness.NervousAnxious),
		checkIn(3, wellness.EnergyLow, wellness.NervousNumb),
		checkIn(4, wellness.EnergyHigh, wellness.NervousCalm),
		checkIn(5, wellness.EnergyHigh, wellness.NervousCalm),
		checkIn(6, wellness.EnergyHigh, wellness.NervousCalm),
	}
	got := AnalyzeEnergy(checkins, today)

	corr, ok := find(got, "Anxiety + Low Energy Pattern")
	require.True(t, ok)
	assert.Equal(t, insight.TypeCorrelation, corr.Type)
	assert.Contains(t, corr.Description, "3 times")

	lc, ok := find(got, "Multiple Low-Capacity Days")
	require.True(t, ok)
	assert.Contains(t, lc.Description, "4 days")

	// insertion order follows the checks, not priority
	assert.Equal(t, []string{"Anxiety + Low Energy Pattern", "Multiple Low-Capacity Days"}, titles(got))
}

func TestAnalyzeEnergy_OnlyTrailingWeekCounts(t *testing.T) {
	var checkins []wellness.EnergyCheckIn
	for i := 8; i < 20; i++ {
		checkins = append(checkins, checkIn(i, wellness.EnergyLow, wellness.NervousAnxious))
	}
	checkins = append(checkins,
		checkIn(0, wellness.EnergyHigh, wellness.NervousCalm),
		checkIn(1, wellness.EnergyHigh, wellness.NervousCalm),
		checkIn(2, wellness.EnergyHigh, wellness.NervousCalm),
	)

	got := AnalyzeEnergy(checkins, today)
	assert.Equal(t, []string{"High Energy Week"}, titles(got))
}

func TestAnalyzeEnergy_NothingRecent(t *testing.T) {
	var checkins []wellness.EnergyCheckIn
	for i := 10; i < 20; i++ {
		checkins = append(checkins, checkIn(i, wellness.EnergyLow, wellness.NervousAnxious))
	}
	assert.Empty(t, AnalyzeEnergy(checkins, today))
}

func TestAnalyzeEnergy_OrderIndependentAndPure(t *testing.T) {
	sorted := []wellness.EnergyCheckIn{
		checkIn(6, wellness.EnergyLow, wellness.NervousAnxious, "work"),
		checkIn(5, wellness.EnergyLow, wellness.NervousAnxious, "work"),
		checkIn(4, wellness.EnergyLow, wellness.NervousNumb, "work"),
		checkIn(3, wellness.EnergyMedium, wellness.NervousAnxious, "work"),
		checkIn(2, wellness.EnergyLow, wellness.NervousAnxious),
	}
	shuffled := []wellness.EnergyCheckIn{sorted[3], sorted[0], sorted[4], sorted[2], sorted[1]}
	before := append([]wellness.EnergyCheckIn(nil), shuffled...)

	first := AnalyzeEnergy(sorted, today)
	assert.Equal(t, first, AnalyzeEnergy(shuffled, today))
	assert.Equal(t, first, AnalyzeEnergy(sorted, today))
	assert.Equal(t, before, shuffled, "input must not be mutated")
}

func TestAnalyzeEnergy_UnknownLevelsLeaveAverage(t *testing.T) {
	checkins := []wellness.EnergyCheckIn{
		checkIn(2, wellness.EnergyHigh, wellness.NervousWired),
		checkIn(1, wellness.EnergyLevel(""), wellness.NervousWired),
		checkIn(0, wellness.EnergyHigh, wellness.NervousWired),
	}

	got := AnalyzeEnergy(checkins, today)
	high, ok := find(got, "High Energy Week")
	require.True(t, ok, "missing High Energy Week in %v", titles(got))
	assert.Equal(t, 3.0, high.Data["avgEnergy"])
}

func TestAnalyzeEnergy_NoKnownLevels(t *testing.T) {
	checkins := []wellness.EnergyCheckIn{
		checkIn(2, wellness.EnergyLevel(""), wellness.NervousWired),
		checkIn(1, wellness.EnergyLevel("bogus"), wellness.NervousWired),
		checkIn(0, wellness.EnergyLevel(""), wellness.NervousWired),
	}

	assert.Empty(t, AnalyzeEnergy(checkins, today))
}
