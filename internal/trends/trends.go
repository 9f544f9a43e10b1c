// Package trends computes the longer-horizon numbers behind the insights:
// the direction of energy over the last month and how energy relates to vaping.
package trends

import (
	"math"

	"lifeos/domain/core"
	"lifeos/domain/wellness"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// DefaultDays is the trailing window of a report
const DefaultDays = 30

// slopeThreshold is the per-day score change below which energy is stable
const slopeThreshold = 0.02

// Direction of the energy trend
type Direction string

const (
	Improving Direction = "improving"
	Declining Direction = "declining"
	Stable    Direction = "stable"
)

// Report describes energy over a trailing window
type Report struct {
	From     core.Day `json:"from"`
	To       core.Day `json:"to"`
	Days     int      `json:"days"`
	CheckIns int      `json:"checkIns"`

	EnergyMean   float64 `json:"energyMean"`
	EnergyMedian float64 `json:"energyMedian"`
	EnergyStdDev float64 `json:"energyStdDev"`

	// EnergySlope is the fitted change in energy score per day
	EnergySlope float64   `json:"energySlope"`
	Direction   Direction `json:"direction"`

	// EnergyVapeCorrelation is Pearson's r between the energy score and a
	// vaped-that-day indicator, over days with a check-in
	EnergyVapeCorrelation float64 `json:"energyVapeCorrelation"`
	VapeRate              float64 `json:"vapeRate"`
}

// Analyze builds a report over the days trailing window ending today
func Analyze(checkins []wellness.EnergyCheckIn, statuses wellness.DayStatuses, today core.Day, days int) Report {
	if days <= 0 {
		days = DefaultDays
	}
	window := core.Window(today, days)
	report := Report{From: window[0], To: today, Days: days, Direction: Stable}

	byDay := make(map[core.Day]wellness.EnergyCheckIn, len(checkins))
	for _, c := range checkins {
		byDay[c.Date] = c
	}

	var xs, scores, vaped []float64
	vapeDays := 0
	for i, d := range window {
		status := statuses.StatusOn(d)
		if status == wellness.StatusVape {
			vapeDays++
		}
		c, ok := byDay[d]
		if !ok || !c.Energy.Valid() {
			continue
		}
		xs = append(xs, float64(i))
		scores = append(scores, c.Energy.Score())
		if status == wellness.StatusVape {
			vaped = append(vaped, 1)
		} else {
			vaped = append(vaped, 0)
		}
	}
	report.CheckIns = len(scores)
	report.VapeRate = float64(vapeDays) / float64(days)

	if len(scores) == 0 {
		return report
	}
	report.EnergyMean, _ = stats.Mean(scores)
	report.EnergyMedian, _ = stats.Median(scores)
	report.EnergyStdDev, _ = stats.StandardDeviationPopulation(scores)

	if len(scores) >= 2 {
		_, beta := stat.LinearRegression(xs, scores, nil, false)
		report.EnergySlope = finite(beta)
		report.EnergyVapeCorrelation = finite(stat.Correlation(scores, vaped, nil))
	}

	switch {
	case report.EnergySlope > slopeThreshold:
		report.Direction = Improving
	case report.EnergySlope < -slopeThreshold:
		report.Direction = Declining
	}
	return report
}

// finite maps the NaN produced by a constant series to 0
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
