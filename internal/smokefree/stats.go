// Package smokefree derives quit-tracker statistics from a profile and the
// sparse day-status map. Days without a status count as clean.
package smokefree

import (
	"math"

	"lifeos/domain/core"
	"lifeos/domain/wellness"
)

// MinutesPerCigarette is the life expectancy cost of one cigarette. Life
// regained counts the cigarettes avoided over the current vape-free streak.
const MinutesPerCigarette = 11

// CompletionWindow is the trailing window of the completion rate
const CompletionWindow = 30

// Daily savings by status. A cigarette day still saves the habit's daily
// cost minus what the cigarettes cost; a vape day saves nothing.
const (
	CleanDaySaving     = 8.0
	CigaretteDaySaving = 6.0
	VapeDaySaving      = 0.0
)

// Milestones are the recovery checkpoints, shortest first
var Milestones = []wellness.RecoveryMilestone{
	{Days: 1, Label: "24 Hours", Description: "Carbon monoxide leaves your body"},
	{Days: 3, Label: "3 Days", Description: "Breathing becomes easier"},
	{Days: 7, Label: "1 Week", Description: "Sense of taste improving"},
	{Days: 30, Label: "1 Month", Description: "Lung function improving"},
	{Days: 90, Label: "3 Months", Description: "Circulation improving"},
	{Days: 180, Label: "6 Months", Description: "Coughing decreases significantly"},
	{Days: 365, Label: "1 Year", Description: "Heart disease risk cut in half"},
}

// Compute builds the tracker stats as of today. A missing or future quit
// date yields zero counters.
func Compute(profile wellness.SmokeFreeProfile, statuses wellness.DayStatuses, today core.Day) wellness.SmokeFreeStats {
	profile = profile.WithDefaults()
	stats := wellness.SmokeFreeStats{
		QuitDate:      profile.QuitDate,
		NextMilestone: Milestones[0],
	}
	quit := profile.QuitDate
	if quit.IsZero() || quit.After(today) {
		return stats
	}

	stats.DaysSinceQuit = today.DaysSince(quit)
	stats.VapeFreeStreak = streak(statuses, quit, today, func(s wellness.SmokeStatus) bool {
		return s != wellness.StatusVape
	})
	stats.FullyCleanStreak = streak(statuses, quit, today, func(s wellness.SmokeStatus) bool {
		return s == wellness.StatusClean
	})
	stats.LongestCleanRun = LongestCleanRun(statuses, quit, today)

	stats.MoneySaved = MoneySaved(statuses, quit, today)
	stats.CigarettesAvoided = stats.VapeFreeStreak * profile.CigarettesPerDay
	minutes := stats.CigarettesAvoided * MinutesPerCigarette
	stats.LifeRegainedDays = minutes / (60 * 24)
	stats.LifeRegainedHours = minutes / 60

	stats.CompletionRate = CompletionRate(statuses, quit, today)
	stats.YearTotals = YearTotals(statuses, quit, today)
	stats.NextMilestone = NextMilestone(stats.VapeFreeStreak)
	return stats
}

// streak counts consecutive days ending today, never reaching before quit
func streak(statuses wellness.DayStatuses, quit, today core.Day, keep func(wellness.SmokeStatus) bool) int {
	n := 0
	for d := today; !d.Before(quit); d = d.AddDays(-1) {
		if !keep(statuses.StatusOn(d)) {
			break
		}
		n++
	}
	return n
}

// MoneySaved totals the daily savings of every day from quit through today
func MoneySaved(statuses wellness.DayStatuses, quit, today core.Day) float64 {
	saved := 0.0
	for _, d := range core.Range(quit, today) {
		switch statuses.StatusOn(d) {
		case wellness.StatusClean:
			saved += CleanDaySaving
		case wellness.StatusCigarette:
			saved += CigaretteDaySaving
		case wellness.StatusVape:
			saved += VapeDaySaving
		}
	}
	return saved
}

// LongestCleanRun is the longest run of clean days between quit and today
func LongestCleanRun(statuses wellness.DayStatuses, quit, today core.Day) int {
	longest, run := 0, 0
	for _, d := range core.Range(quit, today) {
		if statuses.StatusOn(d) != wellness.StatusClean {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

// CompletionRate is the rounded percentage of clean days over the trailing
// window, starting no earlier than quit.
func CompletionRate(statuses wellness.DayStatuses, quit, today core.Day) int {
	start := today.AddDays(-(CompletionWindow - 1))
	if quit.After(start) {
		start = quit
	}
	totals := countRange(statuses, start, today)
	if totals.TotalDays == 0 {
		return 0
	}
	return int(math.Round(float64(totals.CleanDays) / float64(totals.TotalDays) * 100))
}

// YearTotals counts statuses from the later of quit and January 1st
func YearTotals(statuses wellness.DayStatuses, quit, today core.Day) wellness.StatusTotals {
	start := core.Day(today.String()[:4] + "-01-01")
	if quit.After(start) {
		start = quit
	}
	return countRange(statuses, start, today)
}

func countRange(statuses wellness.DayStatuses, start, end core.Day) wellness.StatusTotals {
	var totals wellness.StatusTotals
	for _, d := range core.Range(start, end) {
		switch statuses.StatusOn(d) {
		case wellness.StatusClean:
			totals.CleanDays++
		case wellness.StatusCigarette:
			totals.CigaretteDays++
		case wellness.StatusVape:
			totals.VapeDays++
		}
	}
	totals.TotalDays = totals.CleanDays + totals.CigaretteDays + totals.VapeDays
	return totals
}

// NextMilestone is the first milestone beyond days, or the last one
func NextMilestone(days int) wellness.RecoveryMilestone {
	for _, m := range Milestones {
		if m.Days > days {
			return m
		}
	}
	return Milestones[len(Milestones)-1]
}

// FillClean marks every day from quit through today as clean
func FillClean(quit, today core.Day) wellness.DayStatuses {
	days := core.Range(quit, today)
	statuses := make(wellness.DayStatuses, len(days))
	for _, d := range days {
		statuses[d] = wellness.StatusClean
	}
	return statuses
}
