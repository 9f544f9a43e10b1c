package main

import (
	"fmt"
	"io"
	"strings"

	"lifeos/app"
	"lifeos/domain/insight"
	"lifeos/domain/wellness"
	"lifeos/internal/trends"

	"github.com/fatih/color"
)

var (
	header  = color.New(color.FgCyan, color.Bold).SprintFunc()
	success = color.New(color.FgGreen).SprintFunc()
	gray    = color.New(color.FgHiBlack).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
)

func priorityColor(p insight.Priority) func(a ...interface{}) string {
	switch p {
	case insight.PriorityHigh:
		return red
	case insight.PriorityMedium:
		return yellow
	}
	return gray
}

func energyColor(e wellness.EnergyLevel) func(a ...interface{}) string {
	switch e {
	case wellness.EnergyHigh:
		return success
	case wellness.EnergyLow:
		return red
	}
	return yellow
}

func statusColor(s wellness.SmokeStatus) func(a ...interface{}) string {
	switch s {
	case wellness.StatusClean:
		return success
	case wellness.StatusVape:
		return yellow
	}
	return red
}

func printInsights(w io.Writer, insights []insight.Insight) {
	if len(insights) == 0 {
		fmt.Fprintf(w, "  %s\n", gray("Not enough data yet. Keep checking in."))
		return
	}
	for i, in := range insights {
		tag := priorityColor(in.Priority)(fmt.Sprintf("[%s]", in.Priority))
		fmt.Fprintf(w, "%d. %s %s %s\n", i+1, tag, in.Title, gray("("+string(in.Type)+")"))
		fmt.Fprintf(w, "   %s\n", in.Description)
	}
}

func printStats(w io.Writer, s insight.Stats) {
	fmt.Fprintf(w, "%s\n", yellow("This week:"))
	fmt.Fprintf(w, "  Avg energy:      %.1f / 3\n", s.AvgEnergy)
	if s.DominantNervousSystemState != "" {
		fmt.Fprintf(w, "  Nervous system:  %s\n", s.DominantNervousSystemState)
	}
	fmt.Fprintf(w, "  Clean days:      %s\n", success(s.CleanDays))
	fmt.Fprintf(w, "  Vape days:       %d\n", s.VapeDays)
	fmt.Fprintf(w, "  Cigarette days:  %d\n", s.CigaretteDays)
	fmt.Fprintf(w, "  Expression days: %d\n", s.ExpressionDays)

	if len(s.TopFactors) > 0 {
		parts := make([]string, 0, len(s.TopFactors))
		for _, f := range s.TopFactors {
			parts = append(parts, fmt.Sprintf("%s (%d)", f.Factor, f.Count))
		}
		fmt.Fprintf(w, "  Top factors:     %s\n", strings.Join(parts, ", "))
	}
}

func printTrends(w io.Writer, r trends.Report) {
	fmt.Fprintf(w, "Window:       %s to %s (%d days, %d check-ins)\n", r.From, r.To, r.Days, r.CheckIns)
	if r.CheckIns == 0 {
		fmt.Fprintf(w, "  %s\n", gray("No check-ins in this window"))
		return
	}

	direction := gray(string(r.Direction))
	switch r.Direction {
	case trends.Improving:
		direction = success(string(r.Direction))
	case trends.Declining:
		direction = red(string(r.Direction))
	}

	fmt.Fprintf(w, "Energy:       mean %.2f, median %.2f, sd %.2f\n", r.EnergyMean, r.EnergyMedian, r.EnergyStdDev)
	fmt.Fprintf(w, "Direction:    %s (%+.3f per day)\n", direction, r.EnergySlope)
	fmt.Fprintf(w, "Vape rate:    %.0f%%\n", r.VapeRate*100)
	fmt.Fprintf(w, "Energy ~ vape: r = %.2f\n", r.EnergyVapeCorrelation)
}

func printTracker(w io.Writer, s wellness.SmokeFreeStats) {
	if s.QuitDate.IsZero() {
		fmt.Fprintf(w, "  %s\n", gray("No quit date set"))
		return
	}

	fmt.Fprintf(w, "Quit date:          %s (%d days ago)\n", s.QuitDate, s.DaysSinceQuit)
	fmt.Fprintf(w, "Vape-free streak:   %s days\n", success(s.VapeFreeStreak))
	fmt.Fprintf(w, "Fully clean streak: %d days\n", s.FullyCleanStreak)
	fmt.Fprintf(w, "Longest clean run:  %d days\n", s.LongestCleanRun)
	fmt.Fprintf(w, "Cigarettes avoided: %d\n", s.CigarettesAvoided)
	fmt.Fprintf(w, "Money saved:        $%.2f\n", s.MoneySaved)
	fmt.Fprintf(w, "Life regained:      %dd %dh\n", s.LifeRegainedDays, s.LifeRegainedHours)
	fmt.Fprintf(w, "Completion rate:    %d%%\n", s.CompletionRate)

	if s.NextMilestone.Days > 0 {
		fmt.Fprintf(w, "\n%s %s in %d days: %s\n",
			yellow("Next milestone:"), s.NextMilestone.Label, s.NextMilestone.Days-s.DaysSinceQuit, s.NextMilestone.Description)
	}
}

func urgeColor(i wellness.UrgeIntensity) func(a ...interface{}) string {
	switch {
	case i >= wellness.UrgeStrong:
		return red
	case i == wellness.UrgeMedium:
		return yellow
	}
	return success
}

func printUrges(w io.Writer, page *app.UrgeLog) {
	fmt.Fprintf(w, "%d today, %d in range\n", page.Today, page.Total)
	if len(page.Urges) == 0 {
		fmt.Fprintf(w, "  %s\n", gray("No urges logged yet"))
		return
	}
	for _, u := range page.Urges {
		line := fmt.Sprintf("  %s %-10s", u.At.Format("2006-01-02 15:04"), urgeColor(u.Intensity)(u.Intensity.Label()))
		if u.Trigger != "" {
			line += " trigger: " + u.Trigger
		}
		if u.Replacement != "" {
			line += " instead: " + u.Replacement
		}
		fmt.Fprintln(w, line)
		if u.Notes != "" {
			fmt.Fprintf(w, "      %s\n", gray(u.Notes))
		}
	}
}
