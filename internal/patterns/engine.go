package patterns

import (
	"time"

	"lifeos/domain/core"
	"lifeos/domain/insight"
)

// Options tune aggregation. The zero value reproduces the plain analyzers.
type Options struct {
	// ClampToQuitDate drops days before the quit date from the 30-day
	// window and stops the streak at the quit date.
	ClampToQuitDate bool
	// DedupeInsights removes repeated (type, title) pairs before sorting.
	DedupeInsights bool
	// Location decides which calendar day "now" falls on. Nil means time.Local.
	Location *time.Location
}

// Engine binds the analyzers to a clock.
type Engine struct {
	clock core.Clock
	opts  Options
}

// NewEngine creates an engine. A nil clock uses the system clock.
func NewEngine(clock core.Clock, opts Options) *Engine {
	if clock == nil {
		clock = core.SystemClock
	}
	return &Engine{clock: clock, opts: opts}
}

// Today is the reference day every window ends at.
func (e *Engine) Today() core.Day {
	return core.Today(e.clock, e.opts.Location)
}

// Options returns the engine configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// WeeklySummary summarizes in as of today.
func (e *Engine) WeeklySummary(in Input) insight.WeeklySummary {
	return e.SummaryAsOf(in, e.Today())
}

// SummaryAsOf summarizes in as of an explicit day.
func (e *Engine) SummaryAsOf(in Input, today core.Day) insight.WeeklySummary {
	return summarize(in, today, e.opts)
}

// Dashboard returns the top three insights as of today.
func (e *Engine) Dashboard(in Input) []insight.Insight {
	return dashboard(e.WeeklySummary(in))
}

// Streak returns the current vape-free streak as of today.
func (e *Engine) Streak(in Input) int {
	var floor core.Day
	if e.opts.ClampToQuitDate {
		floor = in.QuitDate
	}
	return currentStreak(in.DayStatuses, e.Today(), floor)
}
