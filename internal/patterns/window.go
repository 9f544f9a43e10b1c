package patterns

import (
	"sort"

	"lifeos/domain/core"
	"lifeos/domain/wellness"

	"github.com/montanaflynn/stats"
)

const (
	weekDays   = 7
	monthDays  = 30
	streakDays = 365
)

// checkInIndex maps each day to its check-in. Later duplicates win.
func checkInIndex(checkins []wellness.EnergyCheckIn) map[core.Day]wellness.EnergyCheckIn {
	idx := make(map[core.Day]wellness.EnergyCheckIn, len(checkins))
	for _, c := range checkins {
		idx[c.Date] = c
	}
	return idx
}

func expressionIndex(expressions []wellness.SelfExpression) map[core.Day]wellness.SelfExpression {
	idx := make(map[core.Day]wellness.SelfExpression, len(expressions))
	for _, e := range expressions {
		idx[e.Date] = e
	}
	return idx
}

// checkInWindow returns the check-ins dated within the n days ending at today, oldest first.
func checkInWindow(checkins []wellness.EnergyCheckIn, today core.Day, n int) []wellness.EnergyCheckIn {
	idx := checkInIndex(checkins)
	out := make([]wellness.EnergyCheckIn, 0, n)
	for _, day := range core.Window(today, n) {
		if c, ok := idx[day]; ok {
			out = append(out, c)
		}
	}
	return out
}

// expressionWindow returns the expressions dated within the n days ending at today, oldest first.
func expressionWindow(expressions []wellness.SelfExpression, today core.Day, n int) []wellness.SelfExpression {
	idx := expressionIndex(expressions)
	out := make([]wellness.SelfExpression, 0, n)
	for _, day := range core.Window(today, n) {
		if e, ok := idx[day]; ok {
			out = append(out, e)
		}
	}
	return out
}

type dayStatus struct {
	Day    core.Day
	Status wellness.SmokeStatus
}

// statusWindow probes n days ending at today, oldest first. Days before floor
// are dropped when floor is set.
func statusWindow(statuses wellness.DayStatuses, today core.Day, n int, floor core.Day) []dayStatus {
	out := make([]dayStatus, 0, n)
	for _, day := range core.Window(today, n) {
		if !floor.IsZero() && day.Before(floor) {
			continue
		}
		out = append(out, dayStatus{Day: day, Status: statuses.StatusOn(day)})
	}
	return out
}

type statusCounts struct {
	Clean, Cigarette, Vape int
}

func countStatuses(days []dayStatus) statusCounts {
	var c statusCounts
	for _, d := range days {
		switch d.Status {
		case wellness.StatusClean:
			c.Clean++
		case wellness.StatusCigarette:
			c.Cigarette++
		case wellness.StatusVape:
			c.Vape++
		}
	}
	return c
}

// averageEnergy is the mean 3/2/1 score over check-ins with a known energy
// level. ok is false when no check-in in the window has one.
func averageEnergy(checkins []wellness.EnergyCheckIn) (avg float64, ok bool) {
	scores := make(stats.Float64Data, 0, len(checkins))
	for _, c := range checkins {
		if !c.Energy.Valid() {
			continue
		}
		scores = append(scores, c.Energy.Score())
	}
	mean, err := stats.Mean(scores)
	if err != nil {
		return 0, false
	}
	return mean, true
}

// tally counts strings and remembers first-seen order for tie breaking.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if key == "" {
		return
	}
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// addSet counts each distinct tag of one record once.
func (t *tally) addSet(tags []string) {
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		t.add(tag)
	}
}

type keyCount struct {
	Key   string
	Count int
}

// top returns up to n keys by descending count; ties keep first-seen order.
func (t *tally) top(n int) []keyCount {
	out := make([]keyCount, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, keyCount{Key: k, Count: t.counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
