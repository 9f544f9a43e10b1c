package wellness

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"lifeos/domain/core"
)

// UrgeIntensity rates a craving from 1 (mild) to 5 (extreme)
type UrgeIntensity int

const (
	UrgeMild UrgeIntensity = iota + 1
	UrgeLowMedium
	UrgeMedium
	UrgeStrong
	UrgeExtreme
)

// DefaultUrgeIntensity is preselected when logging an urge
const DefaultUrgeIntensity = UrgeMedium

var urgeLabels = map[UrgeIntensity]string{
	UrgeMild:      "Mild",
	UrgeLowMedium: "Low-Medium",
	UrgeMedium:    "Medium",
	UrgeStrong:    "Strong",
	UrgeExtreme:   "Extreme",
}

// Valid reports whether i is on the 1..5 scale
func (i UrgeIntensity) Valid() bool {
	return i >= UrgeMild && i <= UrgeExtreme
}

func (i UrgeIntensity) Label() string {
	if l, ok := urgeLabels[i]; ok {
		return l
	}
	return "Unknown"
}

// Suggestions offered by the urge form
var (
	CommonUrgeTriggers = []string{
		"Stress", "Boredom", "Social situation", "After meal", "Driving",
		"Alcohol", "Anxiety", "Saw someone vaping", "Break at work", "Other",
	}
	CommonUrgeReplacements = []string{
		"Deep breathing", "Went for walk", "Drank water", "Chewed gum", "Called someone",
		"Distracted myself", "Exercise", "Ate snack", "Journaled", "Did nothing (rode it out)",
	}
)

// UrgeEntry is one logged craving and what was done instead
type UrgeEntry struct {
	ID          core.UrgeID   `json:"id" yaml:"id"`
	At          time.Time     `json:"timestamp" yaml:"timestamp"`
	Day         core.Day      `json:"day" yaml:"day"`
	Intensity   UrgeIntensity `json:"intensity" yaml:"intensity"`
	Trigger     string        `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Replacement string        `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	Notes       string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Normalize trims the free-text fields
func (u *UrgeEntry) Normalize() {
	u.Trigger = strings.TrimSpace(u.Trigger)
	u.Replacement = strings.TrimSpace(u.Replacement)
	u.Notes = strings.TrimSpace(u.Notes)
}

// Validate checks the day, time and intensity
func (u UrgeEntry) Validate() error {
	if u.Day.IsZero() {
		return fmt.Errorf("%w: %q", core.ErrInvalidDay, u.Day)
	}
	if u.At.IsZero() {
		return fmt.Errorf("%w: missing timestamp", core.ErrInvalidUrge)
	}
	if !u.Intensity.Valid() {
		return fmt.Errorf("%w: intensity %d is outside 1..5", core.ErrInvalidUrge, u.Intensity)
	}
	return nil
}

// SortUrges orders urges newest first
func SortUrges(urges []UrgeEntry) {
	sort.SliceStable(urges, func(i, j int) bool {
		return urges[i].At.After(urges[j].At)
	})
}

// UrgeCounts tallies urges per day
func UrgeCounts(urges []UrgeEntry) map[core.Day]int {
	counts := make(map[core.Day]int)
	for _, u := range urges {
		counts[u.Day]++
	}
	return counts
}
