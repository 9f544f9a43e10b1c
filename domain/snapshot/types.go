package snapshot

import (
	"fmt"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/domain/journal"
	"lifeos/domain/wellness"
)

// CurrentVersion is the snapshot format written by this build
const CurrentVersion = 1

// Snapshot is a portable copy of everything a user has tracked
type Snapshot struct {
	Version     int                        `json:"version" yaml:"version"`
	ExportedAt  time.Time                  `json:"exportedAt" yaml:"exportedAt"`
	Profile     *wellness.SmokeFreeProfile `json:"profile,omitempty" yaml:"profile,omitempty"`
	CheckIns    []wellness.EnergyCheckIn   `json:"checkIns" yaml:"checkIns"`
	DayStatuses wellness.DayStatuses       `json:"dayStatuses" yaml:"dayStatuses"`
	Expressions []wellness.SelfExpression  `json:"expressions" yaml:"expressions"`
	Journal     []*journal.Entry           `json:"journal" yaml:"journal"`
	Goals       []*goal.Goal               `json:"goals" yaml:"goals"`
	Urges       []wellness.UrgeEntry       `json:"urges" yaml:"urges"`
}

// New returns an empty snapshot stamped with the current version
func New(exportedAt time.Time) *Snapshot {
	return &Snapshot{
		Version:     CurrentVersion,
		ExportedAt:  exportedAt,
		CheckIns:    []wellness.EnergyCheckIn{},
		DayStatuses: wellness.DayStatuses{},
		Expressions: []wellness.SelfExpression{},
		Journal:     []*journal.Entry{},
		Goals:       []*goal.Goal{},
		Urges:       []wellness.UrgeEntry{},
	}
}

// Counts summarizes how many records a snapshot holds
type Counts struct {
	CheckIns    int `json:"checkIns"`
	DayStatuses int `json:"dayStatuses"`
	Expressions int `json:"expressions"`
	Journal     int `json:"journal"`
	Goals       int `json:"goals"`
	Urges       int `json:"urges"`
}

func (s *Snapshot) Counts() Counts {
	return Counts{
		CheckIns:    len(s.CheckIns),
		DayStatuses: len(s.DayStatuses),
		Expressions: len(s.Expressions),
		Journal:     len(s.Journal),
		Goals:       len(s.Goals),
		Urges:       len(s.Urges),
	}
}

func (c Counts) String() string {
	return fmt.Sprintf("%d check-ins, %d day statuses, %d expressions, %d journal entries, %d goals, %d urges",
		c.CheckIns, c.DayStatuses, c.Expressions, c.Journal, c.Goals, c.Urges)
}

// Validate rejects snapshots from a newer format and malformed records
func (s *Snapshot) Validate() error {
	if s.Version > CurrentVersion {
		return fmt.Errorf("%w: snapshot version %d is newer than supported version %d", core.ErrValidation, s.Version, CurrentVersion)
	}
	for _, c := range s.CheckIns {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("check-in %s: %w", c.Date, err)
		}
	}
	for day, status := range s.DayStatuses {
		if day.IsZero() || !status.Valid() {
			return fmt.Errorf("day status %s=%q: %w", day, status, core.ErrInvalidStatus)
		}
	}
	for _, e := range s.Expressions {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("self-expression %s: %w", e.Date, err)
		}
	}
	for _, e := range s.Journal {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("journal entry %s: %w", e.ID, err)
		}
	}
	for _, g := range s.Goals {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("goal %s: %w", g.ID, err)
		}
	}
	for _, u := range s.Urges {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("urge %s: %w", u.ID, err)
		}
	}
	return nil
}
