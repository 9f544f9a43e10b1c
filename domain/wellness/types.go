package wellness

import (
	"fmt"
	"strings"

	"lifeos/domain/core"
)

// EnergyLevel is the self-reported energy of a day
type EnergyLevel string

const (
	EnergyHigh   EnergyLevel = "high"
	EnergyMedium EnergyLevel = "medium"
	EnergyLow    EnergyLevel = "low"
)

// Score maps energy onto 3/2/1. Unknown levels score 0.
func (e EnergyLevel) Score() float64 {
	switch e {
	case EnergyHigh:
		return 3
	case EnergyMedium:
		return 2
	case EnergyLow:
		return 1
	}
	return 0
}

// Valid reports whether e is a known level
func (e EnergyLevel) Valid() bool {
	return e.Score() > 0
}

// NervousSystemState is the self-reported regulation state of a day
type NervousSystemState string

const (
	NervousCalm    NervousSystemState = "calm"
	NervousWired   NervousSystemState = "wired"
	NervousAnxious NervousSystemState = "anxious"
	NervousNumb    NervousSystemState = "numb"
)

// Valid reports whether s is a known state
func (s NervousSystemState) Valid() bool {
	switch s {
	case NervousCalm, NervousWired, NervousAnxious, NervousNumb:
		return true
	}
	return false
}

// SmokeStatus classifies a day in the smoke-free tracker
type SmokeStatus string

const (
	StatusClean     SmokeStatus = "clean"
	StatusCigarette SmokeStatus = "cigarette"
	StatusVape      SmokeStatus = "vape"
)

// Valid reports whether s is a known status
func (s SmokeStatus) Valid() bool {
	switch s {
	case StatusClean, StatusCigarette, StatusVape:
		return true
	}
	return false
}

// ParseSmokeStatus parses a status string, case-insensitively
func ParseSmokeStatus(s string) (SmokeStatus, error) {
	status := SmokeStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidStatus, s)
	}
	return status, nil
}

// EnergyCheckIn is one day's energy and nervous-system self-assessment
type EnergyCheckIn struct {
	Date          core.Day           `json:"date" yaml:"date"`
	Energy        EnergyLevel        `json:"energy" yaml:"energy"`
	NervousSystem NervousSystemState `json:"nervousSystem" yaml:"nervousSystem"`
	Factors       []string           `json:"factors" yaml:"factors,omitempty"`
	Note          string             `json:"note,omitempty" yaml:"note,omitempty"`
}

// Validate checks the fields a caller can get wrong
func (c EnergyCheckIn) Validate() error {
	if c.Date.IsZero() {
		return fmt.Errorf("%w: %q", core.ErrInvalidDay, c.Date)
	}
	if !c.Energy.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidEnergy, c.Energy)
	}
	if !c.NervousSystem.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidNervousSystem, c.NervousSystem)
	}
	return nil
}

// DayStatuses is the sparse date → status map of the smoke-free tracker.
// A day without an entry is clean.
type DayStatuses map[core.Day]SmokeStatus

// StatusOn returns the status of day, defaulting to clean
func (m DayStatuses) StatusOn(day core.Day) SmokeStatus {
	if s, ok := m[day]; ok && s != "" {
		return s
	}
	return StatusClean
}

// SelfExpression is one day's self-expression record
type SelfExpression struct {
	Date      core.Day `json:"date" yaml:"date"`
	Expressed bool     `json:"expressed" yaml:"expressed"`
	Types     []string `json:"types" yaml:"types,omitempty"`
	Note      string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// Validate checks the record date
func (e SelfExpression) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: %q", core.ErrInvalidDay, e.Date)
	}
	return nil
}

// SmokeFreeProfile holds the quit date and the habit being replaced
type SmokeFreeProfile struct {
	QuitDate          core.Day `json:"quitDate" yaml:"quitDate"`
	CigarettesPerDay  int      `json:"cigarettesPerDay" yaml:"cigarettesPerDay"`
	CostPerPack       float64  `json:"costPerPack" yaml:"costPerPack"`
	CigarettesPerPack int      `json:"cigarettesPerPack" yaml:"cigarettesPerPack"`
}

// Profile defaults used when a user has not configured their habit
const (
	DefaultCigarettesPerDay  = 10
	DefaultCostPerPack       = 10.0
	DefaultCigarettesPerPack = 20
)

// WithDefaults fills zero habit fields
func (p SmokeFreeProfile) WithDefaults() SmokeFreeProfile {
	if p.CigarettesPerDay <= 0 {
		p.CigarettesPerDay = DefaultCigarettesPerDay
	}
	if p.CostPerPack <= 0 {
		p.CostPerPack = DefaultCostPerPack
	}
	if p.CigarettesPerPack <= 0 {
		p.CigarettesPerPack = DefaultCigarettesPerPack
	}
	return p
}

// StatusTotals counts days by status
type StatusTotals struct {
	CleanDays     int `json:"cleanDays" yaml:"cleanDays"`
	CigaretteDays int `json:"cigaretteDays" yaml:"cigaretteDays"`
	VapeDays      int `json:"vapeDays" yaml:"vapeDays"`
	TotalDays     int `json:"totalDays" yaml:"totalDays"`
}

// RecoveryMilestone is a health checkpoint reached after a vape-free run
type RecoveryMilestone struct {
	Days        int    `json:"days" yaml:"days"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// SmokeFreeStats is the tracker view derived from the profile and day statuses
type SmokeFreeStats struct {
	QuitDate          core.Day          `json:"quitDate"`
	DaysSinceQuit     int               `json:"daysSinceQuit"`
	VapeFreeStreak    int               `json:"vapeFreeStreak"`
	FullyCleanStreak  int               `json:"fullyCleanStreak"`
	LongestCleanRun   int               `json:"longestCleanRun"`
	CigarettesAvoided int               `json:"cigarettesAvoided"`
	MoneySaved        float64           `json:"moneySaved"`
	LifeRegainedDays  int               `json:"lifeRegainedDays"`
	LifeRegainedHours int               `json:"lifeRegainedHours"`
	CompletionRate    int               `json:"completionRate"`
	YearTotals        StatusTotals      `json:"yearTotals"`
	NextMilestone     RecoveryMilestone `json:"nextMilestone"`
}
