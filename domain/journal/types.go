package journal

import (
	"fmt"
	"strings"
	"time"

	"lifeos/domain/core"
)

// Mood is the optional mood tag of an entry
type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodDown     Mood = "down"
	MoodTerrible Mood = "terrible"
)

// Valid reports whether m is empty or a known mood
func (m Mood) Valid() bool {
	switch m {
	case "", MoodGreat, MoodGood, MoodOkay, MoodDown, MoodTerrible:
		return true
	}
	return false
}

// Entry is a markdown journal entry
type Entry struct {
	ID        core.JournalEntryID `json:"id" yaml:"id"`
	Date      core.Day            `json:"date" yaml:"date"`
	Content   string              `json:"content" yaml:"content"`
	Mood      Mood                `json:"mood,omitempty" yaml:"mood,omitempty"`
	Tags      []string            `json:"tags" yaml:"tags,omitempty"`
	CreatedAt time.Time           `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" yaml:"updatedAt"`
}

// Filter narrows journal listings. Zero fields match everything.
type Filter struct {
	From  core.Day
	To    core.Day
	Mood  Mood
	Tag   string
	Query string
	Limit int
}

// Validate checks an entry before it is stored
func (e Entry) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: %q", core.ErrInvalidDay, e.Date)
	}
	if strings.TrimSpace(e.Content) == "" {
		return core.NewValidationError("content", "must not be empty")
	}
	if !e.Mood.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidMood, e.Mood)
	}
	return nil
}

// Matches applies the in-memory part of a filter
func (f Filter) Matches(e Entry) bool {
	if !f.From.IsZero() && e.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.Date.After(f.To) {
		return false
	}
	if f.Mood != "" && e.Mood != f.Mood {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, t := range e.Tags {
			if strings.EqualFold(t, f.Tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(e.Content), strings.ToLower(f.Query)) {
		return false
	}
	return true
}
