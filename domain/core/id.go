package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	JournalEntryID ID
	GoalID         ID
	DigestID       ID
	UrgeID         ID
)

func (id JournalEntryID) String() string { return ID(id).String() }
func (id GoalID) String() string         { return ID(id).String() }
func (id DigestID) String() string       { return ID(id).String() }
func (id UrgeID) String() string         { return ID(id).String() }

// ParseID parses a non-empty identifier
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: id cannot be empty", ErrInvalidID)
	}
	return ID(s), nil
}

// ParseJournalEntryID parses a string into JournalEntryID
func ParseJournalEntryID(s string) (JournalEntryID, error) {
	id, err := ParseID(s)
	return JournalEntryID(id), err
}

// ParseGoalID parses a string into GoalID
func ParseGoalID(s string) (GoalID, error) {
	id, err := ParseID(s)
	return GoalID(id), err
}

// ParseUrgeID parses a string into UrgeID
func ParseUrgeID(s string) (UrgeID, error) {
	id, err := ParseID(s)
	return UrgeID(id), err
}
