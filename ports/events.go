package ports

import "time"

// Event types pushed to live dashboard clients
const (
	EventCheckInRecorded  = "checkin.recorded"
	EventStatusChanged    = "status.changed"
	EventExpressionLogged = "expression.recorded"
	EventJournalChanged   = "journal.changed"
	EventGoalChanged      = "goal.changed"
	EventDigestCreated    = "digest.created"
	EventSnapshotImported = "snapshot.imported"
	EventUrgeChanged      = "urge.changed"
)

// Event is a change notification for live clients
type Event struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// EventBroadcaster delivers events without blocking the caller
type EventBroadcaster interface {
	Broadcast(event Event)
}
