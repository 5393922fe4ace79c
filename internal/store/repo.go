package store

import (
	"context"
	"time"
)

// Session actions recorded in session_events.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
)

// SessionEventData captures a questionnaire session starting or finishing.
type SessionEventData struct {
	SessionID    string
	Action       string
	CatalogTitle string
	Answered     int // answers held when the event was written
}

// AnswerEventData captures one option selection.
type AnswerEventData struct {
	SessionID string
	Key       string
	Option    string
}

// OptionCount is how many sessions finally settled on Option for Key.
type OptionCount struct {
	Key    string
	Option string
	Count  int
}

// EventRepo provides append access to the audit log. Nothing read back from
// it ever seeds a new session.
type EventRepo interface {
	// AppendSessionEvent records a session start or completion.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a single selection. Re-answers append again.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
}

// StatsRepo provides aggregate reads and maintenance over the audit log.
type StatsRepo interface {
	// OptionCounts tallies the last answer each session gave per key.
	OptionCounts(ctx context.Context) ([]OptionCount, error)

	// SessionCount counts session events with the given action.
	SessionCount(ctx context.Context, action string) (int, error)

	// LastActivity returns the timestamp of the newest event, or the zero
	// time when the log is empty.
	LastActivity(ctx context.Context) (time.Time, error)

	// Reset deletes every recorded event.
	Reset(ctx context.Context) error
}
