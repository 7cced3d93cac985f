package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ProfileDocument is the whole-profile JSON document persisted as a
// single row. The profile package owns its contents; the store treats
// it as opaque JSON with a version marker for future migrations.
type ProfileDocument struct {
	Version int            `json:"version"`
	Body    map[string]any `json:"body"`
}

// ProfileRow is a point-in-time save of the learner profile.
type ProfileRow struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      ProfileDocument
}

// ProfileRepo manages whole-document profile saves.
type ProfileRepo interface {
	// Save stores a new profile row.
	Save(ctx context.Context, row *ProfileRow) error

	// Latest returns the most recent profile row, or nil if none exist.
	Latest(ctx context.Context) (*ProfileRow, error)

	// Prune deletes all but the N most recent rows.
	Prune(ctx context.Context, keep int) error
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID      string
	SetID          string
	Mode           string
	Action         string // "start" or "end"
	CardsSeen      int
	CorrectAnswers int
	DurationSecs   int
}

// AnswerEventData captures a single answer within a session.
type AnswerEventData struct {
	SessionID     string
	SetID         string
	CardID        string
	Mode          string
	Prompt        string
	CorrectAnswer string
	GivenAnswer   string
	Correct       bool
	TimeMs        int
	QuestionKind  string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a persisted LLM request event.
type LLMRequestEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// CardAccuracy summarizes answer history for one card.
type CardAccuracy struct {
	CardID   string
	Answered int
	Correct  int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one answered question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// LastStudied returns the timestamp of the most recent answer for a
	// set, or the zero time when the set has never been studied.
	LastStudied(ctx context.Context, setID string) (time.Time, error)

	// SetAccuracy returns per-card answer counts for a set.
	SetAccuracy(ctx context.Context, setID string) ([]CardAccuracy, error)

	// RecentMisses returns the card IDs of the most recent incorrect
	// answers for a set, newest last, capped at lastN.
	RecentMisses(ctx context.Context, setID string, lastN int) ([]string, error)

	// LLMRequests returns LLM request events, newest first.
	LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)
}
