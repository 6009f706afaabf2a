package models

import "time"

// SessionState tags where a conversation currently is.
type SessionState string

const (
	StateGathering  SessionState = "gathering"
	StateConfirming SessionState = "confirming"
	StateSearching  SessionState = "searching"
	StatePresenting SessionState = "presenting"
	StateModifying  SessionState = "modifying"
	StateError      SessionState = "error"
)

// ConversationSession owns one travel intent accumulator per user dialogue.
// It is mutated only by the dialogue service, one turn at a time.
type ConversationSession struct {
	ID        string       `json:"id"`
	Intent    TravelIntent `json:"intent"`
	State     SessionState `json:"state"`
	Turn      int          `json:"turn"`
	LastAsked Slot         `json:"last_asked,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TurnRecord is one persisted exchange of a conversation transcript.
type TurnRecord struct {
	SessionID string    `bson:"session_id" json:"session_id"`
	Turn      int       `bson:"turn" json:"turn"`
	Utterance string    `bson:"utterance" json:"utterance"`
	Reply     string    `bson:"reply" json:"reply"`
	Kind      string    `bson:"kind" json:"kind"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
