package storage

import "time"

// TurnRecord is one completed relay turn: the user's utterance and the
// generated reply, plus completion metadata. Records are appended in
// chronological order.
type TurnRecord struct {
	Timestamp         time.Time `json:"timestamp"`
	TraceID           string    `json:"trace_id"`
	ChannelID         string    `json:"channel_id"`
	UserID            string    `json:"user_id"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response"`
	Model             string    `json:"model,omitempty"`
	PromptTokens      int       `json:"prompt_tokens,omitempty"`
	CompletionTokens  int       `json:"completion_tokens,omitempty"`
	TotalTokens       int       `json:"total_tokens,omitempty"`
}

// Recorder abstracts persistence of turn records.
// Implementations can be file-based, database, etc.
// LoadTurns should return records in chronological order.
// AppendTurn should atomically append a new record.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendTurn(rec TurnRecord) error
	LoadTurns() ([]TurnRecord, error)
}
