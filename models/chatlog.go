// api/internal/models/chatlog.go
package models

import (
	"fmt"
	"time"
)

// Message roles accepted in raw conversation payloads.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Closed sentiment set. The chat_logs table enforces the same set with a
// CHECK constraint, so anything else is rejected at write time.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// Conversation categories assigned by the classifier.
const (
	CategoryTechnicalSupport   = "Technical Support"
	CategoryBillingQuestion    = "Billing Question"
	CategoryGeneralInformation = "General Information"
	CategoryAPIQuestions       = "API Questions"
)

// ConversationMessage is one message of a raw conversation payload.
type ConversationMessage struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

// ConversationInput is the raw, untrusted ingestion unit:
// {"id": "...", "messages": [{"content": "...", "role": "user"|"assistant"}, ...]}
type ConversationInput struct {
	ID       string                `json:"id"`
	Messages []ConversationMessage `json:"messages"`
}

// ChatLog is one persisted analytics row derived from a conversation.
// Rows are written once by the ingestion pipeline and never updated.
type ChatLog struct {
	ID                   string    `json:"id"`
	UserMessage          string    `json:"user_message"`
	AssistantMessage     string    `json:"assistant_message"`
	DeviceType           string    `json:"device_type"`
	Country              string    `json:"country"`
	UserSentiment        string    `json:"user_sentiment"`
	AdMessage            string    `json:"ad_message"`
	AdCategory           string    `json:"ad_category"`
	AdClicked            bool      `json:"ad_clicked"`
	ConversationCategory string    `json:"conversation_category"`
	Timestamp            time.Time `json:"timestamp"`
	CreatedAt            time.Time `json:"created_at"`
}

// FilterCriteria narrows a chat log query. Every field is optional; an
// absent field imposes no constraint, so the zero value matches all rows.
// Criteria combine with AND; values inside one set combine with OR.
type FilterCriteria struct {
	Search     string     `json:"search,omitempty"`
	Sentiments []string   `json:"sentiments,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Countries  []string   `json:"countries,omitempty"`
	Devices    []string   `json:"devices,omitempty"`
	AdClicked  *bool      `json:"ad_clicked,omitempty"`
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	Limit      int        `json:"limit,omitempty"`
	Offset     int        `json:"offset,omitempty"`
}

// RecordFailure reports one conversation that could not be ingested.
type RecordFailure struct {
	Index          int    `json:"index"`
	ConversationID string `json:"conversation_id"`
	Reason         string `json:"reason"`
}

// BatchResult summarizes a batch ingestion. Partial success is the
// normal outcome; the batch itself only fails on store-level errors.
type BatchResult struct {
	Attempted int             `json:"attempted"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Failures  []RecordFailure `json:"failures,omitempty"`
}

// SummaryRow is one aggregation group over the persisted rows, keyed by
// day-truncated timestamp plus the categorical dimensions.
type SummaryRow struct {
	Day                  time.Time `json:"day"`
	ConversationCategory string    `json:"conversation_category"`
	UserSentiment        string    `json:"user_sentiment"`
	Country              string    `json:"country"`
	DeviceType           string    `json:"device_type"`
	AdCategory           string    `json:"ad_category"`
	MessageCount         uint64    `json:"message_count"`
	AdClicks             uint64    `json:"ad_clicks"`
	CTRPercentage        float64   `json:"ctr_percentage"`
}

// ValidationError marks a candidate row that violates a persisted-field
// constraint. It is reported per record and never aborts a batch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
