package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Loganbn2/Simula-Data-Dash/models"
)

// fakeWriter records inserts and fails according to failWith.
type fakeWriter struct {
	inserted []models.ChatLog
	failWith func(rec models.ChatLog) error
}

func (w *fakeWriter) InsertChatLog(_ context.Context, rec models.ChatLog) (string, error) {
	if w.failWith != nil {
		if err := w.failWith(rec); err != nil {
			return "", err
		}
	}
	w.inserted = append(w.inserted, rec)
	return fmt.Sprintf("id-%d", len(w.inserted)), nil
}

func validConversation(id, userText string) models.ConversationInput {
	return models.ConversationInput{
		ID: id,
		Messages: []models.ConversationMessage{
			{Role: models.RoleUser, Content: userText},
			{Role: models.RoleAssistant, Content: "sure, here is an answer"},
		},
	}
}

func TestIngestOne_BuildsClassifiedEnrichedRecord(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	p := New(KeywordClassifier{}, StaticEnricher{}, writer)

	rec, err := p.IngestOne(context.Background(), validConversation("c1", "I have an error with the API"))
	if err != nil {
		t.Fatalf("IngestOne returned error: %v", err)
	}
	if rec.ID != "id-1" {
		t.Fatalf("ID=%q, want generated id from store", rec.ID)
	}
	if rec.ConversationCategory != models.CategoryTechnicalSupport {
		t.Fatalf("category=%q, want Technical Support", rec.ConversationCategory)
	}
	if rec.UserSentiment != models.SentimentNeutral {
		t.Fatalf("sentiment=%q, want Neutral", rec.UserSentiment)
	}
	if rec.DeviceType != "Web Browser" || rec.Country != "United States" || rec.AdCategory != "AI Tools" {
		t.Fatalf("enrichment fields not applied: %+v", rec)
	}
	if rec.AdClicked {
		t.Fatalf("AdClicked=true, want default false")
	}
}

func TestIngestBatch_PartialFailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{
		failWith: func(rec models.ChatLog) error {
			if rec.UserMessage == "reject me" {
				return &models.ValidationError{Field: "user_message", Reason: "rejected by test"}
			}
			return nil
		},
	}
	p := New(KeywordClassifier{}, StaticEnricher{}, writer)

	convs := []models.ConversationInput{
		validConversation("ok-1", "how does this work"),
		{ID: "malformed", Messages: []models.ConversationMessage{{Role: models.RoleUser, Content: "alone"}}},
		validConversation("invalid", "reject me"),
		validConversation("ok-2", "thanks, great product"),
	}

	result, err := p.IngestBatch(context.Background(), convs)
	if err != nil {
		t.Fatalf("IngestBatch returned error: %v", err)
	}
	if result.Attempted != 4 || result.Succeeded != 2 || result.Failed != 2 {
		t.Fatalf("result=%+v, want attempted=4 succeeded=2 failed=2", result)
	}
	if len(result.Failures) != 2 {
		t.Fatalf("failures=%v, want 2 entries", result.Failures)
	}
	if result.Failures[0].Index != 1 || result.Failures[0].ConversationID != "malformed" {
		t.Fatalf("first failure=%+v, want index 1 (malformed)", result.Failures[0])
	}
	if result.Failures[1].Index != 2 || result.Failures[1].ConversationID != "invalid" {
		t.Fatalf("second failure=%+v, want index 2 (validation)", result.Failures[1])
	}
	if len(writer.inserted) != 2 {
		t.Fatalf("inserted %d rows, want 2", len(writer.inserted))
	}
}

func TestIngestBatch_StoreErrorAbortsBatch(t *testing.T) {
	t.Parallel()

	storeDown := errors.New("connection refused")
	writer := &fakeWriter{
		failWith: func(rec models.ChatLog) error {
			if rec.UserMessage == "boom" {
				return storeDown
			}
			return nil
		},
	}
	p := New(KeywordClassifier{}, StaticEnricher{}, writer)

	convs := []models.ConversationInput{
		validConversation("ok", "hello there"),
		validConversation("down", "boom"),
		validConversation("never-reached", "should not be processed"),
	}

	result, err := p.IngestBatch(context.Background(), convs)
	if !errors.Is(err, storeDown) {
		t.Fatalf("err=%v, want wrapped store error", err)
	}
	if result.Succeeded != 1 {
		t.Fatalf("succeeded=%d, want 1 committed before the fault", result.Succeeded)
	}
	if len(writer.inserted) != 1 {
		t.Fatalf("inserted %d rows, want 1", len(writer.inserted))
	}
}
