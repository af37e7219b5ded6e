package pipeline

import (
	"errors"
	"testing"

	"github.com/Loganbn2/Simula-Data-Dash/models"
)

func TestNormalize_TakesFirstOfEachRoleRegardlessOfOrder(t *testing.T) {
	t.Parallel()

	conv := models.ConversationInput{
		ID: "c1",
		Messages: []models.ConversationMessage{
			{Role: models.RoleAssistant, Content: "first assistant"},
			{Role: models.RoleUser, Content: "first user"},
			{Role: models.RoleUser, Content: "second user"},
			{Role: models.RoleAssistant, Content: "second assistant"},
		},
	}

	userText, assistantText, err := Normalize(conv)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if userText != "first user" {
		t.Fatalf("userText=%q, want %q", userText, "first user")
	}
	if assistantText != "first assistant" {
		t.Fatalf("assistantText=%q, want %q", assistantText, "first assistant")
	}
}

func TestNormalize_MissingRoleFails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		messages []models.ConversationMessage
	}{
		{name: "no messages", messages: nil},
		{name: "only user", messages: []models.ConversationMessage{{Role: models.RoleUser, Content: "hi"}}},
		{name: "only assistant", messages: []models.ConversationMessage{{Role: models.RoleAssistant, Content: "hello"}}},
		{name: "unknown roles", messages: []models.ConversationMessage{{Role: "system", Content: "x"}, {Role: "tool", Content: "y"}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Normalize(models.ConversationInput{ID: "c", Messages: tt.messages})
			if !errors.Is(err, ErrMalformedConversation) {
				t.Fatalf("err=%v, want ErrMalformedConversation", err)
			}
		})
	}
}

func TestNormalize_WhitespaceContentPassesThrough(t *testing.T) {
	t.Parallel()

	conv := models.ConversationInput{
		ID: "c2",
		Messages: []models.ConversationMessage{
			{Role: models.RoleUser, Content: "   "},
			{Role: models.RoleAssistant, Content: ""},
		},
	}

	userText, assistantText, err := Normalize(conv)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if userText != "   " {
		t.Fatalf("userText=%q, want whitespace preserved", userText)
	}
	if assistantText != "" {
		t.Fatalf("assistantText=%q, want empty string preserved", assistantText)
	}
}
