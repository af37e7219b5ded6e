package pipeline

import (
	"errors"
	"fmt"

	"github.com/Loganbn2/Simula-Data-Dash/models"
)

// ErrMalformedConversation means the payload has no user-role message or
// no assistant-role message. Reported per record during batch ingestion.
var ErrMalformedConversation = errors.New("conversation is missing a user or assistant message")

// Normalize extracts the first user-role message and the first
// assistant-role message from the conversation, scanning in payload
// order. The two are selected independently, so role order does not
// matter. Content is returned as-is; empty text is rejected later by the
// store's persisted-field constraints, not here.
func Normalize(conv models.ConversationInput) (userText, assistantText string, err error) {
	var haveUser, haveAssistant bool

	for _, msg := range conv.Messages {
		switch msg.Role {
		case models.RoleUser:
			if !haveUser {
				userText = msg.Content
				haveUser = true
			}
		case models.RoleAssistant:
			if !haveAssistant {
				assistantText = msg.Content
				haveAssistant = true
			}
		}
		if haveUser && haveAssistant {
			break
		}
	}

	if !haveUser || !haveAssistant {
		return "", "", fmt.Errorf("conversation %q: %w", conv.ID, ErrMalformedConversation)
	}
	return userText, assistantText, nil
}
