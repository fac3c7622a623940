package chat

import (
	"strings"
	"time"
)

// RoleUser marks a human-authored message; any other role is a system-style
// label and the message carries no author id.
const RoleUser = "user"

// Author is the sender projection attached to user-authored messages.
type Author struct {
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// Message is an immutable log entry in a conversation. UserID is nil for
// entries not authored by a human.
type Message struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversationId"`
	UserID         *string   `db:"user_id" json:"userId"`
	Role           string    `db:"role" json:"role"`
	Content        string    `db:"content" json:"content"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`

	User *Author `db:"-" json:"user,omitempty"`
}

// NewMessage validates and normalizes a message before persistence. The
// author id is attached only when the role denotes a human author.
func NewMessage(conversationID, senderID, role, content string) (*Message, error) {
	role = strings.TrimSpace(role)
	content = strings.TrimSpace(content)
	if role == "" || content == "" {
		return nil, ErrInvalidInput
	}
	if conversationID == "" {
		return nil, ErrInvalidInput
	}

	m := Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	if role == RoleUser {
		if senderID == "" {
			return nil, ErrInvalidInput
		}
		m.UserID = &senderID
	}
	return &m, nil
}
