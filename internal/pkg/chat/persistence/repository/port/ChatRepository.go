package repository

import (
	"context"

	chat "parley/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for conversations,
// memberships and messages. Implementations must enforce the one-membership-
// per-(conversation, user) invariant and make the create-conversation and
// find-or-create-General sequences atomic under concurrent identical calls.
type ChatRepository interface {
	// CreateConversation inserts the conversation and its owner membership in
	// one transaction and returns the conversation hydrated with members.
	CreateConversation(ctx context.Context, ownerID, title string) (*chat.Conversation, error)

	// ListConversations returns every conversation the user is a member of,
	// most recently updated first, hydrated with members and message count.
	ListConversations(ctx context.Context, userID string) ([]chat.Conversation, error)

	// IsMember reports whether a membership row exists for the pair.
	IsMember(ctx context.Context, conversationID, userID string) (bool, error)

	// AddMember inserts a membership and returns it joined with the target's
	// profile. Returns chat.ErrAlreadyMember when the pair already exists and
	// chat.ErrNotFound when the conversation or user is absent.
	AddMember(ctx context.Context, conversationID, userID string) (*chat.Membership, error)

	// ListMembers returns the conversation's memberships joined with user
	// profiles, ordered by join time ascending.
	ListMembers(ctx context.Context, conversationID string) ([]chat.Membership, error)

	// FindOrCreateGeneral resolves the id of the "General" conversation,
	// creating it (with ownerID as owner and member) when absent. Concurrent
	// first calls converge on a single row.
	FindOrCreateGeneral(ctx context.Context, ownerID string) (string, error)

	// SaveMessage persists the message, bumps the conversation's updated_at
	// and returns the stored row with its id, timestamp and author profile.
	SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error)

	// ListMessages returns messages ascending by creation time. An empty
	// conversationID returns all messages.
	ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error)
}

// UserRepository exposes the directory lookups the chat domain needs.
type UserRepository interface {
	// FindByID returns the user or chat.ErrNotFound.
	FindByID(ctx context.Context, id string) (*chat.User, error)

	// Search matches name or email case-insensitively, excluding excludeID,
	// returning at most limit profiles.
	Search(ctx context.Context, query, excludeID string, limit int) ([]chat.Profile, error)
}
