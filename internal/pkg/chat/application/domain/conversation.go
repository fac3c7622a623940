package chat

import "time"

// GeneralTitle is the well-known default conversation resolved when a
// message arrives without an explicit target.
const GeneralTitle = "General"

// Conversation is a named room. The creator becomes its first member and is
// recorded as owner; ownership currently grants no extra rights beyond
// membership.
type Conversation struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	OwnerID   string    `db:"owner_id" json:"ownerId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Hydrated by list/detail queries; not stored on the row.
	Members      []Membership `db:"-" json:"members,omitempty"`
	MessageCount int          `db:"-" json:"messageCount"`
}

// Membership grants a user read/write access to one conversation.
// At most one membership exists per (conversation, user) pair; the
// persistence layer enforces this with a unique constraint.
type Membership struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversationId"`
	UserID         string    `db:"user_id" json:"userId"`
	JoinedAt       time.Time `db:"joined_at" json:"joinedAt"`

	User *Profile `db:"-" json:"user,omitempty"`
}
