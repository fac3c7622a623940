package usecase

import (
	"context"
	"fmt"
	"strings"

	chat "parley/internal/pkg/chat/application/domain"
	repository "parley/internal/pkg/chat/persistence/repository/port"
)

// CreateConversationInput carries the required data to open a new room.
type CreateConversationInput struct {
	OwnerID string
	Title   string
}

// CreateConversationUseCase creates a conversation with its owner as the
// first member. Both rows are written in one transaction by the repository.
type CreateConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewCreateConversationUseCase(repo repository.ChatRepository) *CreateConversationUseCase {
	return &CreateConversationUseCase{Repo: repo}
}

// Execute persists the conversation and returns it with the member list
// populated (exactly one entry: the owner).
func (uc *CreateConversationUseCase) Execute(ctx context.Context, in CreateConversationInput) (*chat.Conversation, error) {
	if in.OwnerID == "" {
		return nil, chat.ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, chat.ErrInvalidInput
	}

	conv, err := uc.Repo.CreateConversation(ctx, in.OwnerID, strings.TrimSpace(in.Title))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return conv, nil
}
