package usecase

import (
	"context"
	"fmt"

	chat "parley/internal/pkg/chat/application/domain"
	repository "parley/internal/pkg/chat/persistence/repository/port"
)

// ListConversationsInput wraps the acting user whose rooms are listed.
type ListConversationsInput struct {
	UserID string
}

// ListConversationsUseCase returns every conversation the user belongs to,
// most recently updated first, annotated with message counts.
type ListConversationsUseCase struct {
	Repo repository.ChatRepository
}

func NewListConversationsUseCase(repo repository.ChatRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]chat.Conversation, error) {
	if in.UserID == "" {
		return nil, chat.ErrInvalidInput
	}
	convs, err := uc.Repo.ListConversations(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return convs, nil
}
