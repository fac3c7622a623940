package usecase

import (
	"context"
	"fmt"

	chat "parley/internal/pkg/chat/application/domain"
	repository "parley/internal/pkg/chat/persistence/repository/port"
)

// AuthorizeMemberUseCase is the access-control guard: it answers whether the
// acting user may touch a conversation's data. Membership alone grants every
// right, including inviting others; ownership is not distinguished.
type AuthorizeMemberUseCase struct {
	Repo repository.ChatRepository
}

func NewAuthorizeMemberUseCase(repo repository.ChatRepository) *AuthorizeMemberUseCase {
	return &AuthorizeMemberUseCase{Repo: repo}
}

// Execute returns nil when userID holds a membership in conversationID and
// chat.ErrNotMember otherwise.
func (uc *AuthorizeMemberUseCase) Execute(ctx context.Context, conversationID, userID string) error {
	if conversationID == "" || userID == "" {
		return chat.ErrInvalidInput
	}
	ok, err := uc.Repo.IsMember(ctx, conversationID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return chat.ErrNotMember
	}
	return nil
}
