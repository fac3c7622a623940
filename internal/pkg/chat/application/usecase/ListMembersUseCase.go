package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "parley/internal/pkg/chat/application/domain"
	repository "parley/internal/pkg/chat/persistence/repository/port"
)

// ListMembersInput identifies whose member list is requested and by whom.
type ListMembersInput struct {
	ActingUserID   string
	ConversationID string
}

// ListMembersUseCase returns a conversation's memberships, join time
// ascending, after the membership guard admits the acting user.
type ListMembersUseCase struct {
	Repo  repository.ChatRepository
	Guard *AuthorizeMemberUseCase
}

func NewListMembersUseCase(repo repository.ChatRepository) *ListMembersUseCase {
	return &ListMembersUseCase{Repo: repo, Guard: NewAuthorizeMemberUseCase(repo)}
}

func (uc *ListMembersUseCase) Execute(ctx context.Context, in ListMembersInput) ([]chat.Membership, error) {
	if err := uc.Guard.Execute(ctx, in.ConversationID, in.ActingUserID); err != nil {
		return nil, err
	}
	members, err := uc.Repo.ListMembers(ctx, in.ConversationID)
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return members, nil
}
