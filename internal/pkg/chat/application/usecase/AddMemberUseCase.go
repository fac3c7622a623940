package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "parley/internal/pkg/chat/application/domain"
	repository "parley/internal/pkg/chat/persistence/repository/port"
)

// AddMemberInput carries an invite: the acting member brings targetUserID
// into the conversation.
type AddMemberInput struct {
	ActingUserID   string
	ConversationID string
	TargetUserID   string
}

// AddMemberUseCase invites a user into a conversation. The acting user must
// already be a member; non-members get ErrNotFound so callers cannot probe
// which conversations exist.
type AddMemberUseCase struct {
	Repo repository.ChatRepository
}

func NewAddMemberUseCase(repo repository.ChatRepository) *AddMemberUseCase {
	return &AddMemberUseCase{Repo: repo}
}

func (uc *AddMemberUseCase) Execute(ctx context.Context, in AddMemberInput) (*chat.Membership, error) {
	if in.ActingUserID == "" || in.ConversationID == "" || in.TargetUserID == "" {
		return nil, chat.ErrInvalidInput
	}

	ok, err := uc.Repo.IsMember(ctx, in.ConversationID, in.ActingUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		// Absent conversation and denied access look identical on purpose.
		return nil, chat.ErrNotFound
	}

	member, err := uc.Repo.AddMember(ctx, in.ConversationID, in.TargetUserID)
	if err != nil {
		if errors.Is(err, chat.ErrAlreadyMember) || errors.Is(err, chat.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return member, nil
}
