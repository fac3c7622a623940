package usecase

import (
	"context"
	"fmt"
	"strings"

	chat "parley/internal/pkg/chat/application/domain"
	repository "parley/internal/pkg/chat/persistence/repository/port"
)

const searchResultCap = 10

// SearchUsersInput carries the directory query from the invite dialog.
type SearchUsersInput struct {
	ActingUserID string
	Query        string
}

// SearchUsersUseCase matches users by name or email, excluding the acting
// user, capped at ten results.
type SearchUsersUseCase struct {
	Users repository.UserRepository
}

func NewSearchUsersUseCase(users repository.UserRepository) *SearchUsersUseCase {
	return &SearchUsersUseCase{Users: users}
}

func (uc *SearchUsersUseCase) Execute(ctx context.Context, in SearchUsersInput) ([]chat.Profile, error) {
	query := strings.TrimSpace(in.Query)
	if len(query) < 2 {
		return nil, chat.ErrInvalidInput
	}
	users, err := uc.Users.Search(ctx, query, in.ActingUserID, searchResultCap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return users, nil
}
