package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"parley/internal/infrastructure/realtime"
	chat "parley/internal/pkg/chat/application/domain"
	repository "parley/internal/pkg/chat/persistence/repository/port"
)

// PostMessageInput carries a new message. ConversationID may be empty, in
// which case the well-known "General" conversation is resolved or lazily
// created with the sender as owner and member.
type PostMessageInput struct {
	SenderID       string
	ConversationID string
	Role           string
	Content        string
}

// PostMessageUseCase persists a message and fans it out through the hub.
// The broadcast happens synchronously with persistence completion; network
// delivery to remote clients remains fire-and-forget.
type PostMessageUseCase struct {
	Repo repository.ChatRepository
	Hub  *realtime.Hub
}

func NewPostMessageUseCase(repo repository.ChatRepository, hub *realtime.Hub) *PostMessageUseCase {
	return &PostMessageUseCase{Repo: repo, Hub: hub}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, in PostMessageInput) (*chat.Message, error) {
	if strings.TrimSpace(in.Role) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, chat.ErrInvalidInput
	}

	conversationID := in.ConversationID
	if conversationID == "" {
		id, err := uc.Repo.FindOrCreateGeneral(ctx, in.SenderID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		conversationID = id
	}

	msg, err := chat.NewMessage(conversationID, in.SenderID, in.Role, in.Content)
	if err != nil {
		return nil, err
	}

	stored, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Hub != nil {
		payload, err := json.Marshal(stored)
		if err != nil {
			slog.Error("chat: encode broadcast payload", "error", err)
		} else {
			uc.Hub.Broadcast(payload)
		}
	}
	return stored, nil
}
