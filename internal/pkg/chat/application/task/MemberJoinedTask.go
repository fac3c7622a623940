package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	qport "parley/internal/infrastructure/queue/port"
	"parley/internal/infrastructure/realtime"
	"parley/internal/pkg/chat/application/usecase"
	repoAdapter "parley/internal/pkg/chat/persistence/repository/adapter"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MemberJoinedTaskType is the queue task name for announcing a new member
// inside the conversation.
const MemberJoinedTaskType = "chat:member_joined"

// MemberJoinedTaskPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type MemberJoinedTaskPayload struct {
	ConversationID string `json:"conversationId"`
	UserName       string `json:"userName"`
}

// RegisterMemberJoinedTask binds the task handler to the provided server.
// The handler posts a system-role notice through the message use case, so
// the announcement is persisted and broadcast like any other message.
func RegisterMemberJoinedTask(srv qport.Server, pool *pgxpool.Pool, hub *realtime.Hub) {
	srv.Register(MemberJoinedTaskType, func(ctx context.Context, t qport.Task) error {
		var p MemberJoinedTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}
		if p.ConversationID == "" || p.UserName == "" {
			return fmt.Errorf("member_joined: incomplete payload")
		}

		repo := repoAdapter.NewPgChatRepository(pool)
		uc := usecase.NewPostMessageUseCase(repo, hub)

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err := uc.Execute(ctx, usecase.PostMessageInput{
			ConversationID: p.ConversationID,
			Role:           "system",
			Content:        fmt.Sprintf("%s joined the conversation", p.UserName),
		})
		return err
	})
}
