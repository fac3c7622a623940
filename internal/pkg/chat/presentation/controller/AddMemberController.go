package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	queueport "parley/internal/infrastructure/queue/port"
	"parley/internal/pkg/auth"
	chat "parley/internal/pkg/chat/application/domain"
	"parley/internal/pkg/chat/application/task"
	"parley/internal/pkg/chat/application/usecase"
	"parley/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AddMemberController handles invites. After a successful insert it enqueues
// the member-joined announcement; the worker posts it as a system message.
type AddMemberController struct {
	UC *usecase.AddMemberUseCase
	Q  queueport.Client
}

func NewAddMemberController(pool *pgxpool.Pool, client queueport.Client) *AddMemberController {
	repo := adapter.NewPgChatRepository(pool)
	return &AddMemberController{UC: usecase.NewAddMemberUseCase(repo), Q: client}
}

type addMemberRequest struct {
	UserID string `json:"userId"`
	// Accepted as an alias for userId.
	ID string `json:"id"`
}

func (h *AddMemberController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("id")

		var req addMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
			return
		}
		targetID := req.UserID
		if targetID == "" {
			targetID = req.ID
		}
		if targetID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		member, err := h.UC.Execute(ctx, usecase.AddMemberInput{
			ActingUserID:   auth.UserID(c),
			ConversationID: conversationID,
			TargetUserID:   targetID,
		})
		if err != nil {
			switch {
			case errors.Is(err, chat.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found or access denied"})
			case errors.Is(err, chat.ErrAlreadyMember):
				c.JSON(http.StatusBadRequest, gin.H{"error": "User is already a member"})
			case errors.Is(err, chat.ErrInvalidInput):
				c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding member"})
			}
			return
		}

		h.announce(ctx, member)
		c.JSON(http.StatusCreated, member)
	}
}

// announce enqueues the join notice. Best effort: an unavailable queue must
// not fail the invite that already persisted.
func (h *AddMemberController) announce(ctx context.Context, member *chat.Membership) {
	if h.Q == nil || member.User == nil {
		return
	}
	payload, err := json.Marshal(task.MemberJoinedTaskPayload{
		ConversationID: member.ConversationID,
		UserName:       member.User.Name,
	})
	if err != nil {
		return
	}
	opts := queueport.EnqueueOption{Queue: "chat", MaxRetry: 5}
	if _, err := h.Q.Enqueue(ctx, queueport.Task{Type: task.MemberJoinedTaskType, Payload: payload}, opts); err != nil {
		slog.Warn("chat: enqueue member_joined", "error", err)
	}
}
