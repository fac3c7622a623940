package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"parley/internal/infrastructure/realtime"
	"parley/internal/pkg/auth"
	chat "parley/internal/pkg/chat/application/domain"
	"parley/internal/pkg/chat/application/usecase"
	"parley/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostMessageController persists a message and broadcasts it before
// responding. Returns 200 with the stored message.
type PostMessageController struct {
	UC *usecase.PostMessageUseCase
}

func NewPostMessageController(pool *pgxpool.Pool, hub *realtime.Hub) *PostMessageController {
	repo := adapter.NewPgChatRepository(pool)
	return &PostMessageController{UC: usecase.NewPostMessageUseCase(repo, hub)}
}

type postMessageRequest struct {
	Content        string `json:"content"`
	Role           string `json:"role"`
	ConversationID string `json:"conversationId"`
}

func (h *PostMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req postMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content and role are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.PostMessageInput{
			SenderID:       auth.UserID(c),
			ConversationID: req.ConversationID,
			Role:           req.Role,
			Content:        req.Content,
		})
		if err != nil {
			if errors.Is(err, chat.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Content and role are required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating message"})
			return
		}

		c.JSON(http.StatusOK, msg)
	}
}
