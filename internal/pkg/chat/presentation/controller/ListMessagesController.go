package controller

import (
	"context"
	"net/http"
	"time"

	chat "parley/internal/pkg/chat/application/domain"
	"parley/internal/pkg/chat/application/usecase"
	"parley/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListMessagesController returns message history, oldest first. Without a
// conversationId it returns everything; the permissive default mirrors the
// original behavior and is not an access control.
type ListMessagesController struct {
	UC *usecase.ListMessagesUseCase
}

func NewListMessagesController(pool *pgxpool.Pool) *ListMessagesController {
	repo := adapter.NewPgChatRepository(pool)
	return &ListMessagesController{UC: usecase.NewListMessagesUseCase(repo)}
}

func (h *ListMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.ListMessagesInput{
			ConversationID: c.Query("conversationId"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching messages"})
			return
		}
		if msgs == nil {
			msgs = []chat.Message{}
		}
		c.JSON(http.StatusOK, msgs)
	}
}
