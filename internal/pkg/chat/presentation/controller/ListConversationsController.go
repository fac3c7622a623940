package controller

import (
	"context"
	"net/http"
	"time"

	"parley/internal/pkg/auth"
	chat "parley/internal/pkg/chat/application/domain"
	"parley/internal/pkg/chat/application/usecase"
	"parley/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListConversationsController returns the acting user's rooms.
type ListConversationsController struct {
	UC *usecase.ListConversationsUseCase
}

func NewListConversationsController(pool *pgxpool.Pool) *ListConversationsController {
	repo := adapter.NewPgChatRepository(pool)
	return &ListConversationsController{UC: usecase.NewListConversationsUseCase(repo)}
}

func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		convs, err := h.UC.Execute(ctx, usecase.ListConversationsInput{UserID: auth.UserID(c)})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching conversations"})
			return
		}
		if convs == nil {
			convs = []chat.Conversation{}
		}
		c.JSON(http.StatusOK, convs)
	}
}
