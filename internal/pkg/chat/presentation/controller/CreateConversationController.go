package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"parley/internal/pkg/auth"
	chat "parley/internal/pkg/chat/application/domain"
	"parley/internal/pkg/chat/application/usecase"
	"parley/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateConversationController handles room creation (one controller per
// endpoint).
type CreateConversationController struct {
	UC *usecase.CreateConversationUseCase
}

func NewCreateConversationController(pool *pgxpool.Pool) *CreateConversationController {
	repo := adapter.NewPgChatRepository(pool)
	return &CreateConversationController{UC: usecase.NewCreateConversationUseCase(repo)}
}

type createConversationRequest struct {
	Title string `json:"title"`
}

func (h *CreateConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		conv, err := h.UC.Execute(ctx, usecase.CreateConversationInput{
			OwnerID: auth.UserID(c),
			Title:   req.Title,
		})
		if err != nil {
			if errors.Is(err, chat.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating conversation"})
			return
		}

		c.JSON(http.StatusCreated, conv)
	}
}
