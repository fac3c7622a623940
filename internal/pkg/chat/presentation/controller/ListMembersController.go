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

// ListMembersController returns a conversation's member list, gated on the
// acting user's own membership.
type ListMembersController struct {
	UC *usecase.ListMembersUseCase
}

func NewListMembersController(pool *pgxpool.Pool) *ListMembersController {
	repo := adapter.NewPgChatRepository(pool)
	return &ListMembersController{UC: usecase.NewListMembersUseCase(repo)}
}

func (h *ListMembersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		members, err := h.UC.Execute(ctx, usecase.ListMembersInput{
			ActingUserID:   auth.UserID(c),
			ConversationID: c.Param("id"),
		})
		if err != nil {
			switch {
			case errors.Is(err, chat.ErrNotMember):
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			case errors.Is(err, chat.ErrInvalidInput):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Conversation id is required"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching members"})
			}
			return
		}
		if members == nil {
			members = []chat.Membership{}
		}
		c.JSON(http.StatusOK, members)
	}
}
