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

// SearchUsersController backs the invite dialog's directory lookup.
type SearchUsersController struct {
	UC *usecase.SearchUsersUseCase
}

func NewSearchUsersController(pool *pgxpool.Pool) *SearchUsersController {
	repo := adapter.NewPgUserRepository(pool)
	return &SearchUsersController{UC: usecase.NewSearchUsersUseCase(repo)}
}

func (h *SearchUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		users, err := h.UC.Execute(ctx, usecase.SearchUsersInput{
			ActingUserID: auth.UserID(c),
			Query:        c.Query("q"),
		})
		if err != nil {
			if errors.Is(err, chat.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Query must be at least 2 characters"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error searching users"})
			return
		}
		if users == nil {
			users = []chat.Profile{}
		}
		c.JSON(http.StatusOK, users)
	}
}
