package controller

import (
	"context"
	"net/http"
	"time"

	"parley/internal/pkg/auth"

	"github.com/gin-gonic/gin"
)

// LogoutController revokes the session and clears the cookie. Idempotent.
type LogoutController struct {
	Auth *auth.Service
}

func NewLogoutController(service *auth.Service) *LogoutController {
	return &LogoutController{Auth: service}
}

func (h *LogoutController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(auth.SessionCookie)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.Auth.Logout(ctx, token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error signing out"})
			return
		}

		c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
		c.Status(http.StatusNoContent)
	}
}
