package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"parley/internal/pkg/auth"

	"github.com/gin-gonic/gin"
)

// LoginController verifies credentials and sets the session cookie.
type LoginController struct {
	Auth *auth.Service
}

func NewLoginController(service *auth.Service) *LoginController {
	return &LoginController{Auth: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		token, profile, err := h.Auth.Login(ctx, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrBadCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error signing in"})
			return
		}

		maxAge := int(h.Auth.Sessions.TTL() / time.Second)
		c.SetCookie(auth.SessionCookie, token, maxAge, "/", "", false, true)
		c.JSON(http.StatusOK, profile)
	}
}
