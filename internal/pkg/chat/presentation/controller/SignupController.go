package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"parley/internal/pkg/auth"

	"github.com/gin-gonic/gin"
)

// SignupController registers a new user.
type SignupController struct {
	Auth *auth.Service
}

func NewSignupController(service *auth.Service) *SignupController {
	return &SignupController{Auth: service}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *SignupController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		profile, err := h.Auth.Signup(ctx, req.Name, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidInput):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password are required"})
			case errors.Is(err, auth.ErrEmailTaken):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already registered"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating account"})
			}
			return
		}

		c.JSON(http.StatusCreated, profile)
	}
}
