package v1

import (
	qport "parley/internal/infrastructure/queue/port"
	"parley/internal/infrastructure/realtime"
	"parley/internal/pkg/auth"
	httpHandler "parley/internal/pkg/chat/presentation/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, client qport.Client, hub *realtime.Hub, authService *auth.Service) {
	v1 := r.Group("/api/v1")
	// Pass shared infrastructure down to the HTTP layer
	httpHandler.RegisterRoutes(v1, pool, client, hub, authService)
}
