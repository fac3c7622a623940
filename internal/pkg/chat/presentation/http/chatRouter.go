package http

import (
	qport "parley/internal/infrastructure/queue/port"
	"parley/internal/infrastructure/realtime"
	"parley/internal/pkg/auth"
	"parley/internal/pkg/chat/presentation/controller"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes registers chat-related HTTP endpoints under the given
// router group. It constructs per-endpoint controllers and binds them
// directly to routes. The caller is expected to have installed the session
// resolver middleware upstream.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, client qport.Client, hub *realtime.Hub, authService *auth.Service) {
	streamCtl := controller.NewEventStreamController(hub)
	socketCtl := controller.NewEventSocketController(hub)
	createConvCtl := controller.NewCreateConversationController(pool)
	listConvCtl := controller.NewListConversationsController(pool)
	addMemberCtl := controller.NewAddMemberController(pool, client)
	listMembersCtl := controller.NewListMembersController(pool)
	postMsgCtl := controller.NewPostMessageController(pool, hub)
	listMsgCtl := controller.NewListMessagesController(pool)
	searchCtl := controller.NewSearchUsersController(pool)
	signupCtl := controller.NewSignupController(authService)
	loginCtl := controller.NewLoginController(authService)
	logoutCtl := controller.NewLogoutController(authService)

	// Push channels carry no per-user data; no auth enforced at this layer.
	g.GET("/events", streamCtl.Handle())
	g.GET("/events/ws", socketCtl.Handle())

	g.POST("/auth/signup", signupCtl.Handle())
	g.POST("/auth/login", loginCtl.Handle())
	g.POST("/auth/logout", logoutCtl.Handle())

	// History reads are unscoped on purpose (known gap, kept as-is).
	g.GET("/messages", listMsgCtl.Handle())

	secured := g.Group("", auth.RequireSession())
	secured.GET("/conversations", listConvCtl.Handle())
	secured.POST("/conversations", createConvCtl.Handle())
	secured.GET("/conversations/:id/members", listMembersCtl.Handle())
	secured.POST("/conversations/:id/members", addMemberCtl.Handle())
	secured.POST("/messages", postMsgCtl.Handle())
	secured.GET("/users/search", searchCtl.Handle())
}
