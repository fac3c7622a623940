package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "parley_session"

// userIDKey is the gin context key holding the resolved user id.
const userIDKey = "auth.userID"

// UserID returns the authenticated user's id, or "" when the request
// carries no valid session.
func UserID(c *gin.Context) string {
	v, _ := c.Get(userIDKey)
	id, _ := v.(string)
	return id
}

// SetUserID records the authenticated user id on the request context.
func SetUserID(c *gin.Context, id string) {
	c.Set(userIDKey, id)
}

// Resolve attaches the session's user id to the request context when the
// cookie resolves. It never rejects; pair it with RequireSession or the
// page redirect rules below.
func Resolve(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil {
			if userID, err := sessions.Resolve(c.Request.Context(), token); err == nil {
				SetUserID(c, userID)
			}
		}
		c.Next()
	}
}

// RequireSession aborts with 401 when no session was resolved.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// PageGuard implements the page-level redirect rules: anonymous visitors to
// the root page or any /messages path land on /login; signed-in visitors to
// /login or /signup land back on the root page.
func PageGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		signedIn := UserID(c) != ""

		if !signedIn && (path == "/" || strings.HasPrefix(path, "/messages")) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if signedIn && (path == "/login" || path == "/signup") {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
