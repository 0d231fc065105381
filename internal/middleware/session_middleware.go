package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
	"github.com/Hamza287/brenvick-dashboard/internal/session"
	"github.com/Hamza287/brenvick-dashboard/internal/utils"
)

// SessionMiddleware hydrates the admin session from the Authorization header.
type SessionMiddleware struct {
	manager *session.Manager
}

// NewSessionMiddleware constructs a SessionMiddleware.
func NewSessionMiddleware(manager *session.Manager) *SessionMiddleware {
	return &SessionMiddleware{manager: manager}
}

// Handle resolves the bearer credential into a session and puts the user,
// role, and upstream token into the request context. No handler below this
// middleware ever runs with an unresolved session.
func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing or invalid authorization header")
			c.Abort()
			return
		}
		credential := strings.TrimPrefix(authHeader, "Bearer ")

		sess, user, err := m.manager.Hydrate(c.Request.Context(), credential)
		if err != nil {
			if errors.Is(err, utils.ErrSessionExpired) {
				utils.Error(c, 401, "SESSION_EXPIRED", "Session has expired, please log in again")
			} else {
				utils.Error(c, 401, "UNAUTHORIZED", "Invalid session credential")
			}
			c.Abort()
			return
		}

		c.Set("session", sess)
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Set("upstream_token", sess.Token)

		c.Next()
	}
}

// RequireRoles gates a route group to the given roles. It assumes the session
// middleware already ran; an absent role is treated as no access, never as a
// pass-through.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString("role")
		if _, ok := allowed[role]; !ok {
			utils.Error(c, 403, "ROLE_FORBIDDEN", "Insufficient role for this resource")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUser returns the authenticated user from context.
func GetUser(c *gin.Context) *models.User {
	user, _ := c.Get("user")
	if user == nil {
		return nil
	}
	return user.(*models.User)
}

// GetUpstreamToken returns the storefront bearer token for the session.
func GetUpstreamToken(c *gin.Context) string {
	return c.GetString("upstream_token")
}
