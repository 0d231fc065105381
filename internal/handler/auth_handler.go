package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hamza287/brenvick-dashboard/internal/middleware"
	"github.com/Hamza287/brenvick-dashboard/internal/session"
	"github.com/Hamza287/brenvick-dashboard/internal/utils"
)

// AuthHandler handles admin login, logout, and session introspection.
type AuthHandler struct {
	sessions *session.Manager
	limiter  *middleware.LoginRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		limiter:  middleware.NewLoginRateLimiter(),
	}
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Login authenticates against the storefront and issues a session credential.
// Only admin accounts get a session; valid non-admin logins are refused.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "identifier and password are required")
		return
	}

	ip := c.ClientIP()
	if h.limiter.Blocked(ip) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many failed login attempts")
		return
	}

	credential, user, err := h.sessions.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrAccessDenied):
			utils.Error(c, 403, "ACCESS_DENIED", "This account cannot access the admin console")
		case errors.Is(err, utils.ErrInvalidCredentials):
			h.limiter.Fail(ip)
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid identifier or password")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Login failed")
		}
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"credential": credential,
		"user":       user,
	})
}

// Logout deletes the current session. Always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	credential := strings.TrimPrefix(authHeader, "Bearer ")
	if err := h.sessions.Logout(c.Request.Context(), credential); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Logout failed")
		return
	}
	utils.Success(c, 200, "Logged out", nil)
}

// Me returns the user behind the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "No active session")
		return
	}
	utils.Success(c, 200, "Session active", gin.H{"user": user})
}
