package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ekurt/campusreg/internal/app/models/dto"
	"github.com/ekurt/campusreg/internal/pkg/auth"
)

// Context keys set by SessionAuth for downstream handlers
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// AuthMiddleware guards routes behind the session cookie
type AuthMiddleware struct {
	sessions *auth.SessionService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions *auth.SessionService) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// SessionAuth validates the session cookie and aborts with 401 when it is
// missing, expired, or tampered with. Valid sessions put the user identity
// into the request context.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.sessions.CookieName())
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication required"})
			return
		}

		claims, err := m.sessions.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication required"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)

		c.Next()
	}
}

// CurrentSession reads the session cookie without gating the request. It
// returns nil when no valid session is present; GET /auth/status uses this
// to answer 200 either way.
func (m *AuthMiddleware) CurrentSession(c *gin.Context) *auth.SessionClaims {
	token, err := c.Cookie(m.sessions.CookieName())
	if err != nil || token == "" {
		return nil
	}
	claims, err := m.sessions.ValidateToken(token)
	if err != nil {
		return nil
	}
	return claims
}
