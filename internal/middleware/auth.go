package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jukevox/backend/internal/services"
)

const (
	ContextUserID    = "user_id"
	ContextSessionID = "session_id"
)

// Auth validates the bearer token and stores the resolved admin identity in
// the request context. Patron endpoints never use this; patrons are
// identified only by opaque requester ids in request bodies.
func Auth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// OptionalAuth resolves a bearer identity when one is presented but lets the
// request through anonymously otherwise. Used by session creation, where an
// owner is attached only for authenticated callers.
func OptionalAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				if claims, err := authService.ValidateAccessToken(parts[1]); err == nil {
					c.Set(ContextUserID, claims.UserID)
				}
			}
		}
		c.Next()
	}
}

// DisplayAuth validates a TV display token and stores the session id it is
// bound to in the request context. Displays carry no admin identity.
func DisplayAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		sessionID, err := authService.ValidateDisplayToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}

// UserID returns the authenticated admin id from the context, if any.
func UserID(c *gin.Context) string {
	id, _ := c.Get(ContextUserID)
	s, _ := id.(string)
	return s
}

// SessionID returns the display-token session id from the context, if any.
func SessionID(c *gin.Context) string {
	id, _ := c.Get(ContextSessionID)
	s, _ := id.(string)
	return s
}
