package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fidel-otieno2/KinKeep.app/pkg/jwt"
	"github.com/fidel-otieno2/KinKeep.app/pkg/response"
)

const (
	UserIDKey     = "user_id"
	EmailKey      = "email"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthMiddleware validates bearer tokens with the local JWT manager and
// resolves the caller's identity into the request context.
type AuthMiddleware struct {
	tokens *jwt.Manager
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(tokens *jwt.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth returns a Gin middleware that rejects requests without a valid
// access token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			response.AbortUnauthorized(c, "missing authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.AbortUnauthorized(c, "invalid authorization format")
			return
		}

		token := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			response.AbortUnauthorized(c, err.Error())
			return
		}

		if claims.Type != "access" {
			response.AbortUnauthorized(c, "access token required")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)

		c.Next()
	}
}

// GetUserID extracts the authenticated user ID from the Gin context.
// Returns 0 when the request is unauthenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(UserIDKey); exists {
		if uid, ok := id.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetEmail extracts the authenticated user's email from the Gin context.
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get(EmailKey); exists {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}
