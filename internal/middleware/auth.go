package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/types"
)

// Context keys set by Auth and read by handlers.
const (
	ContextUserID = "user_id"
	ContextRole   = "user_role"
	ContextName   = "user_name"
	ContextEmail  = "user_email"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// Auth creates a middleware that validates bearer JWT tokens and
// attaches the caller's identity to the request context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextName, claims.Name)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// RequireRoles gates a route to the given roles. Role comparison is
// case-insensitive.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextRole)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "user role not found"})
			c.Abort()
			return
		}

		role, ok := roleVal.(models.Role)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "user role not found"})
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role.Is(allowed) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized for this action"})
		c.Abort()
	}
}

// CallerID returns the authenticated caller's id from the context.
func CallerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CallerRole returns the authenticated caller's role from the context.
func CallerRole(c *gin.Context) models.Role {
	v, exists := c.Get(ContextRole)
	if !exists {
		return ""
	}
	role, _ := v.(models.Role)
	return role
}
