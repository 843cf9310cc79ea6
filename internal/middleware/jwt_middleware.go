package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/voltshop/inventory-api/internal/models"
	"github.com/voltshop/inventory-api/internal/utils"
)

// JWTMiddleware authenticates requests with a Bearer session token and puts
// the account identity into the request context.
type JWTMiddleware struct {
	secret      string
	rateLimiter *InvalidAuthRateLimiter
}

func NewJWTMiddleware(secret string) *JWTMiddleware {
	return &JWTMiddleware{
		secret:      secret,
		rateLimiter: NewInvalidAuthRateLimiter(),
	}
}

// Handle returns a Gin middleware function that enforces authentication.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.handleAuthError(c, "UNAUTHORIZED", "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.handleAuthError(c, "UNAUTHORIZED", "Invalid authorization header")
			return
		}

		claims, err := utils.ValidateJWT(parts[1], m.secret)
		if err != nil {
			m.handleAuthError(c, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set("username", claims.Username)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}

// RequireManager returns a middleware that allows only accounts permitted to
// mutate the catalog. It must run after Handle.
func (m *JWTMiddleware) RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.Role(c.GetString("role"))
		if !role.CanManageInventory() {
			utils.Error(c, 403, "FORBIDDEN", "Manager role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin returns a middleware that allows only Admin accounts.
// It must run after Handle.
func (m *JWTMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if models.Role(c.GetString("role")) != models.RoleAdmin {
			utils.Error(c, 403, "FORBIDDEN", "Admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *JWTMiddleware) handleAuthError(c *gin.Context, code, message string) {
	// Apply rate limit for invalid auth attempts
	ip := c.ClientIP()
	if !m.rateLimiter.Allow(ip) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}

	utils.Error(c, 401, code, message)
	c.Abort()
}
