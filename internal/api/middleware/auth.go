package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plateful/plateful/internal/logger"
	"github.com/plateful/plateful/internal/service"
)

// userIDKey is the Gin context key the authenticated user ID is stored under.
const userIDKey = "user_id"

// RequireAuth returns a middleware that resolves the bearer token from the
// Authorization header and aborts with 401 when it is missing or unknown.
// Parameters:
//   - auth: auth service used to resolve tokens.
// Returns:
//   - gin.HandlerFunc: middleware handler.
func RequireAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(userIDKey, userID)
		ctx := logger.SetUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractToken pulls the token out of "Authorization: Token <key>" or
// "Authorization: Bearer <key>".
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID returns the authenticated user ID set by RequireAuth.
// Parameters:
//   - c: Gin request context.
// Returns:
//   - uint: user ID, zero when unauthenticated.
//   - bool: whether an authenticated user is present.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Token returns the raw bearer token from the request, if any.
func Token(c *gin.Context) string {
	return extractToken(c)
}
