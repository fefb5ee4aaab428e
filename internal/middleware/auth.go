package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDContextKey = "user_id"

// UserIDFromContext returns the authenticated user's ID set by AuthMiddleware.
func UserIDFromContext(c *gin.Context) (int, bool) {
	value, ok := c.Get(userIDContextKey)
	if !ok {
		return 0, false
	}
	userID, ok := value.(int)
	return userID, ok
}

// TokenVerifier resolves a bearer token to the user it was issued for.
type TokenVerifier interface {
	Verify(token string) (int, error)
}

// AuthMiddleware rejects requests without a valid bearer JWT and stores the
// token's user ID in the context.
func AuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Missing token",
			})
			return
		}

		tokenParts := strings.Fields(authHeader)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header must be in the format 'Bearer {token}'",
			})
			return
		}

		userID, err := tokens.Verify(tokenParts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid token",
			})
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}
