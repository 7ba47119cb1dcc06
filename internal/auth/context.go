package auth

import "github.com/gin-gonic/gin"

// Keys under which the middleware stores the authenticated identity in
// the Gin context.
const (
	ctxUserIDKey    = "authUserID"
	ctxUserEmailKey = "authUserEmail"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmailKey)
}
