package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aljaz-ferenc/budget-app/logger"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserKey  = "user"
	ContextTokenKey = "token"
)

// AuthMiddleware verifies the session token in requests. The token comes from
// the Authorization header or, for cookie-based clients, the budget-app cookie.
func AuthMiddleware(c *gin.Context) {
	tokenString := extractToken(c.Request)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "not authenticated"})
		c.Abort()
		return
	}

	if RevokedTokens.Contains(tokenString) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "token has been revoked"})
		c.Abort()
		return
	}

	claims, err := ParseToken(tokenString)
	if err != nil {
		logger.Get().Warn("token verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "token verification failed"})
		c.Abort()
		return
	}

	c.Set(ContextUserKey, claims)
	c.Set(ContextTokenKey, tokenString)
	c.Next()
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := r.Cookie("budget-app"); err == nil {
		return cookie.Value
	}
	return ""
}
