package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/coffeeshop/internal/config"
	"github.com/jafarshop/coffeeshop/internal/domain"
)

// AdminAuth protects product management routes with a bcrypt-hashed admin key.
// With no hash configured the routes are open; config refuses that in production.
func AdminAuth(cfg config.AdminConfig, logger *zap.Logger) gin.HandlerFunc {
	if cfg.KeyHash == "" {
		logger.Warn("ADMIN_KEY_HASH not set, admin routes are unauthenticated")
		return func(c *gin.Context) {
			c.Next()
		}
	}
	hash := []byte(cfg.KeyHash)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		if err := bcrypt.CompareHashAndPassword(hash, []byte(parts[1])); err != nil {
			logger.Warn("Rejected admin key",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", GetRequestID(c)),
			)
			abortUnauthorized(c, "invalid admin key")
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":  msg,
		"notice": domain.Failure("You are not allowed to manage coffees."),
	})
}
