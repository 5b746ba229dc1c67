package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-api/internal/domain"
)

const userContextKey = "currentUser"

// authMiddleware resolves the Bearer access token to a live account and
// stores it on the request context. Every failure mode is the same 401 so
// callers cannot distinguish a missing header from a bad or stale token.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, prefix) {
			unauthorized(c)
			return
		}

		userID, err := h.tokens.ParseAccess(strings.TrimSpace(auth[len(prefix):]))
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil || !user.IsActive {
			unauthorized(c)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
}

func currentUser(c *gin.Context) *domain.User {
	user, _ := c.MustGet(userContextKey).(*domain.User)
	return user
}

// RequestLogger logs method, path, status and latency for every request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
