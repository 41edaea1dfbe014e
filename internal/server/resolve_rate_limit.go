package server

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/geotoll/internal/observability/logger"
	"go.uber.org/zap"
)

type resolveRateLimitKey struct {
	UserID string `json:"user_id"`
}

// ResolveRateLimit throttles check-in traffic per user before any
// database work happens. With the limiter disabled it is a no-op.
func (s *Server) ResolveRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.resolveLimiter == nil || !s.resolveLimiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		userID, err := readResolveUserID(c)
		if err != nil {
			logger.FromContext(ctx).Warn("resolve rate limit read body failed", zap.Error(err))
			AbortWithError(c, invalidRequestError())
			return
		}
		if userID == "" {
			// Let the handler produce the validation error.
			c.Next()
			return
		}

		allowed, err := s.resolveLimiter.AllowUser(ctx, userID)
		if err != nil {
			logger.FromContext(ctx).Warn("resolve rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !allowed {
			logger.FromContext(ctx).Warn("resolve rate limit exceeded",
				zap.String("user_id", userID),
			)
			if s.obsMetrics != nil {
				s.obsMetrics.IncRateLimitDenied("user")
			}
			c.Header("Retry-After", "1")
			AbortWithError(c, ErrRateLimited)
			return
		}

		if s.obsMetrics != nil {
			s.obsMetrics.IncRateLimitAllowed("user")
		}
		c.Next()
	}
}

func readResolveUserID(c *gin.Context) (string, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return "", nil
	}

	var payload resolveRateLimitKey
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", nil
	}

	return strings.TrimSpace(payload.UserID), nil
}
