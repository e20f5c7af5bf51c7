package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// rateLimitQuotes throttles quote computation per client IP using the
// Redis counter in storage. Counter errors fail open: a Redis hiccup must
// not take pricing down with it.
func (s *Server) rateLimitQuotes() gin.HandlerFunc {
	return func(c *gin.Context) {
		limited, err := s.cache.CheckRateLimit(
			c.Request.Context(),
			c.ClientIP(),
			"quote",
			s.cfg.HTTP.QuoteRateLimit,
			s.cfg.HTTP.QuoteRateWindow,
		)
		if err != nil {
			s.logger.Warn("Rate limit check failed, allowing request",
				zap.String("client_ip", c.ClientIP()),
				zap.Error(err))
			c.Next()
			return
		}

		if limited {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
