package http

import (
	"log/slog"
	"strings"
	"time"

	"procurement-service/internal/domain"
	"procurement-service/internal/infra"
	"procurement-service/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderXRequestID = "X-Request-ID"

	ctxKeyRequestID = "requestId"
	ctxKeyLogger    = "logger"
)

// RequestID reuses the caller's X-Request-ID or generates one, and stores a
// logger tagged with it for the rest of the chain.
func RequestID(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(ctxKeyRequestID, requestID)
		c.Set(ctxKeyLogger, logger.With(slog.String("request_id", requestID)))
		c.Header(HeaderXRequestID, requestID)

		c.Next()
	}
}

// AccessLog writes one line per request once the handler chain has finished.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("remote_ip", c.ClientIP()),
		}
		if c.Request.URL.RawQuery != "" {
			attrs = append(attrs, slog.String("query", c.Request.URL.RawQuery))
		}

		logger := requestLogger(c)
		switch {
		case status >= 500:
			logger.Error("request failed", attrs...)
		case status >= 400:
			logger.Warn("request rejected", attrs...)
		default:
			logger.Info("request completed", attrs...)
		}
	}
}

// Authenticate puts the bearer token's user into the request context. A
// request without a token passes through anonymously; the authorizer
// decides what an anonymous caller may do.
func Authenticate(tokens infra.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeError(c, domain.ErrUnauthorized.WithMessage("Invalid token format, must be Bearer token"))
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			writeError(c, domain.ErrUnauthorized.WithMessage("Invalid or expired token"))
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			writeError(c, domain.ErrUnauthorized.WithMessage("Invalid or expired token"))
			return
		}

		ctx := policy.WithActor(c.Request.Context(), policy.Actor{ID: userID, Role: claims.Role})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func requestLogger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(ctxKeyLogger); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}
