package http

import (
	"log/slog"

	"procurement-service/internal/infra"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the middleware chain every route shares.
func NewRouter(h *Handler, tokens infra.TokenService, logger *slog.Logger, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		RequestID(logger),
		AccessLog(),
		Authenticate(tokens),
	)
	h.RegisterRoutes(r)
	return r
}
