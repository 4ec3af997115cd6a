package http

import (
	"log/slog"
	"net/http"

	"procurement-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// writeError renders err as {code, message}. Anything that is not an
// AppError is reported as a store failure without leaking its text.
func writeError(c *gin.Context, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		appErr = domain.ErrStore.Wrap(err)
	}

	if appErr.HTTPCode() >= http.StatusInternalServerError {
		requestLogger(c).Error("request error",
			slog.String("code", appErr.Code()),
			slog.String("error", err.Error()),
		)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode(), errorResponse{Code: appErr.Code(), Message: appErr.Message()})
}

func writeMessage(c *gin.Context, status int, message string) {
	c.JSON(status, messageResponse{Message: message})
}
