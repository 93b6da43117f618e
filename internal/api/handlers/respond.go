package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/coffeeshop/internal/api/middleware"
	"github.com/jafarshop/coffeeshop/internal/domain"
	"github.com/jafarshop/coffeeshop/pkg/errors"
)

// statusFor maps a failure to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.IsInvalidInput(err):
		return http.StatusUnprocessableEntity
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsUnauthorized(err):
		return http.StatusUnauthorized
	case errors.IsBackend(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// noticeFor picks the user-facing message: validation errors speak for
// themselves, everything else gets fallback
func noticeFor(err error, fallback string) domain.Notice {
	if errors.IsInvalidInput(err) || errors.IsNotFound(err) {
		return domain.Failure(err.Error())
	}
	return domain.Failure(fallback)
}

func logFailure(c *gin.Context, logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)
	if be, ok := errors.AsBackend(err); ok {
		fields = append(fields, zap.String("kind", string(be.Kind)), zap.Int("backend_status", be.StatusCode))
	}
	logger.Error(msg, fields...)
}

// respondError writes an error body with a notice. extra is merged in so
// callers can attach current state.
func respondError(c *gin.Context, err error, fallback string, extra gin.H) {
	body := gin.H{
		"error":  err.Error(),
		"notice": noticeFor(err, fallback),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusFor(err), body)
}
