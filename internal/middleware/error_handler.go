package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/internal/domain/dto"
	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/i18n"
	"github.com/guttosm/shipit-service/internal/logger"
)

// ErrorHandler returns a middleware that handles gin context errors.
// Handlers attach failures with c.Error and return; the last error is
// mapped to a status code and a translated ErrorResponse here.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		requestID := GetRequestID(c)
		status, resp := errorResponse(err, i18n.GetLocale(c))

		log := logger.FromContext(c.Request.Context())
		event := log.Warn()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("error", err.Error()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Int("status_code", status).
			Msg("Request error")

		if !c.Writer.Written() {
			c.JSON(status, resp.WithRequestID(requestID).WithTraceID(GetTraceID(c)))
		}
	}
}

func errorResponse(err error, locale string) (int, dto.ErrorResponse) {
	translate := func(key string) string {
		return i18n.GetTranslator().Translate(key, locale)
	}

	var (
		rejected    *model.OrderRejectedError
		consistency *model.ConsistencyError
		validation  *dto.ValidationError
	)
	switch {
	case errors.As(err, &rejected):
		return http.StatusBadRequest, dto.NewError(dto.ErrCodeOrderRejected, translate(i18n.ErrKeyOrderRejected)).
			WithDetails(dto.RejectionDetails(rejected))
	case errors.As(err, &consistency):
		return http.StatusInternalServerError, dto.NewError(dto.ErrCodeConsistency, translate(i18n.ErrKeyStockInconsistent))
	case errors.As(err, &validation):
		reason, ok := i18n.GetTranslator().Lookup(i18n.ValidationKey(validation.Field), locale)
		if !ok {
			reason = validation.Message
		}
		return http.StatusBadRequest, dto.NewError(dto.ErrCodeInvalidRequest, translate(i18n.ErrKeyInvalidRequest)).
			WithDetails(map[string]string{validation.Field: reason})
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, dto.NewError(dto.ErrCodeNotFound, translate(i18n.ErrKeyNotFound))
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, dto.NewError(dto.ErrCodeTimeout, translate(i18n.ErrKeyTimeout))
	default:
		return http.StatusInternalServerError, dto.NewError(dto.ErrCodeInternal, translate(i18n.ErrKeyInternalError))
	}
}
