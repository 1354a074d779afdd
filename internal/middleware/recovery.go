package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/internal/domain/dto"
	"github.com/guttosm/shipit-service/internal/i18n"
	"github.com/guttosm/shipit-service/internal/logger"
	"github.com/guttosm/shipit-service/internal/metrics"
)

// Recovery turns a handler panic into a 500 response. Stock changes of the
// order in flight are rolled back by the store, so nothing is left half reserved.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordPanic(route)

			l := logger.FromContext(c.Request.Context())
			l.Error().
				Interface("panic", rec).
				Str("route", route).
				Str("warehouse_id", c.Param("warehouseId")).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from handler panic")

			message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewError(dto.ErrCodeInternal, message).WithRequestID(GetRequestID(c)))
		}()
		c.Next()
	}
}
