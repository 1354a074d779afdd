package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/internal/domain/model"
)

// AuditLog queues an audit entry describing an action taken on behalf of
// the current request. Nothing is recorded when sink is nil.
func AuditLog(sink *AsyncLogger, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if sink == nil {
		return
	}
	sink.Log(auditEntry(c, "info", actionType, message, fields))
}

// AuditLogError queues an audit entry for an action that failed.
func AuditLogError(sink *AsyncLogger, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if sink == nil {
		return
	}
	entry := auditEntry(c, "error", actionType, message, fields)
	entry.Error = err.Error()
	sink.Log(entry)
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:   time.Now(),
		Level:       level,
		Message:     message,
		RequestID:   GetRequestID(c),
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		IP:          c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		WarehouseID: warehouseParam(c),
		ActionType:  actionType,
		Fields:      fields,
	}
}
