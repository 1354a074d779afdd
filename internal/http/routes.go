package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/internal/middleware"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// OrderRoutes registers the outbound, inbound and stock routes.
type OrderRoutes struct {
	handler *Handler
}

var _ RouteGroup = (*OrderRoutes)(nil)

// NewOrderRoutes creates a new OrderRoutes instance.
func NewOrderRoutes(handler *Handler) *OrderRoutes {
	return &OrderRoutes{handler: handler}
}

// RegisterRoutes registers the order routes. Warehouse scoped routes get
// their own per-warehouse rate limit on top of the global one.
func (r *OrderRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.POST("/orders/outbound", r.handler.FulfillOutboundOrder)

	warehouses := rg.Group("/warehouses/:warehouseId")
	if cfg != nil && cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		warehouses.Use(limiter.WarehouseRateLimit())
	}
	warehouses.GET("/orders/inbound", r.handler.PlanRestock)
	warehouses.POST("/stock", r.handler.ReceiveStock)
	warehouses.GET("/fulfillments", r.handler.ListAuditLog)
}
