package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/internal/domain/dto"
	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/i18n"
	"github.com/guttosm/shipit-service/internal/logger"
	"github.com/guttosm/shipit-service/internal/middleware"
	"github.com/guttosm/shipit-service/internal/pdf"
	"github.com/guttosm/shipit-service/internal/service"
)

const (
	// FormatPDF selects the loading sheet rendering of an outbound manifest.
	FormatPDF = "pdf"

	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// Handler provides HTTP handlers for the order routes.
type Handler struct {
	fulfillment service.FulfillmentService
	restock     service.RestockService
	receipts    service.StockReceiptService
	sheets      pdf.Generator
	auditLog    service.LoggingService
	auditSink   *middleware.AsyncLogger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLoadingSheets enables ?format=pdf on the outbound endpoint.
func WithLoadingSheets(g pdf.Generator) HandlerOption {
	return func(h *Handler) {
		h.sheets = g
	}
}

// WithAuditQueries enables the audit listing endpoint.
func WithAuditQueries(l service.LoggingService) HandlerOption {
	return func(h *Handler) {
		h.auditLog = l
	}
}

// WithAuditSink records restock plan requests.
func WithAuditSink(sink *middleware.AsyncLogger) HandlerOption {
	return func(h *Handler) {
		h.auditSink = sink
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(fulfillment service.FulfillmentService, restock service.RestockService, receipts service.StockReceiptService, opts ...HandlerOption) *Handler {
	h := &Handler{
		fulfillment: fulfillment,
		restock:     restock,
		receipts:    receipts,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// FulfillOutboundOrder handles POST /api/v1/orders/outbound requests.
//
// @Summary      Fulfill an outbound order
// @Description  Validates every line against the catalog and the warehouse stock, reserves the stock and packs the order onto trucks. A rejected order changes nothing. Supports idempotency via Idempotency-Key header.
// @Tags         Orders
// @Accept       json
// @Produce      json,application/pdf
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        format query string false "pdf for a printable loading sheet"
// @Param        request body dto.OutboundOrderRequest true "Outbound order"
// @Success      200 {object} dto.SuccessResponse{data=dto.OutboundOrderResponse} "Truck manifest"
// @Failure      400 {object} dto.ErrorResponse "Malformed or rejected order, details keyed by gtin"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Stock ledger inconsistent or internal error"
// @Failure      503 {object} dto.ErrorResponse "PDF rendering not available"
// @Router       /api/v1/orders/outbound [post]
func (h *Handler) FulfillOutboundOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	wantPDF := c.Query("format") == FormatPDF
	if wantPDF && h.sheets == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, nil)
		return
	}

	req, err := BuildRequestAndValidate[dto.OutboundOrderRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	result, err := h.fulfillment.Fulfill(c.Request.Context(), req.ToModel())
	if err != nil {
		builder.Fail(err)
		return
	}

	if wantPDF {
		h.writeLoadingSheet(c, req.WarehouseID, result)
		return
	}
	builder.SuccessOK(dto.NewOutboundOrderResponse(result))
}

func (h *Handler) writeLoadingSheet(c *gin.Context, warehouseID int, result *model.FulfillmentResult) {
	requestID := middleware.GetRequestID(c)
	doc, err := h.sheets.LoadingSheet(pdf.LoadingSheet{
		WarehouseID: warehouseID,
		RequestID:   requestID,
		GeneratedAt: time.Now(),
		Result:      result,
	})
	if err != nil {
		// the order is confirmed at this point; only the rendering failed
		log := logger.FromContext(c.Request.Context())
		log.Error().Err(err).Int("warehouse_id", warehouseID).Msg("Loading sheet rendering failed")
		NewResponseBuilder(c).Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	NewResponseBuilder(c).Attachment("loading-sheet-"+requestID+".pdf", pdf.ContentType, doc)
}

// PlanRestock handles GET /api/v1/warehouses/:warehouseId/orders/inbound requests.
//
// @Summary      Plan restocking for a warehouse
// @Description  Lists, per supplier, the products held below their lower threshold and how many units to order.
// @Tags         Orders
// @Produce      json
// @Param        warehouseId path int true "Warehouse id"
// @Success      200 {object} dto.SuccessResponse{data=model.InboundManifest} "Inbound manifest"
// @Failure      400 {object} dto.ErrorResponse "Invalid warehouse id"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/v1/warehouses/{warehouseId}/orders/inbound [get]
func (h *Handler) PlanRestock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	warehouseID, err := WarehouseParam(c)
	if err != nil {
		builder.Fail(err)
		return
	}

	manifest, err := h.restock.Plan(c.Request.Context(), warehouseID)
	if err != nil {
		middleware.AuditLogError(h.auditSink, c, model.ActionRestockPlan, "Restock plan failed", err, nil)
		builder.Fail(err)
		return
	}

	middleware.AuditLog(h.auditSink, c, model.ActionRestockPlan, "Restock plan issued", map[string]interface{}{
		"segments": len(manifest.OrderSegments),
	})
	builder.SuccessOK(manifest)
}

// ReceiveStock handles POST /api/v1/warehouses/:warehouseId/stock requests.
//
// @Summary      Receive stock
// @Description  Adds delivered quantities to the held stock of a warehouse. The whole receipt is rejected when any line is invalid.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        warehouseId path int true "Warehouse id"
// @Param        request body dto.StockReceiptRequest true "Delivered lines"
// @Success      201 {object} dto.SuccessResponse{data=dto.StockReceiptResponse} "Stock received"
// @Failure      400 {object} dto.ErrorResponse "Malformed or rejected receipt, details keyed by gtin"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/v1/warehouses/{warehouseId}/stock [post]
func (h *Handler) ReceiveStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	warehouseID, err := WarehouseParam(c)
	if err != nil {
		builder.Fail(err)
		return
	}

	req, err := BuildRequestAndValidate[dto.StockReceiptRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	lines := req.Lines()
	if err := h.receipts.Receive(c.Request.Context(), service.StockReceipt{
		WarehouseID: warehouseID,
		GCP:         req.GCP,
		Lines:       lines,
	}); err != nil {
		builder.Fail(err)
		return
	}

	units := 0
	for _, l := range lines {
		units += l.Quantity
	}
	builder.SuccessCreated(dto.StockReceiptResponse{WarehouseID: warehouseID, Lines: len(lines), Units: units})
}

// ListAuditLog handles GET /api/v1/warehouses/:warehouseId/fulfillments requests.
//
// @Summary      List audit entries of a warehouse
// @Description  Pages through fulfillment, stock receipt and restock audit entries, newest first.
// @Tags         Audit
// @Produce      json
// @Param        warehouseId path int true "Warehouse id"
// @Param        action query string false "outbound_order, stock_receipt or restock_plan" default(outbound_order)
// @Param        limit query int false "Page size" default(50)
// @Param        skip query int false "Entries to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.AuditLogListResponse} "Audit entries"
// @Failure      400 {object} dto.ErrorResponse "Invalid warehouse id"
// @Failure      503 {object} dto.ErrorResponse "Audit log storage disabled"
// @Router       /api/v1/warehouses/{warehouseId}/fulfillments [get]
func (h *Handler) ListAuditLog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.auditLog == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, nil)
		return
	}

	warehouseID, err := WarehouseParam(c)
	if err != nil {
		builder.Fail(err)
		return
	}

	opts := model.LogQueryOptions{
		WarehouseID: warehouseID,
		ActionType:  c.DefaultQuery("action", model.ActionOutboundOrder),
		Limit:       queryInt(c, "limit", defaultAuditLimit),
		Skip:        queryInt(c, "skip", 0),
	}
	if opts.Limit <= 0 || opts.Limit > maxAuditLimit {
		opts.Limit = defaultAuditLimit
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}

	ctx := c.Request.Context()
	entries, err := h.auditLog.QueryLogs(ctx, opts)
	if err != nil {
		builder.Fail(err)
		return
	}
	total, err := h.auditLog.CountLogs(ctx, opts)
	if err != nil {
		builder.Fail(err)
		return
	}
	if entries == nil {
		entries = []model.LogEntry{}
	}

	builder.SuccessOK(dto.AuditLogListResponse{Items: entries, Total: total, Limit: opts.Limit, Skip: opts.Skip})
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
