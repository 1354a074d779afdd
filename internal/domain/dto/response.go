package dto

import (
	"net/http"
	"strings"
	"time"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

func init() {
	// truckLoadInKg is a JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a retry racing the first attempt of the same idempotency key.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a disabled or unreachable dependency.
	ErrCodeUnavailable = "service_unavailable"
	// ErrCodeOrderRejected indicates an order failed catalog or stock validation.
	ErrCodeOrderRejected = "ORDER_REJECTED"
	// ErrCodeConsistency indicates the stock ledger could not be updated consistently.
	ErrCodeConsistency = "CONSISTENCY_ERROR"
)

// orderDetailKey holds rejection reasons not tied to a single gtin.
const orderDetailKey = "order"

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"ORDER_REJECTED"`
	Message string `json:"message,omitempty" example:"The order was rejected"`
	// Details maps each offending gtin to its reasons
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithTraceID links the error response to the trace of the request.
func (e ErrorResponse) WithTraceID(traceID string) ErrorResponse {
	e.TraceID = traceID
	return e
}

// WithDetails attaches per-field or per-gtin details to the error response.
func (e ErrorResponse) WithDetails(details map[string]string) ErrorResponse {
	e.Details = details
	return e
}

// RejectionDetails keys every problem of a rejected order by the gtin it concerns.
// Several problems for the same gtin are joined.
func RejectionDetails(rejected *model.OrderRejectedError) map[string]string {
	details := make(map[string]string, len(rejected.Errors))
	for _, err := range rejected.Errors {
		key := model.Subject(err)
		if key == "" {
			key = orderDetailKey
		}
		if prev, ok := details[key]; ok {
			details[key] = strings.Join([]string{prev, err.Error()}, "; ")
			continue
		}
		details[key] = err.Error()
	}
	return details
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// TruckResponse is one truck of an outbound manifest.
type TruckResponse struct {
	TruckNumber   int               `json:"truckNumber" example:"1"`
	Orders        []model.OrderLine `json:"orders"`
	TruckLoadInKg decimal.Decimal   `json:"truckLoadInKg" swaggertype:"number" example:"1999.8"`
} // @name TruckResponse

// OutboundOrderResponse is the manifest of a confirmed outbound order.
// @Description Trucks needed for an order and the lines each truck carries
type OutboundOrderResponse struct {
	TrucksNeeded  int             `json:"trucksNeeded" example:"2"`
	OrdersByTruck []TruckResponse `json:"ordersByTruck"`
} // @name OutboundOrderResponse

// NewOutboundOrderResponse builds the manifest from a fulfillment result.
func NewOutboundOrderResponse(result *model.FulfillmentResult) OutboundOrderResponse {
	trucks := make([]TruckResponse, 0, len(result.Trucks))
	for _, t := range result.Trucks {
		trucks = append(trucks, TruckResponse{
			TruckNumber:   t.Number,
			Orders:        t.Lines,
			TruckLoadInKg: t.LoadKg,
		})
	}
	return OutboundOrderResponse{TrucksNeeded: result.TrucksNeeded, OrdersByTruck: trucks}
}

// StockReceiptResponse acknowledges a stock receipt.
type StockReceiptResponse struct {
	WarehouseID int `json:"warehouseId" example:"1"`
	Lines       int `json:"lines" example:"2"`
	Units       int `json:"units" example:"25"`
} // @name StockReceiptResponse

// AuditLogListResponse is a page of audit log entries.
type AuditLogListResponse struct {
	Items []model.LogEntry `json:"items"`
	Total int64            `json:"total" example:"42"`
	Limit int              `json:"limit" example:"50"`
	Skip  int              `json:"skip" example:"0"`
} // @name AuditLogListResponse
