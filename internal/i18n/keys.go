package i18n

// Error message keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyOrderRejected      = "error.order_rejected"
	ErrKeyStockInconsistent  = "error.stock_inconsistent"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyTimeout            = "error.timeout"

	// ErrKeyIdempotencyInFlight rejects a retry racing its first attempt.
	ErrKeyIdempotencyInFlight = "error.idempotency_in_flight"

	// ErrKeyServiceUnavailable covers disabled optional stores such as the audit log.
	ErrKeyServiceUnavailable = "error.service_unavailable"
)

// ValidationKey returns the key of the message explaining why a request field is invalid.
func ValidationKey(field string) string {
	return "validation." + field
}
