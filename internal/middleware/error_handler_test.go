//go:build !integration

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/internal/domain/dto"
	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedDetail map[string]string
	}{
		{
			name: "rejected order lists every gtin",
			err: &model.OrderRejectedError{Errors: []error{
				&model.NotFoundError{GTIN: "111"},
				&model.InsufficientStockError{GTIN: "222", Requested: 3, Available: 1, Held: true},
			}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeOrderRejected,
			expectedDetail: map[string]string{
				"111": "unknown product gtin: 111",
				"222": "product 222: insufficient stock, requested 3, available 1",
			},
		},
		{
			name:           "consistency error",
			err:            fmt.Errorf("reserve: %w", &model.ConsistencyError{WarehouseID: 1, ProductID: 2, RowsAffected: 0}),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeConsistency,
		},
		{
			name:           "request validation",
			err:            dto.ErrInvalidWarehouseID,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
			expectedDetail: map[string]string{"warehouseId": "must be a positive integer"},
		},
		{
			name:           "not found",
			err:            model.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name:           "deadline",
			err:            fmt.Errorf("query: %w", context.DeadlineExceeded),
			expectedStatus: http.StatusGatewayTimeout,
			expectedCode:   dto.ErrCodeTimeout,
		},
		{
			name:           "anything else",
			err:            errors.New("test error"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), ErrorHandler())
			router.GET("/error", func(c *gin.Context) {
				_ = c.Error(tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/error", nil)
			req.Header.Set(RequestIDHeader, "req-1")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.Equal(t, "req-1", resp.RequestID)
			assert.NotEmpty(t, resp.Message)
			if tt.expectedDetail != nil {
				assert.Equal(t, tt.expectedDetail, resp.Details)
			}
		})
	}
}

func TestErrorHandler_NoErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), ErrorHandler())
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestErrorHandler_TranslatesMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), ErrorHandler())
	router.GET("/error", func(c *gin.Context) {
		_ = c.Error(&model.OrderRejectedError{Errors: []error{&model.NotFoundError{GTIN: "1"}}})
	})

	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	req.Header.Set("Accept-Language", "nl")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), "De bestelling is afgewezen")
}

func TestErrorHandler_TranslatesValidationDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), ErrorHandler())
	router.GET("/error", func(c *gin.Context) {
		_ = c.Error(dto.ErrNoOrderLines)
	})
	router.GET("/unknown-field", func(c *gin.Context) {
		_ = c.Error(&dto.ValidationError{Field: "gcp", Message: "must be 7 digits"})
	})

	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, map[string]string{"orderLines": "deve conter pelo menos uma linha"}, resp.Details)

	req = httptest.NewRequest(http.MethodGet, "/unknown-field", nil)
	req.Header.Set("Accept-Language", "nl")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var fallback dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fallback))
	assert.Equal(t, map[string]string{"gcp": "must be 7 digits"}, fallback.Details)
}
