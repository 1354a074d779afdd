package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/internal/domain/dto"
	"github.com/guttosm/shipit-service/internal/i18n"
	"github.com/guttosm/shipit-service/internal/logger"
	"github.com/guttosm/shipit-service/internal/service/cache"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key (RFC standard).
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the idempotency cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute
	// IdempotencyCacheSize bounds the number of cached responses.
	IdempotencyCacheSize = 10000
)

// cachedResponse stores a cached HTTP response for idempotency.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Headers     map[string]string
	Body        []byte
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   cache.Cache[cachedResponse]
	Enabled bool
}

// DefaultIdempotencyConfig returns default idempotency configuration.
// The caller owns the cache and should Stop it on shutdown.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   newIdempotencyCache(IdempotencyCacheSize, IdempotencyKeyTTL),
		Enabled: true,
	}
}

// Idempotency returns a middleware that handles idempotency using the Idempotency-Key header.
//
// A retried POST with the same key, path, query and body gets the first
// 2xx response back without running the handler again, so an outbound
// order is never reserved twice. A retry arriving while the first attempt
// still runs gets 409.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	inflight := &inflightKeys{keys: make(map[string]struct{})}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey, err := idempotencyCacheKey(key, c.Request)
		if err != nil {
			log := logger.FromContext(c.Request.Context())
			log.Warn().Err(err).Msg("Could not read request body for idempotency key")
			c.Next()
			return
		}

		if cached, ok := cfg.Cache.Get(cacheKey); ok {
			replay(c, cached)
			return
		}

		if !inflight.acquire(cacheKey) {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyIdempotencyInFlight, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewError(dto.ErrCodeConflict, message).WithRequestID(GetRequestID(c)))
			return
		}
		defer inflight.release(cacheKey)

		// the first attempt may have finished between the lookup and acquire
		if cached, ok := cfg.Cache.Get(cacheKey); ok {
			replay(c, cached)
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			cfg.Cache.Set(cacheKey, cachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Headers:     replayHeaders(writer.Header()),
				Body:        bytes.Clone(writer.body.Bytes()),
			})
		}
	}
}

func replay(c *gin.Context, cached cachedResponse) {
	for k, v := range cached.Headers {
		c.Header(k, v)
	}
	c.Header(IdempotencyReplayedHeader, "true")
	c.Data(cached.StatusCode, cached.ContentType, cached.Body)
	c.Abort()
}

// inflightKeys holds the idempotency keys whose first attempt is running.
type inflightKeys struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func (f *inflightKeys) acquire(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.keys[key]; busy {
		return false
	}
	f.keys[key] = struct{}{}
	return true
}

func (f *inflightKeys) release(key string) {
	f.mu.Lock()
	delete(f.keys, key)
	f.mu.Unlock()
}

// responseWriter captures the response body for caching.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
