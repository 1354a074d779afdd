package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/guttosm/shipit-service/internal/service/cache"
)

// headers that are per-response and must not be replayed.
var volatileHeaders = map[string]bool{
	"Content-Type":   true,
	"Content-Length": true,
	"Date":           true,
	http.CanonicalHeaderKey(RequestIDHeader): true,
}

func newIdempotencyCache(capacity int, ttl time.Duration) *cache.Sharded[cachedResponse] {
	return cache.NewSharded[cachedResponse]("idempotency", capacity, ttl, 8)
}

// idempotencyCacheKey hashes the client key together with the request line
// and body. The body is restored for the handler.
func idempotencyCacheKey(idempotencyKey string, req *http.Request) (string, error) {
	hasher := sha256.New()
	hasher.Write([]byte(idempotencyKey))
	hasher.Write([]byte{0})
	hasher.Write([]byte(req.Method))
	hasher.Write([]byte{0})
	hasher.Write([]byte(req.URL.RequestURI()))
	hasher.Write([]byte{0})

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		hasher.Write(body)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func replayHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) == 0 || volatileHeaders[k] {
			continue
		}
		out[k] = v[0]
	}
	return out
}
