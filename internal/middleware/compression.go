package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// uncompressedPaths are polled by infrastructure that gains nothing from gzip.
// Prometheus negotiates its own encoding.
var uncompressedPaths = []string{"/metrics", "/healthz", "/readyz"}

// Compression gzips API responses, manifests and audit pages in particular.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(uncompressedPaths))
}
