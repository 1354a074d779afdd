package middleware

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/internal/domain/dto"
	"github.com/guttosm/shipit-service/internal/i18n"
	"github.com/guttosm/shipit-service/internal/metrics"
)

const defaultNumShards = 16

const (
	scopeIP        = "ip"
	scopeWarehouse = "warehouse"
)

// window is the fixed window budget of one key.
type window struct {
	used  int
	start time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	windows map[string]*window
}

// decision is the outcome of one admission check.
type decision struct {
	allowed   bool
	remaining int
	resetIn   time.Duration
}

// ShardedRateLimiter admits at most rate requests per key and window. Keys are
// spread over shards by FNV hash so busy warehouses do not contend on one lock.
type ShardedRateLimiter struct {
	shards []*limiterShard
	rate   int
	period time.Duration
	now    func() time.Time
	stopCh chan struct{}
}

// NewRateLimiter creates a limiter with the default shard count.
func NewRateLimiter(rate int, period time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, period, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter and starts its sweeper. Call Stop to release it.
func NewShardedRateLimiter(rate int, period time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	shards := make([]*limiterShard, numShards)
	for i := range shards {
		shards[i] = &limiterShard{windows: make(map[string]*window)}
	}

	rl := &ShardedRateLimiter{
		shards: shards,
		rate:   rate,
		period: period,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}

	go rl.sweep()
	return rl
}

func (rl *ShardedRateLimiter) shard(key string) *limiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// admit charges one request to key.
func (rl *ShardedRateLimiter) admit(key string) decision {
	s := rl.shard(key)
	now := rl.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= rl.period {
		w = &window{start: now}
		s.windows[key] = w
	}

	resetIn := rl.period - now.Sub(w.start)
	if w.used >= rl.rate {
		return decision{resetIn: resetIn}
	}
	w.used++
	return decision{allowed: true, remaining: rl.rate - w.used, resetIn: resetIn}
}

// RateLimit limits requests per client IP.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return rl.limit(func(c *gin.Context) (string, string) {
		return scopeIP, c.ClientIP()
	})
}

// WarehouseRateLimit limits requests per warehouse on routes carrying a
// :warehouseId parameter, and per IP otherwise.
func (rl *ShardedRateLimiter) WarehouseRateLimit() gin.HandlerFunc {
	return rl.limit(warehouseKey)
}

func (rl *ShardedRateLimiter) limit(key func(*gin.Context) (scope, id string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, id := key(c)
		d := rl.admit(scope + ":" + id)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(ceilSeconds(d.resetIn)))

		if !d.allowed {
			metrics.RecordRateLimited(scope)
			c.Header("Retry-After", strconv.Itoa(ceilSeconds(d.resetIn)))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Next()
	}
}

func warehouseKey(c *gin.Context) (string, string) {
	if id := warehouseParam(c); id > 0 {
		return scopeWarehouse, strconv.Itoa(id)
	}
	return scopeIP, c.ClientIP()
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

func (rl *ShardedRateLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropExpired()
		case <-rl.stopCh:
			return
		}
	}
}

// dropExpired forgets keys idle for two periods.
func (rl *ShardedRateLimiter) dropExpired() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for key, w := range s.windows {
			if now.Sub(w.start) > 2*rl.period {
				delete(s.windows, key)
			}
		}
		s.mu.Unlock()
	}
}

// Stop terminates the sweeper.
func (rl *ShardedRateLimiter) Stop() {
	close(rl.stopCh)
}

// Stats reports tracked keys in total and per shard.
func (rl *ShardedRateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, s := range rl.shards {
		s.mu.Lock()
		perShard[i] = len(s.windows)
		total += perShard[i]
		s.mu.Unlock()
	}
	return total, perShard
}
