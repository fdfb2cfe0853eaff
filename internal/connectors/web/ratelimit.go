package web

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/chr33s/mcpdoc/internal/core/domain"
)

// OriginLimiter applies a token bucket per origin.
// A nil *OriginLimiter never blocks.
type OriginLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// NewOriginLimiter creates a limiter allowing rps requests per second per
// origin. It returns nil when rps is not positive.
func NewOriginLimiter(rps float64, burst int) *OriginLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &OriginLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to rawURL's origin may proceed.
func (l *OriginLimiter) Wait(ctx context.Context, rawURL string) error {
	if l == nil {
		return nil
	}
	return l.limiterFor(domain.OriginOf(rawURL)).Wait(ctx)
}

func (l *OriginLimiter) limiterFor(origin string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[origin]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[origin] = lim
	}
	return lim
}
