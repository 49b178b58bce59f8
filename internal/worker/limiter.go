package worker

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/ppiankov/draftgate/internal/classify"
)

// Limiter rate limits outbound requests per host
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter applying requestsPerSecond to every host
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until a request to rawURL is allowed or ctx is done
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := limiterKey(rawURL)
	if err != nil {
		return err
	}
	return l.getLimiter(host).Wait(ctx)
}

// Allow reports whether a request may happen now, consuming a token if so
func (l *Limiter) Allow(rawURL string) bool {
	host, err := limiterKey(rawURL)
	if err != nil {
		return false
	}
	return l.getLimiter(host).Allow()
}

func (l *Limiter) getLimiter(host string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[host]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[host] = limiter

	return limiter
}

// SetHostRate overrides the rate for one host. An existing limiter is
// retuned in place so tokens already spent stay spent; calling it again with
// the same values changes nothing.
func (l *Limiter) SetHostRate(host string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}
	host = classify.NormalizeHost(host)
	limit := rate.Limit(requestsPerSecond)

	limiter, exists := l.limiters[host]
	if !exists {
		l.limiters[host] = rate.NewLimiter(limit, burst)
		return
	}
	if limiter.Limit() != limit {
		limiter.SetLimit(limit)
	}
	if limiter.Burst() != burst {
		limiter.SetBurst(burst)
	}
}

// limiterKey returns the normalized host of a URL, so www.example.org and
// example.org share a budget
func limiterKey(rawURL string) (string, error) {
	parsed, err := classify.ParseURL(rawURL)
	if err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}
	return classify.NormalizeHost(parsed.Hostname()), nil
}
