package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config sets the per-workspace call budget against the upstream API.
type Config struct {
	RequestsPerMinute float64
	Burst             int
	CleanupInterval   time.Duration
}

func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 30,
		Burst:             10,
		CleanupInterval:   5 * time.Minute,
	}
}

type workspaceLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter tracks one token bucket per workspace. It is the only state
// shared across concurrent source fetches and concurrent runs for the
// same workspace, so all map access is guarded.
type Limiter struct {
	config Config

	mu       sync.RWMutex
	limiters map[int64]*workspaceLimiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

func New(cfg Config) *Limiter {
	l := &Limiter{
		config:   cfg,
		limiters: make(map[int64]*workspaceLimiter),
		stopCh:   make(chan struct{}),
	}

	go l.cleanupLoop()

	return l
}

func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Allow consumes one token for the workspace if available.
func (l *Limiter) Allow(workspaceID int64) bool {
	return l.getOrCreate(workspaceID).Allow()
}

// RetryAfter estimates how long until one token is replenished.
func (l *Limiter) RetryAfter() time.Duration {
	perSec := l.config.RequestsPerMinute / 60.0
	if perSec <= 0 {
		return time.Minute
	}
	return time.Duration(math.Ceil(1.0/perSec)) * time.Second
}

// Count returns the number of tracked workspaces, for tests and metrics.
func (l *Limiter) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.limiters)
}

func (l *Limiter) getOrCreate(workspaceID int64) *rate.Limiter {
	l.mu.RLock()
	wl, exists := l.limiters[workspaceID]
	l.mu.RUnlock()

	if exists {
		l.mu.Lock()
		wl.lastAccess = time.Now()
		l.mu.Unlock()
		return wl.limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if wl, exists := l.limiters[workspaceID]; exists {
		wl.lastAccess = time.Now()
		return wl.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(l.config.RequestsPerMinute/60.0), l.config.Burst)
	l.limiters[workspaceID] = &workspaceLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

// cleanup drops workspaces idle for longer than twice the cleanup interval.
func (l *Limiter) cleanup() {
	ttl := l.config.CleanupInterval * 2
	now := time.Now()

	l.mu.Lock()
	for id, wl := range l.limiters {
		if now.Sub(wl.lastAccess) > ttl {
			delete(l.limiters, id)
		}
	}
	l.mu.Unlock()
}
