package middleware

import (
	"sync"
	"time"
)

// Rate limiter ONLY for failed login attempts. Successful logins are never
// throttled; five failures from one IP inside a minute block further tries
// before they reach the upstream.
type LoginRateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

func NewLoginRateLimiter() *LoginRateLimiter {
	rl := &LoginRateLimiter{
		attempts: make(map[string]*attemptInfo),
	}
	go rl.cleanup()
	return rl
}

// Blocked reports whether ip has exhausted its window. It does not record
// an attempt, so it is safe to call before processing a request.
func (r *LoginRateLimiter) Blocked(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, exists := r.attempts[ip]
	if !exists {
		return false
	}
	if time.Since(info.firstAt) > time.Minute {
		delete(r.attempts, ip)
		return false
	}
	return info.count >= 5
}

// Fail records a failed login attempt for ip.
func (r *LoginRateLimiter) Fail(ip string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	info, exists := r.attempts[ip]
	if !exists || now.Sub(info.firstAt) > time.Minute {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return
	}
	info.count++
}

func (r *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, info := range r.attempts {
			if now.Sub(info.firstAt) > time.Minute {
				delete(r.attempts, ip)
			}
		}
		r.mu.Unlock()
	}
}
