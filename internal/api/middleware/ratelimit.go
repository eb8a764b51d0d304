package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elmparc/plan_go_server/internal/pkg/response"
)

// RateLimiter 进程内滑动窗口限流器，按 key（通常是客户端 IP）独立计数。
// 窗口内保留每次请求的时间戳，过期的在判定时剔除。
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	max      int
	window   time.Duration
	stopChan chan struct{}
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		max:      max,
		window:   window,
		stopChan: make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Allow 判定一次请求是否放行；放行时记录本次时间戳
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	timestamps := rl.requests[key]
	live := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			live = append(live, ts)
		}
	}

	if len(live) >= rl.max {
		rl.requests[key] = live
		return false
	}

	rl.requests[key] = append(live, now)
	return true
}

// sweep 周期清理完全过期的 key，防止 map 无界增长
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.window)
			rl.mu.Lock()
			for key, timestamps := range rl.requests {
				alive := false
				for _, ts := range timestamps {
					if ts.After(cutoff) {
						alive = true
						break
					}
				}
				if !alive {
					delete(rl.requests, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopChan:
			return
		}
	}
}

// Stop 停止后台清理
func (rl *RateLimiter) Stop() {
	close(rl.stopChan)
}

// RateLimit 限流中间件，按客户端 IP 计数
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			response.TooManyRequests(c, "Too many requests. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
