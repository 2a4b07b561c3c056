package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewShardedRateLimiter(t *testing.T) {
	tests := []struct {
		name       string
		numShards  int
		wantShards int
	}{
		{name: "default shards when zero", numShards: 0, wantShards: defaultNumShards},
		{name: "default shards when negative", numShards: -1, wantShards: defaultNumShards},
		{name: "custom shard count", numShards: 8, wantShards: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(10, time.Minute, tt.numShards)
			defer rl.Stop()

			assert.Equal(t, tt.wantShards, rl.numShards)
			assert.Len(t, rl.shards, tt.wantShards)
		})
	}
}

func TestShardedRateLimiter_CheckRateLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		allowed, remaining := rl.checkRateLimit("10.0.0.1")
		assert.True(t, allowed)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining := rl.checkRateLimit("10.0.0.1")
	assert.False(t, allowed)
	assert.Zero(t, remaining)

	// A different identifier has its own bucket.
	allowed, _ = rl.checkRateLimit("10.0.0.2")
	assert.True(t, allowed)
}

func TestShardedRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	defer rl.Stop()

	allowed, _ := rl.checkRateLimit("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = rl.checkRateLimit("10.0.0.1")
	assert.False(t, allowed)

	time.Sleep(15 * time.Millisecond)

	allowed, _ = rl.checkRateLimit("10.0.0.1")
	assert.True(t, allowed, "tokens refill after the window passes")
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	router := gin.New()
	router.Use(RequestID(), rl.RateLimit())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, fmt.Sprintf("%d", 1-i), w.Header().Get("X-RateLimit-Remaining"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestShardedRateLimiter_CleanupExpired(t *testing.T) {
	rl := NewRateLimiter(5, 5*time.Millisecond)
	defer rl.Stop()

	rl.checkRateLimit("10.0.0.1")
	rl.checkRateLimit("10.0.0.2")

	time.Sleep(15 * time.Millisecond)
	rl.cleanupExpired()

	total := 0
	for _, shard := range rl.shards {
		shard.mu.Lock()
		total += len(shard.visitors)
		shard.mu.Unlock()
	}
	assert.Zero(t, total)
}
