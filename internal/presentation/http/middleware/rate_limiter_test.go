package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newRateLimitedRouter(rl *StoreRateLimiter, storeID uuid.UUID) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("store_id", storeID) })
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestStoreRateLimiterEnforcesBurst(t *testing.T) {
	rl := NewStoreRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         3,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	router := newRateLimitedRouter(rl, uuid.New())

	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if i < 3 && res.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 within burst, got %d", i+1, res.Code)
		}
		if i == 3 {
			if res.Code != http.StatusTooManyRequests {
				t.Fatalf("request 4: expected 429 past burst, got %d", res.Code)
			}
			if res.Header().Get("Retry-After") != "1" {
				t.Fatalf("expected Retry-After header on 429")
			}
		}
	}
}

func TestStoreRateLimiterIsolatesStores(t *testing.T) {
	rl := NewStoreRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         1,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})

	busyStore := newRateLimitedRouter(rl, uuid.New())
	quietStore := newRateLimitedRouter(rl, uuid.New())

	// Exhaust the first store's budget
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		res := httptest.NewRecorder()
		busyStore.ServeHTTP(res, req)
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	res := httptest.NewRecorder()
	quietStore.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("second store should have its own budget, got %d", res.Code)
	}
}

func TestStoreRateLimiterSkipsUnscopedRequests(t *testing.T) {
	rl := NewStoreRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         1,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})

	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusOK {
			t.Fatalf("request %d: unscoped requests must not be limited, got %d", i+1, res.Code)
		}
	}
}

func TestStoreRateLimiterCleanupDropsIdleEntries(t *testing.T) {
	rl := NewStoreRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         10,
		CleanupInterval:   time.Hour,
		EntryTTL:          time.Nanosecond,
	})

	rl.getLimiter(uuid.New())
	time.Sleep(time.Millisecond)
	rl.cleanup()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	if len(rl.limiters) != 0 {
		t.Fatalf("expected idle entries to be cleaned up, %d remain", len(rl.limiters))
	}
}
