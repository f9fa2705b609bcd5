package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
)

type memoryIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	ikey, ok := r.keys[key+"|"+userID.String()]
	if !ok {
		return nil, nil
	}
	return ikey, nil
}

func (r *memoryIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.Key+"|"+ikey.UserID.String()] = ikey
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	for k, ikey := range r.keys {
		if ikey.IsExpired() {
			delete(r.keys, k)
		}
	}
	return nil
}

func newIdempotencyRouter(repo *memoryIdempotencyRepo, userID uuid.UUID, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	router.POST("/orders", IdempotencyRequired(IdempotencyConfig{Repo: repo}), handler)
	return router
}

func TestIdempotencyRequiredRejectsMissingKey(t *testing.T) {
	router := newIdempotencyRouter(newMemoryIdempotencyRepo(), uuid.New(), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key, got %d", res.Code)
	}
}

func TestIdempotencyRequiredReplaysResponse(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	router := newIdempotencyRouter(repo, uuid.New(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"invoice": "INV-001"})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set(IdempotencyKeyHeader, "sale-abc")
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i+1, res.Code)
		}
		if !strings.Contains(res.Body.String(), "INV-001") {
			t.Fatalf("request %d: expected invoice in body, got %s", i+1, res.Body.String())
		}
		replayed := res.Header().Get("X-Idempotency-Replayed")
		if i == 0 && replayed != "" {
			t.Fatalf("first request should not be marked replayed")
		}
		if i == 1 && replayed != "true" {
			t.Fatalf("second request should be marked replayed, got %q", replayed)
		}
	}

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
}

func TestIdempotencyRequiredDoesNotCacheFailures(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	router := newIdempotencyRouter(repo, uuid.New(), func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient payment"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"invoice": "INV-002"})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set(IdempotencyKeyHeader, "sale-retry")
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)
	}

	if calls != 2 {
		t.Fatalf("expected failed checkout to be retryable, handler ran %d times", calls)
	}
}

func TestIdempotencyRequiredScopedPerUser(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	handler := func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	}

	for i := 0; i < 2; i++ {
		router := newIdempotencyRouter(repo, uuid.New(), handler)
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set(IdempotencyKeyHeader, "shared-key")
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i+1, res.Code)
		}
	}

	if calls != 2 {
		t.Fatalf("same key from different users should not collide, handler ran %d times", calls)
	}
}

func TestIdempotencyRequiredIgnoresExpiredKey(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	userID := uuid.New()
	repo.keys["old-key|"+userID.String()] = &entity.IdempotencyKey{
		Key:          "old-key",
		UserID:       userID,
		ResponseCode: http.StatusCreated,
		ResponseBody: `{"invoice":"INV-STALE"}`,
		ExpiresAt:    time.Now().Add(-time.Hour),
	}

	calls := 0
	router := newIdempotencyRouter(repo, userID, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"invoice": "INV-FRESH"})
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set(IdempotencyKeyHeader, "old-key")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if calls != 1 {
		t.Fatalf("expired key should not replay, handler ran %d times", calls)
	}
	if strings.Contains(res.Body.String(), "INV-STALE") {
		t.Fatalf("expired cached body leaked into response: %s", res.Body.String())
	}
}

func TestIdempotencyOptionalPassesWithoutKey(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_id", uuid.New()) })
	router.POST("/customers", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/customers", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i+1, res.Code)
		}
	}

	if calls != 2 {
		t.Fatalf("keyless requests must not be deduplicated, handler ran %d times", calls)
	}
}
