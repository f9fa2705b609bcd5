package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	infraRepo "github.com/mwangikib/dukapos-api/internal/infrastructure/repository"
	"github.com/mwangikib/dukapos-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTManager() *utils.JWTManager {
	return utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware(newTestJWTManager()))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without Authorization header, got %d", res.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware(newTestJWTManager()))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Token abc123")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed header, got %d", res.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware(newTestJWTManager()))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", res.Code)
	}
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	jwtManager := newTestJWTManager()
	refresh, err := jwtManager.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	router := gin.New()
	router.Use(AuthMiddleware(jwtManager))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for refresh token on access route, got %d", res.Code)
	}
}

func TestAuthMiddlewareBindsStoreToRequestContext(t *testing.T) {
	jwtManager := newTestJWTManager()
	userID := uuid.New()
	storeID := uuid.New()
	token, err := jwtManager.GenerateAccessToken(userID, storeID, "cashier@duka.co.ke", "cashier")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	var gotGinStore uuid.UUID
	var gotCtxStore uuid.UUID
	var gotRole string

	router := gin.New()
	router.Use(AuthMiddleware(jwtManager))
	router.GET("/ping", func(c *gin.Context) {
		gotGinStore = GetStoreID(c)
		gotCtxStore, _ = infraRepo.GetStoreID(c.Request.Context())
		gotRole = c.GetString("user_role")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d", res.Code)
	}
	if gotGinStore != storeID {
		t.Fatalf("expected gin store ID %s, got %s", storeID, gotGinStore)
	}
	if gotCtxStore != storeID {
		t.Fatalf("expected request context store ID %s, got %s", storeID, gotCtxStore)
	}
	if gotRole != "cashier" {
		t.Fatalf("expected role cashier, got %q", gotRole)
	}
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_role", "admin") })
	router.Use(RequireRole("admin"))
	router.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", res.Code)
	}
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_role", "cashier") })
	router.Use(RequireRole("admin"))
	router.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for cashier on admin route, got %d", res.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	router := gin.New()
	router.Use(RequireRole("admin"))
	router.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without role, got %d", res.Code)
	}
}
