package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/application/service"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/pkg/pagination"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubPromotionRepo struct {
	byCode map[string]*entity.Promotion
}

func (r *stubPromotionRepo) Create(ctx context.Context, promo *entity.Promotion) error {
	r.byCode[promo.Code] = promo
	return nil
}

func (r *stubPromotionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	for _, promo := range r.byCode {
		if promo.ID == id {
			return promo, nil
		}
	}
	return nil, nil
}

func (r *stubPromotionRepo) GetByCode(ctx context.Context, code string) (*entity.Promotion, error) {
	return r.byCode[code], nil
}

func (r *stubPromotionRepo) Update(ctx context.Context, promo *entity.Promotion) error {
	r.byCode[promo.Code] = promo
	return nil
}

func (r *stubPromotionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for code, promo := range r.byCode {
		if promo.ID == id {
			delete(r.byCode, code)
		}
	}
	return nil
}

func (r *stubPromotionRepo) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.Promotion, int64, error) {
	var promos []entity.Promotion
	for _, promo := range r.byCode {
		if activeOnly && !promo.IsActive {
			continue
		}
		promos = append(promos, *promo)
	}
	return promos, int64(len(promos)), nil
}

func newPromotionTestRouter(repo *stubPromotionRepo) *gin.Engine {
	h := NewPromotionHandler(service.NewPromotionService(repo))
	router := gin.New()
	router.GET("/promotions/validate/:code", h.Validate)
	return router
}

func TestValidatePromotionCurrentCode(t *testing.T) {
	repo := &stubPromotionRepo{byCode: map[string]*entity.Promotion{
		"MADARAKA10": {
			ID:          uuid.New(),
			Name:        "Madaraka Day Sale",
			Code:        "MADARAKA10",
			DiscountPct: 10,
			StartsAt:    time.Now().Add(-time.Hour),
			EndsAt:      time.Now().Add(time.Hour),
			IsActive:    true,
		},
	}}
	router := newPromotionTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/promotions/validate/madaraka10", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 for current code, got %d: %s", res.Code, res.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Code        string  `json:"code"`
			DiscountPct float64 `json:"discount_pct"`
		} `json:"data"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success {
		t.Fatalf("expected success response")
	}
	if body.Data.Code != "MADARAKA10" {
		t.Fatalf("expected normalized code MADARAKA10, got %q", body.Data.Code)
	}
	if body.Data.DiscountPct != 10 {
		t.Fatalf("expected discount 10, got %v", body.Data.DiscountPct)
	}
}

func TestValidatePromotionExpiredCode(t *testing.T) {
	repo := &stubPromotionRepo{byCode: map[string]*entity.Promotion{
		"OLD5": {
			ID:          uuid.New(),
			Name:        "Last Month",
			Code:        "OLD5",
			DiscountPct: 5,
			StartsAt:    time.Now().Add(-48 * time.Hour),
			EndsAt:      time.Now().Add(-24 * time.Hour),
			IsActive:    true,
		},
	}}
	router := newPromotionTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/promotions/validate/OLD5", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for expired code, got %d", res.Code)
	}
}

func TestValidatePromotionUnknownCode(t *testing.T) {
	repo := &stubPromotionRepo{byCode: map[string]*entity.Promotion{}}
	router := newPromotionTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/promotions/validate/NOPE", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown code, got %d", res.Code)
	}
}

func TestValidatePromotionInactiveCode(t *testing.T) {
	repo := &stubPromotionRepo{byCode: map[string]*entity.Promotion{
		"PAUSED": {
			ID:          uuid.New(),
			Name:        "Paused Promo",
			Code:        "PAUSED",
			DiscountPct: 15,
			StartsAt:    time.Now().Add(-time.Hour),
			EndsAt:      time.Now().Add(time.Hour),
			IsActive:    false,
		},
	}}
	router := newPromotionTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/promotions/validate/PAUSED", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for inactive code, got %d", res.Code)
	}
}
