package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/internal/domain/repository"
	infraRepo "github.com/mwangikib/dukapos-api/internal/infrastructure/repository"
	"github.com/mwangikib/dukapos-api/pkg/apperror"
	"github.com/mwangikib/dukapos-api/pkg/pagination"
)

// PromotionService manages time-boxed discount codes
type PromotionService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionService creates a new promotion service
func NewPromotionService(promotionRepo repository.PromotionRepository) *PromotionService {
	return &PromotionService{promotionRepo: promotionRepo}
}

// CreatePromotionInput represents the create promotion input
type CreatePromotionInput struct {
	Name        string
	Code        string
	DiscountPct float64
	StartsAt    time.Time
	EndsAt      time.Time
}

// CreatePromotion adds a discount code
func (s *PromotionService) CreatePromotion(ctx context.Context, input *CreatePromotionInput) (*entity.Promotion, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Store context required")
	}

	if input.DiscountPct <= 0 || input.DiscountPct > 100 {
		return nil, apperror.NewBadRequestError("Discount must be between 0 and 100")
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, apperror.NewBadRequestError("End date must be after start date")
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	existing, err := s.promotionRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Promotion code already in use")
	}

	promo := &entity.Promotion{
		StoreID:     storeID,
		Name:        input.Name,
		Code:        code,
		DiscountPct: input.DiscountPct,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		IsActive:    true,
	}

	if err := s.promotionRepo.Create(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// UpdatePromotionInput represents the update promotion input
type UpdatePromotionInput struct {
	Name        *string
	DiscountPct *float64
	StartsAt    *time.Time
	EndsAt      *time.Time
	IsActive    *bool
}

// UpdatePromotion edits a promotion
func (s *PromotionService) UpdatePromotion(ctx context.Context, id uuid.UUID, input *UpdatePromotionInput) (*entity.Promotion, error) {
	promo, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, apperror.NewNotFoundError("Promotion")
	}

	if input.Name != nil {
		promo.Name = *input.Name
	}
	if input.DiscountPct != nil {
		if *input.DiscountPct <= 0 || *input.DiscountPct > 100 {
			return nil, apperror.NewBadRequestError("Discount must be between 0 and 100")
		}
		promo.DiscountPct = *input.DiscountPct
	}
	if input.StartsAt != nil {
		promo.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		promo.EndsAt = *input.EndsAt
	}
	if !promo.EndsAt.After(promo.StartsAt) {
		return nil, apperror.NewBadRequestError("End date must be after start date")
	}
	if input.IsActive != nil {
		promo.IsActive = *input.IsActive
	}

	if err := s.promotionRepo.Update(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// DeletePromotion removes a promotion
func (s *PromotionService) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	promo, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if promo == nil {
		return apperror.NewNotFoundError("Promotion")
	}
	return s.promotionRepo.Delete(ctx, id)
}

// ListPromotions lists promotions
func (s *PromotionService) ListPromotions(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) (*pagination.PaginatedResult[entity.Promotion], error) {
	promos, total, err := s.promotionRepo.List(ctx, params, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(promos, pag), nil
}

// ValidateCode checks a promotion code against its active window and
// returns the promotion when it applies right now
func (s *PromotionService) ValidateCode(ctx context.Context, code string) (*entity.Promotion, error) {
	promo, err := s.promotionRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if promo == nil || !promo.IsCurrent(time.Now()) {
		return nil, apperror.NewUnprocessableError("Promotion code is not valid")
	}
	return promo, nil
}
