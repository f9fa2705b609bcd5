package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	domainRepo "github.com/mwangikib/dukapos-api/internal/domain/repository"
	"github.com/mwangikib/dukapos-api/pkg/pagination"
	"gorm.io/gorm"
)

type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db *gorm.DB) domainRepo.PromotionRepository {
	return &promotionRepository{db: db}
}

func (r *promotionRepository) Create(ctx context.Context, promo *entity.Promotion) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

func (r *promotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	var promo entity.Promotion
	err := r.db.WithContext(ctx).Scopes(StoreScope(ctx)).First(&promo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &promo, err
}

func (r *promotionRepository) GetByCode(ctx context.Context, code string) (*entity.Promotion, error) {
	var promo entity.Promotion
	err := r.db.WithContext(ctx).Scopes(StoreScope(ctx)).First(&promo, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &promo, err
}

func (r *promotionRepository) Update(ctx context.Context, promo *entity.Promotion) error {
	return r.db.WithContext(ctx).Save(promo).Error
}

func (r *promotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(StoreScope(ctx)).Delete(&entity.Promotion{}, "id = ?", id).Error
}

func (r *promotionRepository) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.Promotion, int64, error) {
	var promos []entity.Promotion
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Promotion{}).Scopes(StoreScope(ctx))
	if activeOnly {
		now := time.Now()
		query = query.Where("is_active = ? AND starts_at <= ? AND ends_at > ?", true, now, now)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("starts_at DESC").
		Find(&promos).Error

	return promos, total, err
}
