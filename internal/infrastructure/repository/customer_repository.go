package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	domainRepo "github.com/mwangikib/dukapos-api/internal/domain/repository"
	"github.com/mwangikib/dukapos-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Scopes(StoreScope(ctx)).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Scopes(StoreScope(ctx)).First(&customer, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(StoreScope(ctx)).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Scopes(StoreScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR barcode ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&customers).Error

	return customers, total, err
}

// ListWithCursor returns customers using cursor-based pagination
func (r *customerRepository) ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Customer, error) {
	var customers []entity.Customer

	params.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Scopes(StoreScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR barcode ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Limit + 1).
		Order("created_at ASC, id ASC").
		Find(&customers).Error

	return customers, err
}

// RedeemBalances atomically deducts loyalty points and ewallet cents. The
// conditional WHERE guarantees a concurrent checkout can never overdraw
// either balance.
func (r *customerRepository) RedeemBalances(ctx context.Context, id uuid.UUID, points int64, ewalletCents int64) (bool, error) {
	if points == 0 && ewalletCents == 0 {
		return true, nil
	}

	result := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Where("id = ? AND loyalty_points >= ? AND ewallet_balance >= ?", id, points, ewalletCents).
		Updates(map[string]interface{}{
			"loyalty_points":  gorm.Expr("loyalty_points - ?", points),
			"ewallet_balance": gorm.Expr("ewallet_balance - ?", ewalletCents),
		})

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, a balance was insufficient
	return result.RowsAffected > 0, nil
}

// RestoreBalances credits loyalty points and ewallet cents back (for cancellations/refunds).
func (r *customerRepository) RestoreBalances(ctx context.Context, id uuid.UUID, points int64, ewalletCents int64) error {
	if points == 0 && ewalletCents == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&entity.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"loyalty_points":  gorm.Expr("loyalty_points + ?", points),
			"ewallet_balance": gorm.Expr("ewallet_balance + ?", ewalletCents),
		}).Error
}

// AwardPoints credits loyalty points earned on a completed sale.
func (r *customerRepository) AwardPoints(ctx context.Context, id uuid.UUID, points int64) error {
	if points <= 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&entity.Customer{}).
		Where("id = ?", id).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error
}
