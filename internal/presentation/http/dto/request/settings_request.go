package request

import "time"

// UpdateStoreRequest represents a store settings update
type UpdateStoreRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" binding:"omitempty,max=32"`
	Email   *string `json:"email" binding:"omitempty,email"`
	TaxPIN  *string `json:"tax_pin" binding:"omitempty,max=64"`
}

// CreateBranchRequest represents a branch creation request
type CreateBranchRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" binding:"omitempty,max=32"`
}

// UpdateBranchRequest represents a branch update request
type UpdateBranchRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" binding:"omitempty,max=32"`
}

// CreatePaymentMethodRequest represents a payment method creation request
type CreatePaymentMethodRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Code      string `json:"code" binding:"required,min=2,max=50"`
	SortOrder int    `json:"sort_order" binding:"min=0"`
}

// UpdatePaymentMethodRequest represents a payment method update request
type UpdatePaymentMethodRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=100"`
	IsActive  *bool   `json:"is_active"`
	SortOrder *int    `json:"sort_order" binding:"omitempty,min=0"`
}

// CreatePromotionRequest represents a promotion creation request
type CreatePromotionRequest struct {
	Name        string    `json:"name" binding:"required,min=2,max=255"`
	Code        string    `json:"code" binding:"required,min=2,max=50"`
	DiscountPct float64   `json:"discount_pct" binding:"required,gt=0,max=100"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
}

// UpdatePromotionRequest represents a promotion update request
type UpdatePromotionRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=2,max=255"`
	DiscountPct *float64   `json:"discount_pct" binding:"omitempty,gt=0,max=100"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	IsActive    *bool      `json:"is_active"`
}
