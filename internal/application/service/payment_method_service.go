package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/internal/domain/repository"
	infraRepo "github.com/mwangikib/dukapos-api/internal/infrastructure/repository"
	"github.com/mwangikib/dukapos-api/pkg/apperror"
)

// PaymentMethodService manages the tender types a register accepts
type PaymentMethodService struct {
	paymentMethodRepo repository.PaymentMethodRepository
}

// NewPaymentMethodService creates a new payment method service
func NewPaymentMethodService(paymentMethodRepo repository.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{paymentMethodRepo: paymentMethodRepo}
}

// CreatePaymentMethodInput represents the create payment method input
type CreatePaymentMethodInput struct {
	Name      string
	Code      string
	SortOrder int
}

// CreatePaymentMethod adds a tender type
func (s *PaymentMethodService) CreatePaymentMethod(ctx context.Context, input *CreatePaymentMethodInput) (*entity.PaymentMethod, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Store context required")
	}

	existing, err := s.paymentMethodRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Payment method code already in use")
	}

	method := &entity.PaymentMethod{
		StoreID:   storeID,
		Name:      input.Name,
		Code:      input.Code,
		IsActive:  true,
		SortOrder: input.SortOrder,
	}

	if err := s.paymentMethodRepo.Create(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// UpdatePaymentMethodInput represents the update payment method input
type UpdatePaymentMethodInput struct {
	Name      *string
	IsActive  *bool
	SortOrder *int
}

// UpdatePaymentMethod edits a tender type
func (s *PaymentMethodService) UpdatePaymentMethod(ctx context.Context, id uuid.UUID, input *UpdatePaymentMethodInput) (*entity.PaymentMethod, error) {
	method, err := s.paymentMethodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.NewNotFoundError("Payment method")
	}

	if input.Name != nil {
		method.Name = *input.Name
	}
	if input.IsActive != nil {
		method.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		method.SortOrder = *input.SortOrder
	}

	if err := s.paymentMethodRepo.Update(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// DeletePaymentMethod removes a tender type. Orders keep their snapshot of
// the method name so history stays intact.
func (s *PaymentMethodService) DeletePaymentMethod(ctx context.Context, id uuid.UUID) error {
	method, err := s.paymentMethodRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if method == nil {
		return apperror.NewNotFoundError("Payment method")
	}
	return s.paymentMethodRepo.Delete(ctx, id)
}

// ListPaymentMethods lists tender types, optionally only active ones
func (s *PaymentMethodService) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]entity.PaymentMethod, error) {
	return s.paymentMethodRepo.List(ctx, activeOnly)
}
