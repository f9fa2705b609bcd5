package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/checkout"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/internal/domain/repository"
	infraRepo "github.com/mwangikib/dukapos-api/internal/infrastructure/repository"
	"github.com/mwangikib/dukapos-api/pkg/apperror"
	"github.com/mwangikib/dukapos-api/pkg/pagination"
	"github.com/mwangikib/dukapos-api/pkg/utils"
)

// CustomerService handles loyalty member operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Phone   *string
	Email   *string
	Barcode string
	Address *string
}

// CreateCustomer registers a loyalty member. A membership barcode is
// generated when the caller does not supply one.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Store context required")
	}

	barcode := input.Barcode
	if barcode == "" {
		barcode = utils.GenerateBarcode()
	} else {
		existing, err := s.customerRepo.GetByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Barcode already in use")
		}
	}

	customer := &entity.Customer{
		StoreID: storeID,
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Barcode: barcode,
		Address: input.Address,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetCustomerByBarcode resolves a scanned membership card
func (s *CustomerService) GetCustomerByBarcode(ctx context.Context, barcode string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// UpdateCustomer edits contact details. Points and wallet balances are
// never written here; they only move through checkout and top-ups.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// TopUpEwalletInput represents an e-wallet deposit
type TopUpEwalletInput struct {
	Amount float64
}

// TopUpEwallet credits a customer's prepaid wallet
func (s *CustomerService) TopUpEwallet(ctx context.Context, id uuid.UUID, input *TopUpEwalletInput) (*entity.Customer, error) {
	amount := checkout.Cents(input.Amount)
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if err := s.customerRepo.RestoreBalances(ctx, id, 0, amount); err != nil {
		return nil, err
	}
	return s.customerRepo.GetByID(ctx, id)
}

// DeleteCustomer removes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers lists customers with filtering
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}
