package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/internal/domain/repository"
	infraRepo "github.com/mwangikib/dukapos-api/internal/infrastructure/repository"
	"github.com/mwangikib/dukapos-api/pkg/apperror"
	"github.com/mwangikib/dukapos-api/pkg/utils"
)

// StoreService manages store settings and branches
type StoreService struct {
	storeRepo  repository.StoreRepository
	branchRepo repository.BranchRepository
}

// NewStoreService creates a new store service
func NewStoreService(storeRepo repository.StoreRepository, branchRepo repository.BranchRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo, branchRepo: branchRepo}
}

// GetCurrentStore returns the store bound to the request context
func (s *StoreService) GetCurrentStore(ctx context.Context) (*entity.Store, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Store context required")
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return store, nil
}

// UpdateStoreInput represents the update store input
type UpdateStoreInput struct {
	Name    *string
	Address *string
	Phone   *string
	Email   *string
	TaxPIN  *string
}

// UpdateStore edits store settings. These details print on every receipt.
func (s *StoreService) UpdateStore(ctx context.Context, input *UpdateStoreInput) (*entity.Store, error) {
	store, err := s.GetCurrentStore(ctx)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		store.Name = *input.Name
		store.Slug = utils.Slugify(*input.Name)
	}
	if input.Address != nil {
		store.Address = input.Address
	}
	if input.Phone != nil {
		store.Phone = input.Phone
	}
	if input.Email != nil {
		store.Email = input.Email
	}
	if input.TaxPIN != nil {
		store.TaxPIN = input.TaxPIN
	}

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// CreateBranchInput represents the create branch input
type CreateBranchInput struct {
	Name    string
	Address *string
	Phone   *string
}

// CreateBranch adds a branch to the current store
func (s *StoreService) CreateBranch(ctx context.Context, input *CreateBranchInput) (*entity.Branch, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Store context required")
	}

	branch := &entity.Branch{
		StoreID: storeID,
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
	}

	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// UpdateBranchInput represents the update branch input
type UpdateBranchInput struct {
	Name    *string
	Address *string
	Phone   *string
}

// UpdateBranch edits a branch
func (s *StoreService) UpdateBranch(ctx context.Context, id uuid.UUID, input *UpdateBranchInput) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if input.Name != nil {
		branch.Name = *input.Name
	}
	if input.Address != nil {
		branch.Address = input.Address
	}
	if input.Phone != nil {
		branch.Phone = input.Phone
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// DeleteBranch removes a branch
func (s *StoreService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}
	return s.branchRepo.Delete(ctx, id)
}

// ListBranches lists the current store's branches
func (s *StoreService) ListBranches(ctx context.Context) ([]entity.Branch, error) {
	return s.branchRepo.List(ctx)
}
