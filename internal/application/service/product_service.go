package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/internal/domain/repository"
	"github.com/mwangikib/dukapos-api/internal/infrastructure/cache"
	infraRepo "github.com/mwangikib/dukapos-api/internal/infrastructure/repository"
	"github.com/mwangikib/dukapos-api/pkg/apperror"
	"github.com/mwangikib/dukapos-api/pkg/pagination"
	"github.com/mwangikib/dukapos-api/pkg/utils"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	taxRateRepo  repository.TaxRateRepository
	productCache cache.ProductCache
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	taxRateRepo repository.TaxRateRepository,
	productCache cache.ProductCache,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		taxRateRepo:  taxRateRepo,
		productCache: productCache,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	Barcode       string
	CategoryID    *uuid.UUID
	TaxRateIDs    []uuid.UUID
	Quantity      int
	QuantityAlert int
	OriginalPrice float64
	Price         float64
	IsWeighted    bool
	Image         *string
	Description   *string
}

// CreateProduct adds a product to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Store context required")
	}

	barcode := input.Barcode
	if barcode == "" {
		barcode = utils.GenerateBarcode()
	} else {
		existing, err := s.productRepo.GetByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Barcode already in use")
		}
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	taxRates, err := s.taxRateRepo.GetByIDs(ctx, input.TaxRateIDs)
	if err != nil {
		return nil, err
	}
	if len(taxRates) != len(input.TaxRateIDs) {
		return nil, apperror.NewNotFoundError("Tax rate")
	}

	product := &entity.Product{
		StoreID:       storeID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Slug:          utils.Slugify(input.Name),
		Barcode:       barcode,
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		IsWeighted:    input.IsWeighted,
		IsActive:      true,
		Image:         input.Image,
		Description:   input.Description,
		TaxRates:      taxRates,
	}
	product.SetOriginalPriceFromDecimal(input.OriginalPrice)
	product.SetPriceFromDecimal(input.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode resolves a scanned barcode, serving hot items from
// cache. This is the most frequent query the register makes.
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Store context required")
	}

	if cached, _ := s.productCache.GetByBarcode(ctx, storeID, barcode); cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	_ = s.productCache.Set(ctx, product)
	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Name          *string
	CategoryID    *uuid.UUID
	TaxRateIDs    []uuid.UUID
	QuantityAlert *int
	OriginalPrice *float64
	Price         *float64
	IsWeighted    *bool
	IsActive      *bool
	Image         *string
	Description   *string
}

// UpdateProduct edits a catalog entry and invalidates its cached barcode
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = utils.Slugify(*input.Name)
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.TaxRateIDs != nil {
		taxRates, err := s.taxRateRepo.GetByIDs(ctx, input.TaxRateIDs)
		if err != nil {
			return nil, err
		}
		if len(taxRates) != len(input.TaxRateIDs) {
			return nil, apperror.NewNotFoundError("Tax rate")
		}
		product.TaxRates = taxRates
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.OriginalPrice != nil {
		product.SetOriginalPriceFromDecimal(*input.OriginalPrice)
	}
	if input.Price != nil {
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.IsWeighted != nil {
		product.IsWeighted = *input.IsWeighted
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.Image != nil {
		product.Image = input.Image
	}
	if input.Description != nil {
		product.Description = input.Description
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	_ = s.productCache.Invalidate(ctx, product.StoreID, product.Barcode)

	return s.productRepo.GetByID(ctx, id)
}

// AdjustStockInput represents a manual stock adjustment
type AdjustStockInput struct {
	Quantity int
}

// AdjustStock sets a product's on-hand quantity after a stock take
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, input *AdjustStockInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}

	product.Quantity = input.Quantity
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	_ = s.productCache.Invalidate(ctx, product.StoreID, product.Barcode)
	return product, nil
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.productCache.Invalidate(ctx, product.StoreID, product.Barcode)
	return nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStockProducts returns products at or below their alert threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name string
}

// CreateCategory adds a product category
func (s *ProductService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Store context required")
	}

	category := &entity.Category{
		StoreID: storeID,
		Name:    input.Name,
		Slug:    utils.Slugify(input.Name),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists categories
func (s *ProductService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// DeleteCategory removes a category
func (s *ProductService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// CreateTaxRateInput represents the create tax rate input
type CreateTaxRateInput struct {
	Name      string
	Rate      float64
	IsDefault bool
}

// CreateTaxRate adds a named tax rate
func (s *ProductService) CreateTaxRate(ctx context.Context, input *CreateTaxRateInput) (*entity.TaxRate, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Store context required")
	}

	if input.Rate < 0 || input.Rate > 100 {
		return nil, apperror.NewBadRequestError("Rate must be between 0 and 100")
	}

	rate := &entity.TaxRate{
		StoreID:   storeID,
		Name:      input.Name,
		Rate:      input.Rate,
		IsDefault: input.IsDefault,
	}

	if err := s.taxRateRepo.Create(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// ListTaxRates lists the store's tax rates
func (s *ProductService) ListTaxRates(ctx context.Context) ([]entity.TaxRate, error) {
	return s.taxRateRepo.List(ctx)
}

// DeleteTaxRate removes a tax rate
func (s *ProductService) DeleteTaxRate(ctx context.Context, id uuid.UUID) error {
	rate, err := s.taxRateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rate == nil {
		return apperror.NewNotFoundError("Tax rate")
	}
	return s.taxRateRepo.Delete(ctx, id)
}
