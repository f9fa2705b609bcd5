package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/checkout"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/internal/domain/enum"
	"github.com/mwangikib/dukapos-api/internal/domain/repository"
	"github.com/mwangikib/dukapos-api/internal/events"
	infraRepo "github.com/mwangikib/dukapos-api/internal/infrastructure/repository"
	"github.com/mwangikib/dukapos-api/internal/metrics"
	"github.com/mwangikib/dukapos-api/pkg/apperror"
	"github.com/mwangikib/dukapos-api/pkg/pagination"
	"github.com/mwangikib/dukapos-api/pkg/utils"
)

// EarnRateCents is how many cents of spend earn one loyalty point.
const EarnRateCents int64 = 100

// OrderService handles checkout and order lifecycle operations
type OrderService struct {
	orderRepo         repository.OrderRepository
	productRepo       repository.ProductRepository
	customerRepo      repository.CustomerRepository
	paymentMethodRepo repository.PaymentMethodRepository
	promotionRepo     repository.PromotionRepository
	publisher         events.Publisher
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
	promotionRepo repository.PromotionRepository,
	publisher events.Publisher,
) *OrderService {
	return &OrderService{
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		customerRepo:      customerRepo,
		paymentMethodRepo: paymentMethodRepo,
		promotionRepo:     promotionRepo,
		publisher:         publisher,
	}
}

// OrderItemInput represents a cart line at checkout
type OrderItemInput struct {
	ProductID   uuid.UUID
	Quantity    int
	DiscountPct float64
}

// PaymentInput represents one tender entry
type PaymentInput struct {
	PaymentMethodID uuid.UUID
	Amount          float64
	Reference       *string
}

// CreateOrderInput represents the create order input. Unit prices and tax
// rates are NOT accepted from the client; the catalog is authoritative.
type CreateOrderInput struct {
	UserID        uuid.UUID
	BranchID      *uuid.UUID
	CustomerID    *uuid.UUID
	DiscountPct   float64
	PromoCode     string
	Items         []OrderItemInput
	Payments      []PaymentInput
	EwalletAmount float64
	LoyaltyPoints int64
	IsOnline      bool
	Note          *string
}

// CreateOrder rings up a sale: it prices the cart from the catalog,
// validates every tender cap server-side, decrements stock and customer
// balances atomically, and persists the order with its snapshots.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Store context required")
	}

	if len(input.Items) == 0 {
		metrics.CheckoutFailuresTotal.WithLabelValues("empty_cart").Inc()
		return nil, apperror.NewBadRequestError("Cannot check out an empty cart")
	}

	// Resolve the customer before touching balances
	var customer *entity.Customer
	if input.CustomerID != nil {
		var err error
		customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	// A promo code overrides any manually keyed cart discount
	discountPct := checkout.ClampDiscount(input.DiscountPct)
	if input.PromoCode != "" {
		promo, err := s.promotionRepo.GetByCode(ctx, input.PromoCode)
		if err != nil {
			return nil, err
		}
		if promo == nil || !promo.IsCurrent(time.Now()) {
			metrics.CheckoutFailuresTotal.WithLabelValues("invalid_promo").Inc()
			return nil, apperror.NewUnprocessableError("Promotion code is not valid")
		}
		discountPct = checkout.ClampDiscount(promo.DiscountPct)
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Price the cart off the catalog, never off the request
	lines := make([]checkout.Line, 0, len(input.Items))
	orderItems := make([]entity.OrderItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]int)

	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !product.IsActive {
			metrics.CheckoutFailuresTotal.WithLabelValues("inactive_product").Inc()
			return nil, apperror.NewUnprocessableError(fmt.Sprintf("Product %s is not for sale", product.Name))
		}

		line := checkout.Line{
			UnitPrice: product.Price,
			Quantity:  checkout.ClampQuantity(item.Quantity),
			Discount:  checkout.ClampDiscount(item.DiscountPct),
			TaxRates:  product.TaxRatePercents(),
		}
		lines = append(lines, line)

		orderItems = append(orderItems, entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			DiscountPct: line.Discount,
			TaxRates:    entity.TaxRateList(line.TaxRates),
			SubTotal:    line.Subtotal(),
			Tax:         line.Tax(),
		})

		// Weighted items sell by the each as far as stock is concerned
		stockDecrements[product.ID] += line.Quantity
	}

	totals := checkout.ComputeTotals(lines, discountPct)

	// Validate tenders against active payment methods
	var tendered int64
	payments := make([]entity.OrderPayment, 0, len(input.Payments))
	if len(input.Payments) > 0 {
		methodIDs := make([]uuid.UUID, len(input.Payments))
		for i, p := range input.Payments {
			methodIDs[i] = p.PaymentMethodID
		}
		methods, err := s.paymentMethodRepo.GetByIDs(ctx, methodIDs)
		if err != nil {
			return nil, err
		}
		methodMap := make(map[uuid.UUID]*entity.PaymentMethod, len(methods))
		for i := range methods {
			methodMap[methods[i].ID] = &methods[i]
		}

		for _, p := range input.Payments {
			method, exists := methodMap[p.PaymentMethodID]
			if !exists || !method.IsActive {
				metrics.CheckoutFailuresTotal.WithLabelValues("invalid_payment_method").Inc()
				return nil, apperror.NewUnprocessableError("Payment method is not available")
			}
			amountCents := checkout.Cents(p.Amount)
			if amountCents < 0 {
				return nil, apperror.NewBadRequestError("Payment amount cannot be negative")
			}
			tendered += amountCents
			payments = append(payments, entity.OrderPayment{
				PaymentMethodID: method.ID,
				MethodName:      method.Name,
				Amount:          amountCents,
				Reference:       p.Reference,
			})
		}
	}

	// Server-side caps: the register UI enforces these too, but the client
	// is never trusted
	ewalletCents := checkout.Cents(input.EwalletAmount)
	points := input.LoyaltyPoints
	if ewalletCents < 0 || points < 0 {
		return nil, apperror.NewBadRequestError("Redemption amounts cannot be negative")
	}
	if (ewalletCents > 0 || points > 0) && customer == nil {
		metrics.CheckoutFailuresTotal.WithLabelValues("redemption_without_customer").Inc()
		return nil, apperror.NewUnprocessableError("A customer is required to redeem points or ewallet balance")
	}
	if customer != nil {
		if points > checkout.MaxRedeemablePoints(totals.Total, customer.LoyaltyPoints) {
			metrics.CheckoutFailuresTotal.WithLabelValues("points_cap").Inc()
			return nil, apperror.NewUnprocessableError("Loyalty points exceed the redeemable amount")
		}
		if ewalletCents > customer.EwalletBalance {
			metrics.CheckoutFailuresTotal.WithLabelValues("ewallet_cap").Inc()
			return nil, apperror.NewUnprocessableError("Ewallet amount exceeds the customer's balance")
		}
	}

	allocation := checkout.Allocation{
		Tendered: tendered,
		Ewallet:  ewalletCents,
		Points:   points,
	}

	if !checkout.Covered(totals.Total, allocation) {
		metrics.CheckoutFailuresTotal.WithLabelValues("insufficient_payment").Inc()
		return nil, apperror.ErrInsufficientPayment
	}
	changeDue := checkout.Change(totals.Total, allocation)

	// Atomically decrement stock; insufficient stock rolls everything back
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		metrics.CheckoutFailuresTotal.WithLabelValues("insufficient_stock").Inc()
		return nil, apperror.NewAppError(400, fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	// Deduct the customer's balances with the same conditional-update
	// guarantee as stock
	if customer != nil && (points > 0 || ewalletCents > 0) {
		redeemed, err := s.customerRepo.RedeemBalances(ctx, customer.ID, points, ewalletCents)
		if err != nil {
			_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
			return nil, err
		}
		if !redeemed {
			_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
			metrics.CheckoutFailuresTotal.WithLabelValues("balance_conflict").Inc()
			return nil, apperror.NewUnprocessableError("Customer balance changed, please retry")
		}
	}

	order := &entity.Order{
		StoreID:       storeID,
		BranchID:      input.BranchID,
		UserID:        input.UserID,
		CustomerID:    input.CustomerID,
		Status:        enum.OrderStatusCompleted,
		InvoiceNo:     utils.GenerateInvoiceNo("INV"),
		SubTotal:      totals.SubTotal,
		DiscountPct:   discountPct,
		DiscountTotal: totals.Discount,
		TaxTotal:      totals.Tax,
		Total:         totals.Total,
		EwalletAmount: ewalletCents,
		LoyaltyPoints: points,
		TenderedTotal: tendered,
		ChangeDue:     changeDue,
		IsOnline:      input.IsOnline,
		Note:          input.Note,
		Items:         orderItems,
		Payments:      payments,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		if customer != nil {
			_ = s.customerRepo.RestoreBalances(ctx, customer.ID, points, ewalletCents)
		}
		return nil, err
	}

	// Award points on the portion actually paid with money, not with points
	if customer != nil {
		earned := (tendered + ewalletCents) / EarnRateCents
		if earned > 0 {
			_ = s.customerRepo.AwardPoints(ctx, customer.ID, earned)
		}
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderTotalCents.Observe(float64(totals.Total))

	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		// The sale stands even if downstream consumers miss the event
		log.Printf("warning: failed to publish order created event: %v", err)
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// HoldOrder parks a cart so the register is free for the next customer.
// No stock is reserved and no payment is taken until the cart is resumed.
func (s *OrderService) HoldOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Store context required")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Cannot hold an empty cart")
	}

	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	discountPct := checkout.ClampDiscount(input.DiscountPct)
	lines := make([]checkout.Line, 0, len(input.Items))
	orderItems := make([]entity.OrderItem, 0, len(input.Items))

	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		line := checkout.Line{
			UnitPrice: product.Price,
			Quantity:  checkout.ClampQuantity(item.Quantity),
			Discount:  checkout.ClampDiscount(item.DiscountPct),
			TaxRates:  product.TaxRatePercents(),
		}
		lines = append(lines, line)
		orderItems = append(orderItems, entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			DiscountPct: line.Discount,
			TaxRates:    entity.TaxRateList(line.TaxRates),
			SubTotal:    line.Subtotal(),
			Tax:         line.Tax(),
		})
	}

	totals := checkout.ComputeTotals(lines, discountPct)

	order := &entity.Order{
		StoreID:       storeID,
		BranchID:      input.BranchID,
		UserID:        input.UserID,
		CustomerID:    input.CustomerID,
		Status:        enum.OrderStatusHeld,
		InvoiceNo:     utils.GenerateInvoiceNo("HLD"),
		SubTotal:      totals.SubTotal,
		DiscountPct:   discountPct,
		DiscountTotal: totals.Discount,
		TaxTotal:      totals.Tax,
		Total:         totals.Total,
		Note:          input.Note,
		Items:         orderItems,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// ListHeldOrders returns the parked carts for the store
func (s *OrderService) ListHeldOrders(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.ListHeld(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ResumeOrder retrieves a held cart and removes it from the hold queue.
// The returned snapshot is what the register loads back into the cart;
// checkout then proceeds as a fresh order at current catalog prices.
func (s *OrderService) ResumeOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusHeld {
		return nil, apperror.NewBadRequestError("Only held orders can be resumed")
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListOrdersWithCursor lists orders with cursor-based pagination
func (s *OrderService) ListOrdersWithCursor(ctx context.Context, params *repository.OrderCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Order], error) {
	orders, err := s.orderRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(orders, params.Cursor.Limit,
		func(o entity.Order) string { return o.ID.String() },
		func(o entity.Order) time.Time { return o.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// CancelOrder cancels a completed order, restores stock and customer balances
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID, reason string) error {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status.IsTerminal() {
		return apperror.NewBadRequestError("Order is already " + order.Status.String())
	}

	if err := s.restoreOrderSideEffects(ctx, order); err != nil {
		return err
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, enum.OrderStatusCancelled); err != nil {
		return err
	}

	metrics.OrdersCancelledTotal.Inc()

	if err := s.publisher.PublishOrderCancelled(ctx, order, reason); err != nil {
		log.Printf("warning: failed to publish order cancelled event: %v", err)
	}

	return nil
}

// RefundOrder refunds a completed order. Stock returns to the shelf and any
// redeemed points or ewallet balance goes back to the customer.
func (s *OrderService) RefundOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusCompleted {
		return apperror.NewBadRequestError("Only completed orders can be refunded")
	}

	if err := s.restoreOrderSideEffects(ctx, order); err != nil {
		return err
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, enum.OrderStatusRefunded); err != nil {
		return err
	}

	metrics.OrdersRefundedTotal.Inc()

	if err := s.publisher.PublishOrderRefunded(ctx, order); err != nil {
		log.Printf("warning: failed to publish order refunded event: %v", err)
	}

	return nil
}

// DeleteOrder removes a held or cancelled order. Completed orders stay on
// the books; refund them instead.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.OrderStatusCompleted || order.Status == enum.OrderStatusRefunded {
		return apperror.NewBadRequestError("Completed orders cannot be deleted")
	}

	return s.orderRepo.Delete(ctx, id)
}

func (s *OrderService) restoreOrderSideEffects(ctx context.Context, order *entity.Order) error {
	// Held orders never touched stock or balances
	if order.Status == enum.OrderStatusHeld {
		return nil
	}

	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range order.Items {
		stockIncrements[item.ProductID] += item.Quantity
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return err
	}

	if order.CustomerID != nil && (order.LoyaltyPoints > 0 || order.EwalletAmount > 0) {
		if err := s.customerRepo.RestoreBalances(ctx, *order.CustomerID, order.LoyaltyPoints, order.EwalletAmount); err != nil {
			return err
		}
	}

	return nil
}
