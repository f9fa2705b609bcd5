package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/internal/domain/enum"
	"github.com/mwangikib/dukapos-api/internal/domain/repository"
	"github.com/mwangikib/dukapos-api/internal/events"
	infraRepo "github.com/mwangikib/dukapos-api/internal/infrastructure/repository"
	"github.com/mwangikib/dukapos-api/pkg/apperror"
	"github.com/mwangikib/dukapos-api/pkg/pagination"
)

// ---- fakes -----------------------------------------------------------------

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.InvoiceNo == invoiceNo {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ListWithCursor(ctx context.Context, params *repository.OrderCursorFilterParams) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) ListHeld(ctx context.Context, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range r.orders {
		if o.Status == enum.OrderStatusHeld {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) CreateBatch(ctx context.Context, products []entity.Product) error {
	for i := range products {
		r.products[products[i].ID] = &products[i]
	}
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListWithCursor(ctx context.Context, params *repository.ProductCursorFilterParams) ([]entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, qty := range decrements {
		p, ok := r.products[id]
		if !ok || p.Quantity < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		r.products[id].Quantity -= qty
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		if p, ok := r.products[id]; ok {
			p.Quantity += qty
		}
	}
	return nil
}

type fakeCustomerRepo struct {
	customers   map[uuid.UUID]*entity.Customer
	redeemFails bool
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Barcode == barcode {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

func (r *fakeCustomerRepo) ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) RedeemBalances(ctx context.Context, id uuid.UUID, points int64, ewalletCents int64) (bool, error) {
	if r.redeemFails {
		return false, nil
	}
	c, ok := r.customers[id]
	if !ok || c.LoyaltyPoints < points || c.EwalletBalance < ewalletCents {
		return false, nil
	}
	c.LoyaltyPoints -= points
	c.EwalletBalance -= ewalletCents
	return true, nil
}

func (r *fakeCustomerRepo) RestoreBalances(ctx context.Context, id uuid.UUID, points int64, ewalletCents int64) error {
	if c, ok := r.customers[id]; ok {
		c.LoyaltyPoints += points
		c.EwalletBalance += ewalletCents
	}
	return nil
}

func (r *fakeCustomerRepo) AwardPoints(ctx context.Context, id uuid.UUID, points int64) error {
	if c, ok := r.customers[id]; ok {
		c.LoyaltyPoints += points
	}
	return nil
}

type fakePaymentMethodRepo struct {
	methods map[uuid.UUID]*entity.PaymentMethod
}

func newFakePaymentMethodRepo(methods ...*entity.PaymentMethod) *fakePaymentMethodRepo {
	r := &fakePaymentMethodRepo{methods: make(map[uuid.UUID]*entity.PaymentMethod)}
	for _, m := range methods {
		r.methods[m.ID] = m
	}
	return r
}

func (r *fakePaymentMethodRepo) Create(ctx context.Context, method *entity.PaymentMethod) error {
	r.methods[method.ID] = method
	return nil
}

func (r *fakePaymentMethodRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	return r.methods[id], nil
}

func (r *fakePaymentMethodRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.PaymentMethod, error) {
	var out []entity.PaymentMethod
	for _, id := range ids {
		if m, ok := r.methods[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakePaymentMethodRepo) GetByCode(ctx context.Context, code string) (*entity.PaymentMethod, error) {
	for _, m := range r.methods {
		if m.Code == code {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentMethodRepo) Update(ctx context.Context, method *entity.PaymentMethod) error {
	r.methods[method.ID] = method
	return nil
}

func (r *fakePaymentMethodRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.methods, id)
	return nil
}

func (r *fakePaymentMethodRepo) List(ctx context.Context, activeOnly bool) ([]entity.PaymentMethod, error) {
	var out []entity.PaymentMethod
	for _, m := range r.methods {
		if !activeOnly || m.IsActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakePromotionRepo struct {
	promos map[string]*entity.Promotion
}

func newFakePromotionRepo(promos ...*entity.Promotion) *fakePromotionRepo {
	r := &fakePromotionRepo{promos: make(map[string]*entity.Promotion)}
	for _, p := range promos {
		r.promos[p.Code] = p
	}
	return r
}

func (r *fakePromotionRepo) Create(ctx context.Context, promo *entity.Promotion) error {
	r.promos[promo.Code] = promo
	return nil
}

func (r *fakePromotionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	for _, p := range r.promos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePromotionRepo) GetByCode(ctx context.Context, code string) (*entity.Promotion, error) {
	return r.promos[code], nil
}

func (r *fakePromotionRepo) Update(ctx context.Context, promo *entity.Promotion) error {
	r.promos[promo.Code] = promo
	return nil
}

func (r *fakePromotionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *fakePromotionRepo) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.Promotion, int64, error) {
	return nil, 0, nil
}

// ---- fixtures --------------------------------------------------------------

type orderServiceFixture struct {
	svc       *OrderService
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	customers *fakeCustomerRepo
	methods   *fakePaymentMethodRepo
	promos    *fakePromotionRepo
	storeID   uuid.UUID
	cash      *entity.PaymentMethod
}

func newOrderServiceFixture(products ...*entity.Product) *orderServiceFixture {
	cash := &entity.PaymentMethod{Name: "Cash", Code: "cash", IsActive: true}
	cash.ID = uuid.New()

	f := &orderServiceFixture{
		orders:    newFakeOrderRepo(),
		products:  newFakeProductRepo(products...),
		customers: newFakeCustomerRepo(),
		methods:   newFakePaymentMethodRepo(cash),
		promos:    newFakePromotionRepo(),
		storeID:   uuid.New(),
		cash:      cash,
	}
	f.svc = NewOrderService(f.orders, f.products, f.customers, f.methods, f.promos, events.NewNoopPublisher())
	return f
}

func (f *orderServiceFixture) ctx() context.Context {
	return infraRepo.WithStore(context.Background(), f.storeID)
}

func newTestProduct(name string, priceCents int64, quantity int, taxRates ...float64) *entity.Product {
	p := &entity.Product{
		Name:     name,
		Barcode:  strings.ToLower(name),
		Quantity: quantity,
		Price:    priceCents,
		IsActive: true,
	}
	p.ID = uuid.New()
	for _, rate := range taxRates {
		p.TaxRates = append(p.TaxRates, entity.TaxRate{Rate: rate})
	}
	return p
}

func cashPayment(f *orderServiceFixture, amount float64) []PaymentInput {
	return []PaymentInput{{PaymentMethodID: f.cash.ID, Amount: amount}}
}

// ---- tests -----------------------------------------------------------------

func TestCreateOrderAcceptsExactDecimalTender(t *testing.T) {
	// 19.99 must convert to exactly 1999 cents; a truncating conversion
	// yields 1998 and rejects the customer's exact payment
	book := newTestProduct("Book", 1999, 5)
	f := newOrderServiceFixture(book)

	order, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:   uuid.New(),
		Items:    []OrderItemInput{{ProductID: book.ID, Quantity: 1}},
		Payments: cashPayment(f, 19.99),
	})
	if err != nil {
		t.Fatalf("exact tender rejected: %v", err)
	}
	if order.TenderedTotal != 1999 {
		t.Errorf("TenderedTotal = %d, want 1999", order.TenderedTotal)
	}
	if order.ChangeDue != 0 {
		t.Errorf("ChangeDue = %d, want 0", order.ChangeDue)
	}
}

func TestCreateOrderComputesTotalsAndChange(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10, 5)
	f := newOrderServiceFixture(soda)

	order, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:   uuid.New(),
		Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 2}},
		Payments: cashPayment(f, 25.00),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.SubTotal != 2000 {
		t.Errorf("SubTotal = %d, want 2000", order.SubTotal)
	}
	if order.TaxTotal != 100 {
		t.Errorf("TaxTotal = %d, want 100", order.TaxTotal)
	}
	if order.Total != 2100 {
		t.Errorf("Total = %d, want 2100", order.Total)
	}
	if order.ChangeDue != 400 {
		t.Errorf("ChangeDue = %d, want 400", order.ChangeDue)
	}
	if order.Status != enum.OrderStatusCompleted {
		t.Errorf("Status = %v, want Completed", order.Status)
	}
	if !strings.HasPrefix(order.InvoiceNo, "INV") {
		t.Errorf("InvoiceNo = %q, want INV prefix", order.InvoiceNo)
	}
	if soda.Quantity != 8 {
		t.Errorf("stock = %d, want 8", soda.Quantity)
	}
}

func TestCreateOrderIgnoresClientPrices(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	// There is no price field on the item input at all; bump the catalog
	// price between builds of the cart and the order must follow it.
	soda.Price = 1500

	order, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:   uuid.New(),
		Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments: cashPayment(f, 15.00),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Total != 1500 {
		t.Errorf("Total = %d, want catalog price 1500", order.Total)
	}
	if order.Items[0].UnitPrice != 1500 {
		t.Errorf("item UnitPrice = %d, want 1500", order.Items[0].UnitPrice)
	}
}

func TestCreateOrderInsufficientPayment(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	_, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:   uuid.New(),
		Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 2}},
		Payments: cashPayment(f, 10.00),
	})
	if !errors.Is(err, apperror.ErrInsufficientPayment) {
		t.Fatalf("err = %v, want ErrInsufficientPayment", err)
	}
	if soda.Quantity != 10 {
		t.Errorf("stock = %d, want untouched 10", soda.Quantity)
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{UserID: uuid.New()})
	if err == nil {
		t.Fatal("expected error for empty cart")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 400 {
		t.Errorf("code = %d, want 400", appErr.Code)
	}
}

func TestCreateOrderMissingStoreContext(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected error without store context")
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 1)
	f := newOrderServiceFixture(soda)

	_, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:   uuid.New(),
		Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 5}},
		Payments: cashPayment(f, 50.00),
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 400 {
		t.Errorf("code = %d, want 400", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "Soda") {
		t.Errorf("message %q should name the product", appErr.Message)
	}
	if soda.Quantity != 1 {
		t.Errorf("stock = %d, want untouched 1", soda.Quantity)
	}
}

func TestCreateOrderPointsCapByBalance(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	customer := &entity.Customer{Name: "Wanjiku", LoyaltyPoints: 100}
	customer.ID = uuid.New()
	f.customers.customers[customer.ID] = customer

	_, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:        uuid.New(),
		CustomerID:    &customer.ID,
		Items:         []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments:      cashPayment(f, 10.00),
		LoyaltyPoints: 500,
	})
	if err == nil {
		t.Fatal("expected points cap error")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("code = %d, want 422", appErr.Code)
	}
	if customer.LoyaltyPoints != 100 {
		t.Errorf("points = %d, want untouched 100", customer.LoyaltyPoints)
	}
}

func TestCreateOrderPointsCapByTotal(t *testing.T) {
	soda := newTestProduct("Soda", 500, 10)
	f := newOrderServiceFixture(soda)

	customer := &entity.Customer{Name: "Wanjiku", LoyaltyPoints: 10000}
	customer.ID = uuid.New()
	f.customers.customers[customer.ID] = customer

	// Total is 500 cents so at most 500 points can apply
	_, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:        uuid.New(),
		CustomerID:    &customer.ID,
		Items:         []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		LoyaltyPoints: 600,
	})
	if err == nil {
		t.Fatal("expected points cap error")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("code = %d, want 422", appErr.Code)
	}
}

func TestCreateOrderEwalletCap(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	customer := &entity.Customer{Name: "Wanjiku", EwalletBalance: 300}
	customer.ID = uuid.New()
	f.customers.customers[customer.ID] = customer

	_, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:        uuid.New(),
		CustomerID:    &customer.ID,
		Items:         []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments:      cashPayment(f, 5.00),
		EwalletAmount: 5.00,
	})
	if err == nil {
		t.Fatal("expected ewallet cap error")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("code = %d, want 422", appErr.Code)
	}
}

func TestCreateOrderRedemptionRequiresCustomer(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	_, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:        uuid.New(),
		Items:         []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments:      cashPayment(f, 5.00),
		EwalletAmount: 5.00,
	})
	if err == nil {
		t.Fatal("expected error redeeming without a customer")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("code = %d, want 422", appErr.Code)
	}
}

func TestCreateOrderRedeemsAndEarnsPoints(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	customer := &entity.Customer{Name: "Wanjiku", LoyaltyPoints: 500, EwalletBalance: 1000}
	customer.ID = uuid.New()
	f.customers.customers[customer.ID] = customer

	// Total 2000: 500 points + 500 ewallet + 1000 cash
	order, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:        uuid.New(),
		CustomerID:    &customer.ID,
		Items:         []OrderItemInput{{ProductID: soda.ID, Quantity: 2}},
		Payments:      cashPayment(f, 10.00),
		EwalletAmount: 5.00,
		LoyaltyPoints: 500,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ChangeDue != 0 {
		t.Errorf("ChangeDue = %d, want 0", order.ChangeDue)
	}
	if customer.EwalletBalance != 500 {
		t.Errorf("ewallet = %d, want 500", customer.EwalletBalance)
	}
	// Redeemed 500, then earned 1 per 100 cents of the 1500 paid with money
	if customer.LoyaltyPoints != 15 {
		t.Errorf("points = %d, want 15", customer.LoyaltyPoints)
	}
}

func TestCreateOrderBalanceConflictRollsBackStock(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)
	f.customers.redeemFails = true

	customer := &entity.Customer{Name: "Wanjiku", EwalletBalance: 1000}
	customer.ID = uuid.New()
	f.customers.customers[customer.ID] = customer

	_, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:        uuid.New(),
		CustomerID:    &customer.ID,
		Items:         []OrderItemInput{{ProductID: soda.ID, Quantity: 2}},
		Payments:      cashPayment(f, 15.00),
		EwalletAmount: 5.00,
	})
	if err == nil {
		t.Fatal("expected balance conflict error")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("code = %d, want 422", appErr.Code)
	}
	if soda.Quantity != 10 {
		t.Errorf("stock = %d, want restored 10", soda.Quantity)
	}
}

func TestCreateOrderPromoOverridesManualDiscount(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	promo := &entity.Promotion{
		Name:        "Mashujaa Day",
		Code:        "SHUJAA10",
		DiscountPct: 10,
		StartsAt:    time.Now().Add(-time.Hour),
		EndsAt:      time.Now().Add(time.Hour),
		IsActive:    true,
	}
	promo.ID = uuid.New()
	f.promos.promos[promo.Code] = promo

	order, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:      uuid.New(),
		DiscountPct: 50,
		PromoCode:   "SHUJAA10",
		Items:       []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments:    cashPayment(f, 10.00),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.DiscountPct != 10 {
		t.Errorf("DiscountPct = %v, want promo's 10", order.DiscountPct)
	}
	if order.Total != 900 {
		t.Errorf("Total = %d, want 900", order.Total)
	}
}

func TestCreateOrderExpiredPromo(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	promo := &entity.Promotion{
		Name:        "Old promo",
		Code:        "OLD",
		DiscountPct: 10,
		StartsAt:    time.Now().Add(-48 * time.Hour),
		EndsAt:      time.Now().Add(-24 * time.Hour),
		IsActive:    true,
	}
	f.promos.promos[promo.Code] = promo

	_, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:    uuid.New(),
		PromoCode: "OLD",
		Items:     []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments:  cashPayment(f, 10.00),
	})
	if err == nil {
		t.Fatal("expected error for expired promo")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("code = %d, want 422", appErr.Code)
	}
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	soda.IsActive = false
	f := newOrderServiceFixture(soda)

	_, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:   uuid.New(),
		Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments: cashPayment(f, 10.00),
	})
	if err == nil {
		t.Fatal("expected error for inactive product")
	}
}

func TestCreateOrderInactivePaymentMethod(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)
	f.cash.IsActive = false

	_, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:   uuid.New(),
		Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments: cashPayment(f, 10.00),
	})
	if err == nil {
		t.Fatal("expected error for inactive payment method")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("code = %d, want 422", appErr.Code)
	}
}

func TestHoldOrderTakesNoSideEffects(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10, 5)
	f := newOrderServiceFixture(soda)

	order, err := f.svc.HoldOrder(f.ctx(), &CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{ProductID: soda.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("HoldOrder: %v", err)
	}
	if order.Status != enum.OrderStatusHeld {
		t.Errorf("Status = %v, want Held", order.Status)
	}
	if !strings.HasPrefix(order.InvoiceNo, "HLD") {
		t.Errorf("InvoiceNo = %q, want HLD prefix", order.InvoiceNo)
	}
	if soda.Quantity != 10 {
		t.Errorf("stock = %d, want untouched 10", soda.Quantity)
	}
	if order.TenderedTotal != 0 || order.ChangeDue != 0 {
		t.Error("held order should carry no payment")
	}
}

func TestResumeOrderRemovesHold(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	held, err := f.svc.HoldOrder(f.ctx(), &CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("HoldOrder: %v", err)
	}

	resumed, err := f.svc.ResumeOrder(f.ctx(), held.ID)
	if err != nil {
		t.Fatalf("ResumeOrder: %v", err)
	}
	if resumed.ID != held.ID {
		t.Error("resumed a different order")
	}

	// A second resume must fail: the hold is gone
	if _, err := f.svc.ResumeOrder(f.ctx(), held.ID); err == nil {
		t.Fatal("expected error resuming twice")
	}
}

func TestResumeOrderRejectsCompleted(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	order, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:   uuid.New(),
		Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments: cashPayment(f, 10.00),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if _, err := f.svc.ResumeOrder(f.ctx(), order.ID); err == nil {
		t.Fatal("expected error resuming a completed order")
	}
}

func TestCancelOrderRestoresStockAndBalances(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	customer := &entity.Customer{Name: "Wanjiku", LoyaltyPoints: 500, EwalletBalance: 1000}
	customer.ID = uuid.New()
	f.customers.customers[customer.ID] = customer

	order, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:        uuid.New(),
		CustomerID:    &customer.ID,
		Items:         []OrderItemInput{{ProductID: soda.ID, Quantity: 2}},
		Payments:      cashPayment(f, 10.00),
		EwalletAmount: 5.00,
		LoyaltyPoints: 500,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if soda.Quantity != 8 {
		t.Fatalf("stock after sale = %d, want 8", soda.Quantity)
	}
	pointsAfterSale := customer.LoyaltyPoints

	if err := f.svc.CancelOrder(f.ctx(), order.ID, "customer changed mind"); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}

	if soda.Quantity != 10 {
		t.Errorf("stock = %d, want restored 10", soda.Quantity)
	}
	if customer.EwalletBalance != 1000 {
		t.Errorf("ewallet = %d, want restored 1000", customer.EwalletBalance)
	}
	if customer.LoyaltyPoints != pointsAfterSale+500 {
		t.Errorf("points = %d, want %d", customer.LoyaltyPoints, pointsAfterSale+500)
	}

	got, _ := f.orders.GetByID(f.ctx(), order.ID)
	if got.Status != enum.OrderStatusCancelled {
		t.Errorf("Status = %v, want Cancelled", got.Status)
	}
}

func TestCancelOrderRejectsTerminal(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	order, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:   uuid.New(),
		Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments: cashPayment(f, 10.00),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := f.svc.CancelOrder(f.ctx(), order.ID, ""); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if err := f.svc.CancelOrder(f.ctx(), order.ID, ""); err == nil {
		t.Fatal("expected error cancelling twice")
	}
}

func TestCancelHeldOrderSkipsRestore(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	held, err := f.svc.HoldOrder(f.ctx(), &CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{ProductID: soda.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("HoldOrder: %v", err)
	}

	if err := f.svc.CancelOrder(f.ctx(), held.ID, "abandoned"); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	// The hold never decremented stock so nothing must come back
	if soda.Quantity != 10 {
		t.Errorf("stock = %d, want 10", soda.Quantity)
	}
}

func TestRefundOrderOnlyCompleted(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	held, err := f.svc.HoldOrder(f.ctx(), &CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("HoldOrder: %v", err)
	}
	if err := f.svc.RefundOrder(f.ctx(), held.ID); err == nil {
		t.Fatal("expected error refunding a held order")
	}

	order, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:   uuid.New(),
		Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 2}},
		Payments: cashPayment(f, 20.00),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if err := f.svc.RefundOrder(f.ctx(), order.ID); err != nil {
		t.Fatalf("RefundOrder: %v", err)
	}

	if soda.Quantity != 10 {
		t.Errorf("stock = %d, want restored 10", soda.Quantity)
	}
	got, _ := f.orders.GetByID(f.ctx(), order.ID)
	if got.Status != enum.OrderStatusRefunded {
		t.Errorf("Status = %v, want Refunded", got.Status)
	}
}

func TestDeleteOrderKeepsCompleted(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)

	order, err := f.svc.CreateOrder(f.ctx(), &CreateOrderInput{
		UserID:   uuid.New(),
		Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments: cashPayment(f, 10.00),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := f.svc.DeleteOrder(f.ctx(), order.ID); err == nil {
		t.Fatal("expected error deleting a completed order")
	}

	held, err := f.svc.HoldOrder(f.ctx(), &CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("HoldOrder: %v", err)
	}
	if err := f.svc.DeleteOrder(f.ctx(), held.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
}
