package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
)

type fakeIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	ikey, ok := r.keys[key+"|"+userID.String()]
	if !ok || time.Now().After(ikey.ExpiresAt) {
		return nil, nil
	}
	return ikey, nil
}

func (r *fakeIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.Key+"|"+ikey.UserID.String()] = ikey
	return nil
}

func (r *fakeIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

func TestSyncOfflineOrders(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)
	syncSvc := NewSyncService(f.svc, newFakeIdempotencyRepo())

	userID := uuid.New()
	order := &CreateOrderInput{
		Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
		Payments: cashPayment(f, 10.00),
	}

	results := syncSvc.SyncOfflineOrders(f.ctx(), userID, []OfflineTransaction{
		{ClientKey: "reg1-001", Order: order},
	})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Status != "accepted" {
		t.Fatalf("status = %q (%s), want accepted", results[0].Status, results[0].Reason)
	}
	if results[0].InvoiceNo == "" {
		t.Error("accepted result should carry the invoice number")
	}
	if soda.Quantity != 9 {
		t.Errorf("stock = %d, want 9", soda.Quantity)
	}
}

func TestSyncOfflineOrdersDuplicateKey(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 10)
	f := newOrderServiceFixture(soda)
	syncSvc := NewSyncService(f.svc, newFakeIdempotencyRepo())

	userID := uuid.New()
	tx := OfflineTransaction{
		ClientKey: "reg1-002",
		Order: &CreateOrderInput{
			Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
			Payments: cashPayment(f, 10.00),
		},
	}

	first := syncSvc.SyncOfflineOrders(f.ctx(), userID, []OfflineTransaction{tx})
	if first[0].Status != "accepted" {
		t.Fatalf("first status = %q, want accepted", first[0].Status)
	}

	second := syncSvc.SyncOfflineOrders(f.ctx(), userID, []OfflineTransaction{tx})
	if second[0].Status != "duplicate" {
		t.Fatalf("second status = %q, want duplicate", second[0].Status)
	}
	// The replay must not ring up the sale twice
	if soda.Quantity != 9 {
		t.Errorf("stock = %d, want 9", soda.Quantity)
	}
}

func TestSyncOfflineOrdersRejected(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 1)
	f := newOrderServiceFixture(soda)
	syncSvc := NewSyncService(f.svc, newFakeIdempotencyRepo())

	userID := uuid.New()
	results := syncSvc.SyncOfflineOrders(f.ctx(), userID, []OfflineTransaction{
		{ClientKey: ""},
		{ClientKey: "reg1-003", Order: &CreateOrderInput{
			Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 5}},
			Payments: cashPayment(f, 50.00),
		}},
	})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Status != "rejected" {
		t.Errorf("blank key status = %q, want rejected", results[0].Status)
	}
	if results[1].Status != "rejected" {
		t.Errorf("oversell status = %q, want rejected", results[1].Status)
	}
	if results[1].Reason == "" {
		t.Error("rejected result should carry a reason")
	}
}

func TestSyncOfflineOrdersMixedBatch(t *testing.T) {
	soda := newTestProduct("Soda", 1000, 5)
	f := newOrderServiceFixture(soda)
	syncSvc := NewSyncService(f.svc, newFakeIdempotencyRepo())

	userID := uuid.New()
	results := syncSvc.SyncOfflineOrders(f.ctx(), userID, []OfflineTransaction{
		{ClientKey: "reg1-010", Order: &CreateOrderInput{
			Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 2}},
			Payments: cashPayment(f, 20.00),
		}},
		{ClientKey: "reg1-011", Order: &CreateOrderInput{
			Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 10}},
			Payments: cashPayment(f, 100.00),
		}},
		{ClientKey: "reg1-012", Order: &CreateOrderInput{
			Items:    []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
			Payments: cashPayment(f, 10.00),
		}},
	})

	want := []string{"accepted", "rejected", "accepted"}
	for i, w := range want {
		if results[i].Status != w {
			t.Errorf("results[%d].Status = %q, want %q", i, results[i].Status, w)
		}
	}
	if soda.Quantity != 2 {
		t.Errorf("stock = %d, want 2", soda.Quantity)
	}
}
