package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/internal/domain/repository"
	"github.com/mwangikib/dukapos-api/pkg/apperror"
)

// OfflineTransaction is one queued checkout from a register that was
// offline. The client key it generated at sale time makes replays safe.
type OfflineTransaction struct {
	ClientKey string
	Order     *CreateOrderInput
}

// SyncStatus describes the outcome of one queued transaction.
type SyncStatus struct {
	ClientKey string    `json:"client_key"`
	Status    string    `json:"status"` // accepted, duplicate or rejected
	Reason    string    `json:"reason,omitempty"`
	OrderID   uuid.UUID `json:"order_id,omitempty"`
	InvoiceNo string    `json:"invoice_no,omitempty"`
}

// SyncService drains the offline outbox a register uploads after
// reconnecting.
type SyncService struct {
	orderService    *OrderService
	idempotencyRepo repository.IdempotencyRepository
}

// NewSyncService creates a new offline sync service
func NewSyncService(orderService *OrderService, idempotencyRepo repository.IdempotencyRepository) *SyncService {
	return &SyncService{
		orderService:    orderService,
		idempotencyRepo: idempotencyRepo,
	}
}

// SyncOfflineOrders replays queued checkouts one by one. A transaction whose
// client key was already processed reports duplicate instead of ringing up
// the basket again; a failed transaction never blocks the rest of the batch.
func (s *SyncService) SyncOfflineOrders(ctx context.Context, userID uuid.UUID, transactions []OfflineTransaction) []SyncStatus {
	statuses := make([]SyncStatus, 0, len(transactions))

	for _, tx := range transactions {
		status := SyncStatus{ClientKey: tx.ClientKey}

		if tx.ClientKey == "" {
			status.Status = "rejected"
			status.Reason = "client key is required"
			statuses = append(statuses, status)
			continue
		}

		existing, err := s.idempotencyRepo.GetByKey(ctx, tx.ClientKey, userID)
		if err == nil && existing != nil && !existing.IsExpired() {
			status.Status = "duplicate"
			statuses = append(statuses, status)
			continue
		}

		tx.Order.UserID = userID
		tx.Order.IsOnline = false

		order, err := s.orderService.CreateOrder(ctx, tx.Order)
		if err != nil {
			status.Status = "rejected"
			if appErr, ok := err.(*apperror.AppError); ok {
				status.Reason = appErr.Message
			} else {
				status.Reason = "internal error"
			}
			statuses = append(statuses, status)
			continue
		}

		status.Status = "accepted"
		status.OrderID = order.ID
		status.InvoiceNo = order.InvoiceNo
		statuses = append(statuses, status)

		_ = s.idempotencyRepo.Create(ctx, &entity.IdempotencyKey{
			Key:          tx.ClientKey,
			UserID:       userID,
			Endpoint:     "POST /orders/sync",
			ResponseCode: 201,
			ResponseBody: `{"order_id":"` + order.ID.String() + `"}`,
			ExpiresAt:    time.Now().Add(24 * time.Hour),
		})
	}

	return statuses
}
