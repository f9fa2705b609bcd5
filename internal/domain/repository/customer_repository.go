package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Customer, error)
	// RedeemBalances atomically deducts loyalty points and ewallet cents.
	// Returns (false, nil) when either balance is insufficient; nothing is
	// deducted in that case.
	RedeemBalances(ctx context.Context, id uuid.UUID, points int64, ewalletCents int64) (bool, error)
	// RestoreBalances credits loyalty points and ewallet cents back (for cancellations/refunds).
	RestoreBalances(ctx context.Context, id uuid.UUID, points int64, ewalletCents int64) error
	// AwardPoints credits loyalty points earned on a completed sale.
	AwardPoints(ctx context.Context, id uuid.UUID, points int64) error
}
