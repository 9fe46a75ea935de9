package repository

import (
	"context"

	"github.com/aurumdent/goldbuy/internal/domain/model"
)

// SettlementRepository describes persistence for payout records.
type SettlementRepository interface {
	Create(ctx context.Context, s *model.Settlement) (*model.Settlement, error)
	GetByID(ctx context.Context, id int64) (*model.Settlement, error)
	GetByRequest(ctx context.Context, requestID int64) (*model.Settlement, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Settlement, error)
	ListAll(ctx context.Context) ([]model.Settlement, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error
}
