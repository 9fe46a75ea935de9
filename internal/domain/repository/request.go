package repository

import (
	"context"

	"github.com/aurumdent/goldbuy/internal/domain/model"
)

// RequestFilter narrows request listings.
type RequestFilter struct {
	UserID *int64
	Status *model.RequestStatus
}

// EvaluationUpdate carries the admin evaluation outputs persisted together
// with the evaluating -> evaluated transition.
type EvaluationUpdate struct {
	FinalWeight float64
	FinalPrice  int64
	Notes       string
	Images      []string
}

// RequestRepository describes persistence operations for purchase requests
// and their append-only status log.
type RequestRepository interface {
	Create(ctx context.Context, req *model.PurchaseRequest) (*model.PurchaseRequest, error)
	GetByID(ctx context.Context, id int64) (*model.PurchaseRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]model.PurchaseRequest, error)
	UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error
	SetEvaluation(ctx context.Context, id int64, eval EvaluationUpdate, status model.RequestStatus) error
	AppendStatusChange(ctx context.Context, change *model.StatusChange) error
	StatusLog(ctx context.Context, requestID int64) ([]model.StatusChange, error)
}
