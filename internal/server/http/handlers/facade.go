package handlers

import (
	"context"
	"io"

	"github.com/aurumdent/goldbuy/internal/domain/model"
	pkgAuth "github.com/aurumdent/goldbuy/internal/pkg/auth"
	"github.com/aurumdent/goldbuy/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (*pkgAuth.TokenInfo, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, phone string) error
}

// PriceFacade exposes the daily price table.
type PriceFacade interface {
	CurrentPrice(ctx context.Context) (*model.PriceTable, model.PriceSource)
	PriceHistory(ctx context.Context, limit int) ([]model.PriceTable, error)
	SavePrice(ctx context.Context, table *model.PriceTable) (*model.PriceTable, error)
}

// RequestFacade encapsulates purchase request operations exposed via HTTP.
type RequestFacade interface {
	CreateRequest(ctx context.Context, userID int64, input usecase.CreateRequestInput) (*model.PurchaseRequest, error)
	Requests(ctx context.Context, actor usecase.Actor, status *model.RequestStatus) ([]model.PurchaseRequest, error)
	Request(ctx context.Context, actor usecase.Actor, id int64) (*model.PurchaseRequest, error)
	TransitionRequest(ctx context.Context, actor usecase.Actor, id int64, target model.RequestStatus, note string) (*model.PurchaseRequest, error)
	ConfirmRequest(ctx context.Context, userID, id int64) (*model.PurchaseRequest, error)
	EvaluateRequest(ctx context.Context, actor usecase.Actor, id int64, input usecase.EvaluationInput) (*model.PurchaseRequest, error)
	RequestTimeline(ctx context.Context, actor usecase.Actor, id int64) ([]model.StatusChange, error)
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// SettlementFacade provides payout operations.
type SettlementFacade interface {
	DeriveSettlement(ctx context.Context, requestID int64, deduction *usecase.Deduction) (*model.Settlement, error)
	Settlement(ctx context.Context, actor usecase.Actor, id int64) (*model.Settlement, error)
	SettlementForRequest(ctx context.Context, actor usecase.Actor, requestID int64) (*model.Settlement, error)
	Settlements(ctx context.Context, actor usecase.Actor) ([]model.Settlement, error)
	AdvancePayment(ctx context.Context, id int64, target model.PaymentStatus) (*model.Settlement, error)
}

// GoldFacade aggregates the full set of operations used across handlers.
type GoldFacade interface {
	AuthFacade
	PriceFacade
	RequestFacade
	SettlementFacade
}
