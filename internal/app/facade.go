package app

import (
	"context"
	"io"

	"github.com/aurumdent/goldbuy/internal/adapter/objectstore"
	"github.com/aurumdent/goldbuy/internal/domain/model"
	pkgAuth "github.com/aurumdent/goldbuy/internal/pkg/auth"
	"github.com/aurumdent/goldbuy/internal/usecase"
)

type GoldFacade struct {
	auth        *usecase.AuthUseCase
	prices      *usecase.PriceUseCase
	requests    *usecase.RequestUseCase
	settlements *usecase.SettlementUseCase
	images      objectstore.Store
}

func NewGoldFacade(auth *usecase.AuthUseCase, prices *usecase.PriceUseCase, requests *usecase.RequestUseCase, settlements *usecase.SettlementUseCase, images objectstore.Store) *GoldFacade {
	return &GoldFacade{auth: auth, prices: prices, requests: requests, settlements: settlements, images: images}
}

func (f *GoldFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *GoldFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *GoldFacade) ParseToken(token string) (*pkgAuth.TokenInfo, error) {
	return f.auth.ParseToken(token)
}

func (f *GoldFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *GoldFacade) UpdateProfile(ctx context.Context, userID int64, name, phone string) error {
	return f.auth.UpdateProfile(ctx, userID, name, phone)
}

func (f *GoldFacade) CurrentPrice(ctx context.Context) (*model.PriceTable, model.PriceSource) {
	return f.prices.Current(ctx)
}

func (f *GoldFacade) PriceHistory(ctx context.Context, limit int) ([]model.PriceTable, error) {
	return f.prices.History(ctx, limit)
}

func (f *GoldFacade) SavePrice(ctx context.Context, table *model.PriceTable) (*model.PriceTable, error) {
	return f.prices.Upsert(ctx, table)
}

func (f *GoldFacade) EnsureTodayPrice(ctx context.Context) (*model.PriceTable, bool, error) {
	return f.prices.EnsureToday(ctx)
}

func (f *GoldFacade) CreateRequest(ctx context.Context, userID int64, input usecase.CreateRequestInput) (*model.PurchaseRequest, error) {
	return f.requests.Create(ctx, userID, input)
}

func (f *GoldFacade) Requests(ctx context.Context, actor usecase.Actor, status *model.RequestStatus) ([]model.PurchaseRequest, error) {
	return f.requests.List(ctx, actor, status)
}

func (f *GoldFacade) Request(ctx context.Context, actor usecase.Actor, id int64) (*model.PurchaseRequest, error) {
	return f.requests.Get(ctx, actor, id)
}

func (f *GoldFacade) TransitionRequest(ctx context.Context, actor usecase.Actor, id int64, target model.RequestStatus, note string) (*model.PurchaseRequest, error) {
	return f.requests.Transition(ctx, actor, id, target, note)
}

func (f *GoldFacade) ConfirmRequest(ctx context.Context, userID, id int64) (*model.PurchaseRequest, error) {
	return f.requests.Confirm(ctx, userID, id)
}

func (f *GoldFacade) EvaluateRequest(ctx context.Context, actor usecase.Actor, id int64, input usecase.EvaluationInput) (*model.PurchaseRequest, error) {
	return f.requests.Evaluate(ctx, actor, id, input)
}

func (f *GoldFacade) RequestTimeline(ctx context.Context, actor usecase.Actor, id int64) ([]model.StatusChange, error) {
	return f.requests.StatusLog(ctx, actor, id)
}

func (f *GoldFacade) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	return f.images.Upload(filename, r)
}

func (f *GoldFacade) DeriveSettlement(ctx context.Context, requestID int64, deduction *usecase.Deduction) (*model.Settlement, error) {
	return f.settlements.Derive(ctx, requestID, deduction)
}

func (f *GoldFacade) Settlement(ctx context.Context, actor usecase.Actor, id int64) (*model.Settlement, error) {
	return f.settlements.Get(ctx, actor, id)
}

func (f *GoldFacade) SettlementForRequest(ctx context.Context, actor usecase.Actor, requestID int64) (*model.Settlement, error) {
	return f.settlements.GetByRequest(ctx, actor, requestID)
}

func (f *GoldFacade) Settlements(ctx context.Context, actor usecase.Actor) ([]model.Settlement, error) {
	return f.settlements.List(ctx, actor)
}

func (f *GoldFacade) AdvancePayment(ctx context.Context, id int64, target model.PaymentStatus) (*model.Settlement, error) {
	return f.settlements.AdvancePayment(ctx, id, target)
}
