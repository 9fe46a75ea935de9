package test

import (
	"context"
	"io"
	"time"

	"github.com/aurumdent/goldbuy/internal/domain/model"
	pkgAuth "github.com/aurumdent/goldbuy/internal/pkg/auth"
	"github.com/aurumdent/goldbuy/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn      func(context.Context, string, string) (string, error)
	AuthenticateFn  func(context.Context, string, string) (string, error)
	ParseFn         func(string) (*pkgAuth.TokenInfo, error)
	ProfileFn       func(context.Context, int64) (*model.User, error)
	UpdateProfileFn func(context.Context, int64, string, string) error
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns stored identity for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (*pkgAuth.TokenInfo, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &pkgAuth.TokenInfo{UserID: 1, Role: string(model.RoleCustomer)}, nil
}

// Profile returns the stored user.
func (s AuthFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Login: "user", Role: model.RoleCustomer}, nil
}

// UpdateProfile stores mutable contact fields.
func (s AuthFacadeStub) UpdateProfile(ctx context.Context, userID int64, name, phone string) error {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, userID, name, phone)
	}
	return nil
}

// PriceFacadeStub simulates the daily price table surface.
type PriceFacadeStub struct {
	CurrentFn func(context.Context) (*model.PriceTable, model.PriceSource)
	HistoryFn func(context.Context, int) ([]model.PriceTable, error)
	SaveFn    func(context.Context, *model.PriceTable) (*model.PriceTable, error)
}

// CurrentPrice returns the configured table or the defaults.
func (s PriceFacadeStub) CurrentPrice(ctx context.Context) (*model.PriceTable, model.PriceSource) {
	if s.CurrentFn != nil {
		return s.CurrentFn(ctx)
	}
	table := model.DefaultPriceTable()
	table.Date = time.Unix(0, 0).UTC()
	return &table, model.PriceSourceDefault
}

// PriceHistory returns preconfigured rows.
func (s PriceFacadeStub) PriceHistory(ctx context.Context, limit int) ([]model.PriceTable, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, limit)
	}
	table := model.DefaultPriceTable()
	return []model.PriceTable{table}, nil
}

// SavePrice echoes the submitted table.
func (s PriceFacadeStub) SavePrice(ctx context.Context, table *model.PriceTable) (*model.PriceTable, error) {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, table)
	}
	return table, nil
}

// RequestFacadeStub provides controllable behaviour for request endpoints.
type RequestFacadeStub struct {
	CreateFn     func(context.Context, int64, usecase.CreateRequestInput) (*model.PurchaseRequest, error)
	ListFn       func(context.Context, usecase.Actor, *model.RequestStatus) ([]model.PurchaseRequest, error)
	GetFn        func(context.Context, usecase.Actor, int64) (*model.PurchaseRequest, error)
	TransitionFn func(context.Context, usecase.Actor, int64, model.RequestStatus, string) (*model.PurchaseRequest, error)
	ConfirmFn    func(context.Context, int64, int64) (*model.PurchaseRequest, error)
	EvaluateFn   func(context.Context, usecase.Actor, int64, usecase.EvaluationInput) (*model.PurchaseRequest, error)
	TimelineFn   func(context.Context, usecase.Actor, int64) ([]model.StatusChange, error)
	UploadFn     func(context.Context, string, io.Reader) (string, error)
}

func defaultRequest(id, userID int64) *model.PurchaseRequest {
	return &model.PurchaseRequest{
		ID:             id,
		Number:         "GB-000001",
		UserID:         userID,
		Status:         model.StatusPending,
		EstimatedPrice: 170000,
		Items:          []model.GoldItem{{Category: model.CategoryInlay, Quantity: 2}},
	}
}

// CreateRequest delegates or returns a pending request.
func (s RequestFacadeStub) CreateRequest(ctx context.Context, userID int64, input usecase.CreateRequestInput) (*model.PurchaseRequest, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, input)
	}
	return defaultRequest(1, userID), nil
}

// Requests returns configured listings.
func (s RequestFacadeStub) Requests(ctx context.Context, actor usecase.Actor, status *model.RequestStatus) ([]model.PurchaseRequest, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, actor, status)
	}
	return []model.PurchaseRequest{*defaultRequest(1, actor.ID)}, nil
}

// Request returns the configured request.
func (s RequestFacadeStub) Request(ctx context.Context, actor usecase.Actor, id int64) (*model.PurchaseRequest, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, actor, id)
	}
	return defaultRequest(id, actor.ID), nil
}

// TransitionRequest applies the configured transition handler.
func (s RequestFacadeStub) TransitionRequest(ctx context.Context, actor usecase.Actor, id int64, target model.RequestStatus, note string) (*model.PurchaseRequest, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, actor, id, target, note)
	}
	req := defaultRequest(id, actor.ID)
	req.Status = target
	return req, nil
}

// ConfirmRequest applies the configured confirm handler.
func (s RequestFacadeStub) ConfirmRequest(ctx context.Context, userID, id int64) (*model.PurchaseRequest, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, userID, id)
	}
	req := defaultRequest(id, userID)
	req.Status = model.StatusConfirmed
	return req, nil
}

// EvaluateRequest applies the configured evaluation handler.
func (s RequestFacadeStub) EvaluateRequest(ctx context.Context, actor usecase.Actor, id int64, input usecase.EvaluationInput) (*model.PurchaseRequest, error) {
	if s.EvaluateFn != nil {
		return s.EvaluateFn(ctx, actor, id, input)
	}
	req := defaultRequest(id, actor.ID)
	req.Status = model.StatusEvaluated
	req.FinalWeight = &input.FinalWeight
	req.FinalPrice = &input.FinalPrice
	req.EvaluationImages = input.Images
	return req, nil
}

// RequestTimeline returns configured audit entries.
func (s RequestFacadeStub) RequestTimeline(ctx context.Context, actor usecase.Actor, id int64) ([]model.StatusChange, error) {
	if s.TimelineFn != nil {
		return s.TimelineFn(ctx, actor, id)
	}
	return []model.StatusChange{{RequestID: id, From: model.StatusPending, To: model.StatusShipped}}, nil
}

// UploadImage stores nothing and returns a fixed URL.
func (s RequestFacadeStub) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, filename, r)
	}
	return "/uploads/stub.jpg", nil
}

// SettlementFacadeStub simulates payout operations.
type SettlementFacadeStub struct {
	DeriveFn     func(context.Context, int64, *usecase.Deduction) (*model.Settlement, error)
	GetFn        func(context.Context, usecase.Actor, int64) (*model.Settlement, error)
	ForRequestFn func(context.Context, usecase.Actor, int64) (*model.Settlement, error)
	ListFn       func(context.Context, usecase.Actor) ([]model.Settlement, error)
	AdvanceFn    func(context.Context, int64, model.PaymentStatus) (*model.Settlement, error)
}

func defaultSettlement(id int64) *model.Settlement {
	return &model.Settlement{
		ID:            id,
		RequestID:     1,
		UserID:        1,
		FinalAmount:   180000,
		NetAmount:     180000,
		PaymentStatus: model.PaymentPending,
	}
}

// DeriveSettlement delegates or returns a pending settlement.
func (s SettlementFacadeStub) DeriveSettlement(ctx context.Context, requestID int64, deduction *usecase.Deduction) (*model.Settlement, error) {
	if s.DeriveFn != nil {
		return s.DeriveFn(ctx, requestID, deduction)
	}
	settlement := defaultSettlement(1)
	settlement.RequestID = requestID
	return settlement, nil
}

// Settlement returns the configured settlement.
func (s SettlementFacadeStub) Settlement(ctx context.Context, actor usecase.Actor, id int64) (*model.Settlement, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, actor, id)
	}
	return defaultSettlement(id), nil
}

// SettlementForRequest returns the settlement of a request.
func (s SettlementFacadeStub) SettlementForRequest(ctx context.Context, actor usecase.Actor, requestID int64) (*model.Settlement, error) {
	if s.ForRequestFn != nil {
		return s.ForRequestFn(ctx, actor, requestID)
	}
	settlement := defaultSettlement(1)
	settlement.RequestID = requestID
	return settlement, nil
}

// Settlements returns configured listings.
func (s SettlementFacadeStub) Settlements(ctx context.Context, actor usecase.Actor) ([]model.Settlement, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, actor)
	}
	return []model.Settlement{*defaultSettlement(1)}, nil
}

// AdvancePayment applies the configured payment handler.
func (s SettlementFacadeStub) AdvancePayment(ctx context.Context, id int64, target model.PaymentStatus) (*model.Settlement, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, id, target)
	}
	settlement := defaultSettlement(id)
	settlement.PaymentStatus = target
	return settlement, nil
}

// GoldFacadeStub aggregates facade dependencies for HTTP layer tests.
type GoldFacadeStub struct {
	AuthFacadeStub
	PriceFacadeStub
	RequestFacadeStub
	SettlementFacadeStub
}

// MarketFeedStub supplies canned quotes for price seeding tests.
type MarketFeedStub struct {
	Table *model.PriceTable
	Err   error
}

// Fetch returns the configured table or error.
func (s MarketFeedStub) Fetch(ctx context.Context) (*model.PriceTable, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Table != nil {
		return s.Table, nil
	}
	table := model.DefaultPriceTable()
	return &table, nil
}

// ObjectStoreStub records uploads without touching disk.
type ObjectStoreStub struct {
	UploadFn func(string, io.Reader) (string, error)
	DeleteFn func(string) error
	Uploads  []string
}

// Upload records the filename and returns a deterministic URL.
func (s *ObjectStoreStub) Upload(filename string, r io.Reader) (string, error) {
	if s.UploadFn != nil {
		return s.UploadFn(filename, r)
	}
	s.Uploads = append(s.Uploads, filename)
	return "/uploads/" + filename, nil
}

// Delete applies the configured handler.
func (s *ObjectStoreStub) Delete(url string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(url)
	}
	return nil
}
