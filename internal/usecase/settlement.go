package usecase

import (
	"context"

	domainErrors "github.com/aurumdent/goldbuy/internal/domain/errors"
	"github.com/aurumdent/goldbuy/internal/domain/model"
	"github.com/aurumdent/goldbuy/internal/domain/repository"
)

// Deduction optionally reduces the payout of a settlement.
type Deduction struct {
	Amount int64
	Reason string
}

// SettlementUseCase derives payout records from finalized requests and
// advances their payment state.
type SettlementUseCase struct {
	settlements repository.SettlementRepository
	requests    repository.RequestRepository
}

// NewSettlementUseCase constructs SettlementUseCase.
func NewSettlementUseCase(settlements repository.SettlementRepository, requests repository.RequestRepository) *SettlementUseCase {
	return &SettlementUseCase{settlements: settlements, requests: requests}
}

// Derive creates the settlement for a confirmed (or already paid) request.
// net_amount = final_price - deduction.
func (u *SettlementUseCase) Derive(ctx context.Context, requestID int64, deduction *Deduction) (*model.Settlement, error) {
	req, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.Status != model.StatusConfirmed && req.Status != model.StatusPaid {
		return nil, domainErrors.ErrNotSettleable
	}
	if req.FinalPrice == nil {
		return nil, domainErrors.ErrNotSettleable
	}

	final := *req.FinalPrice
	var amount int64
	var reason string
	if deduction != nil {
		if deduction.Amount < 0 || deduction.Amount > final {
			return nil, domainErrors.ErrInvalidDeduction
		}
		amount = deduction.Amount
		reason = deduction.Reason
	}

	settlement := &model.Settlement{
		RequestID:       req.ID,
		UserID:          req.UserID,
		FinalAmount:     final,
		DeductionAmount: amount,
		DeductionReason: reason,
		NetAmount:       final - amount,
		PaymentStatus:   model.PaymentPending,
	}

	return u.settlements.Create(ctx, settlement)
}

// Get returns a settlement visible to the actor.
func (u *SettlementUseCase) Get(ctx context.Context, actor Actor, id int64) (*model.Settlement, error) {
	s, err := u.settlements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(s.UserID) {
		return nil, domainErrors.ErrForbidden
	}
	return s, nil
}

// GetByRequest returns the settlement of a request visible to the actor.
func (u *SettlementUseCase) GetByRequest(ctx context.Context, actor Actor, requestID int64) (*model.Settlement, error) {
	s, err := u.settlements.GetByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(s.UserID) {
		return nil, domainErrors.ErrForbidden
	}
	return s, nil
}

// List returns settlements visible to the actor, newest first.
func (u *SettlementUseCase) List(ctx context.Context, actor Actor) ([]model.Settlement, error) {
	if actor.Admin {
		return u.settlements.ListAll(ctx)
	}
	return u.settlements.ListByUser(ctx, actor.ID)
}

// AdvancePayment moves the payment state forward. Failed payments stay
// failed until an admin re-initiates payment manually.
func (u *SettlementUseCase) AdvancePayment(ctx context.Context, id int64, target model.PaymentStatus) (*model.Settlement, error) {
	s, err := u.settlements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.PaymentStatus.CanAdvanceTo(target) {
		return nil, domainErrors.ErrInvalidPaymentAdvance
	}
	if err := u.settlements.UpdatePaymentStatus(ctx, id, target); err != nil {
		return nil, err
	}
	s.PaymentStatus = target
	return s, nil
}
