package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/aurumdent/goldbuy/internal/domain/errors"
	"github.com/aurumdent/goldbuy/internal/domain/model"
	"github.com/aurumdent/goldbuy/internal/domain/repository"
)

// CreateRequestInput carries the customer submission.
type CreateRequestInput struct {
	ContactName  string
	ContactPhone string
	Address      string
	Items        []model.GoldItem
}

// EvaluationInput carries the admin evaluation outputs required by the
// evaluating -> evaluated transition.
type EvaluationInput struct {
	FinalWeight float64
	FinalPrice  int64
	Notes       string
	Images      []string
}

// RequestUseCase drives the purchase request lifecycle.
type RequestUseCase struct {
	requests repository.RequestRepository
	users    repository.UserRepository
	prices   *PriceUseCase
}

// NewRequestUseCase constructs RequestUseCase.
func NewRequestUseCase(requests repository.RequestRepository, users repository.UserRepository, prices *PriceUseCase) *RequestUseCase {
	return &RequestUseCase{requests: requests, users: users, prices: prices}
}

// Create validates the submission, snapshots the estimate against the
// price table current at this moment, and stores the request. The stored
// estimate never changes afterwards.
func (u *RequestUseCase) Create(ctx context.Context, userID int64, input CreateRequestInput) (*model.PurchaseRequest, error) {
	if len(input.Items) == 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	for _, item := range input.Items {
		if _, ok := model.ParseCategory(string(item.Category)); !ok {
			return nil, domainErrors.ErrUnknownCategory
		}
		if item.Quantity <= 0 {
			return nil, domainErrors.ErrInvalidQuantity
		}
	}

	estimate, err := u.prices.Quote(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	req := &model.PurchaseRequest{
		UserID:         userID,
		ContactName:    strings.TrimSpace(input.ContactName),
		ContactPhone:   strings.TrimSpace(input.ContactPhone),
		Address:        strings.TrimSpace(input.Address),
		Items:          input.Items,
		EstimatedPrice: estimate,
		Status:         model.StatusPending,
	}

	return u.requests.Create(ctx, req)
}

// Get returns a request visible to the actor.
func (u *RequestUseCase) Get(ctx context.Context, actor Actor, id int64) (*model.PurchaseRequest, error) {
	req, err := u.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(req.UserID) {
		return nil, domainErrors.ErrForbidden
	}
	return req, nil
}

// List returns requests visible to the actor, optionally filtered by status.
func (u *RequestUseCase) List(ctx context.Context, actor Actor, status *model.RequestStatus) ([]model.PurchaseRequest, error) {
	filter := repository.RequestFilter{Status: status}
	if !actor.Admin {
		filter.UserID = &actor.ID
	}
	return u.requests.List(ctx, filter)
}

// Transition moves a request one step forward (or cancels it) after
// checking role rules. The evaluated state is reachable only through
// Evaluate since it requires the evaluation payload.
func (u *RequestUseCase) Transition(ctx context.Context, actor Actor, id int64, target model.RequestStatus, note string) (*model.PurchaseRequest, error) {
	req, err := u.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if target == model.StatusEvaluated {
		return nil, domainErrors.ErrEvaluationIncomplete
	}

	// Confirmation is the customer's acceptance of the evaluated price;
	// every other transition belongs to the admin.
	if target == model.StatusConfirmed {
		if actor.Admin || actor.ID != req.UserID {
			return nil, domainErrors.ErrForbidden
		}
	} else if !actor.Admin {
		return nil, domainErrors.ErrForbidden
	}

	if !req.Status.CanTransitionTo(target) {
		return nil, domainErrors.ErrInvalidTransition
	}

	if err := u.requests.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	u.logChange(ctx, req, actor.ID, target, note)

	if target == model.StatusPaid && req.FinalPrice != nil {
		// Informational rollup only; a failure here must not undo the
		// already persisted transition.
		_ = u.users.AddTransaction(ctx, req.UserID, *req.FinalPrice)
	}

	req.Status = target
	return req, nil
}

// Confirm is the customer acceptance step for an evaluated request.
func (u *RequestUseCase) Confirm(ctx context.Context, userID int64, id int64) (*model.PurchaseRequest, error) {
	return u.Transition(ctx, Actor{ID: userID}, id, model.StatusConfirmed, "")
}

// Evaluate records the admin evaluation and moves the request to the
// evaluated state. Rejected before persisting anything when required
// fields are missing.
func (u *RequestUseCase) Evaluate(ctx context.Context, actor Actor, id int64, input EvaluationInput) (*model.PurchaseRequest, error) {
	if !actor.Admin {
		return nil, domainErrors.ErrForbidden
	}
	if input.FinalPrice <= 0 || input.FinalWeight <= 0 || len(input.Images) == 0 {
		return nil, domainErrors.ErrEvaluationIncomplete
	}

	req, err := u.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(model.StatusEvaluated) {
		return nil, domainErrors.ErrInvalidTransition
	}

	update := repository.EvaluationUpdate{
		FinalWeight: input.FinalWeight,
		FinalPrice:  input.FinalPrice,
		Notes:       input.Notes,
		Images:      input.Images,
	}
	if err := u.requests.SetEvaluation(ctx, id, update, model.StatusEvaluated); err != nil {
		return nil, err
	}

	u.logChange(ctx, req, actor.ID, model.StatusEvaluated, input.Notes)

	req.Status = model.StatusEvaluated
	req.FinalWeight = &input.FinalWeight
	req.FinalPrice = &input.FinalPrice
	req.EvaluationNotes = input.Notes
	req.EvaluationImages = input.Images
	return req, nil
}

// StatusLog returns the audit timeline for a request visible to the actor.
func (u *RequestUseCase) StatusLog(ctx context.Context, actor Actor, id int64) ([]model.StatusChange, error) {
	req, err := u.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(req.UserID) {
		return nil, domainErrors.ErrForbidden
	}
	return u.requests.StatusLog(ctx, id)
}

// logChange appends to the audit log. The log is display-only, so a
// failed append never rolls back the transition itself.
func (u *RequestUseCase) logChange(ctx context.Context, req *model.PurchaseRequest, actorID int64, to model.RequestStatus, note string) {
	_ = u.requests.AppendStatusChange(ctx, &model.StatusChange{
		RequestID: req.ID,
		ActorID:   actorID,
		From:      req.Status,
		To:        to,
		Note:      note,
	})
}
