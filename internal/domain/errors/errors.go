package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	ErrUnknownCategory = errors.New("unknown gold category")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidPrice    = errors.New("invalid price")

	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrEvaluationIncomplete = errors.New("evaluation data incomplete")

	ErrNotSettleable         = errors.New("request not ready for settlement")
	ErrInvalidDeduction      = errors.New("invalid deduction")
	ErrInvalidPaymentAdvance = errors.New("invalid payment status advance")
)
