package model

import "time"

// PaymentStatus is the settlement payout state, advanced independently of
// the request status.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
)

// ParsePaymentStatus validates a raw payment status value.
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	switch PaymentStatus(raw) {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed:
		return PaymentStatus(raw), true
	}
	return "", false
}

// CanAdvanceTo reports whether payment may move from s to next.
// Failed is terminal until an admin re-initiates payment manually.
func (s PaymentStatus) CanAdvanceTo(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentProcessing || next == PaymentFailed
	case PaymentProcessing:
		return next == PaymentCompleted || next == PaymentFailed
	}
	return false
}

// Settlement is the payout record derived from an evaluated and
// customer-confirmed request. Never deleted, only updated in place.
type Settlement struct {
	ID              int64
	RequestID       int64
	UserID          int64
	FinalAmount     int64
	DeductionAmount int64
	DeductionReason string
	NetAmount       int64
	PaymentStatus   PaymentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
