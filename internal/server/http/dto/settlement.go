package dto

import "time"

// DeductionBody optionally reduces the payout of a settlement.
type DeductionBody struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason,omitempty"`
}

// DeriveSettlementRequest creates the settlement for a confirmed request.
type DeriveSettlementRequest struct {
	RequestID int64          `json:"request_id"`
	Deduction *DeductionBody `json:"deduction,omitempty"`
}

// SettlementResponse describes one payout record.
type SettlementResponse struct {
	ID              int64     `json:"id"`
	RequestID       int64     `json:"request_id"`
	UserID          int64     `json:"user_id"`
	FinalAmount     int64     `json:"final_amount"`
	DeductionAmount int64     `json:"deduction_amount"`
	DeductionReason string    `json:"deduction_reason,omitempty"`
	NetAmount       int64     `json:"net_amount"`
	PaymentStatus   string    `json:"payment_status"`
	CreatedAt       time.Time `json:"created_at"`
}

// PaymentUpdateRequest advances the payout state.
type PaymentUpdateRequest struct {
	Status string `json:"status"`
}
