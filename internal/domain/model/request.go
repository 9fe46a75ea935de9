package model

import "time"

// RequestStatus describes the purchase request lifecycle.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusShipped    RequestStatus = "shipped"
	StatusReceived   RequestStatus = "received"
	StatusEvaluating RequestStatus = "evaluating"
	StatusEvaluated  RequestStatus = "evaluated"
	StatusConfirmed  RequestStatus = "confirmed"
	StatusPaid       RequestStatus = "paid"
	StatusCancelled  RequestStatus = "cancelled"
)

// statusRank orders the linear part of the lifecycle. Cancelled sits outside it.
var statusRank = map[RequestStatus]int{
	StatusPending:    0,
	StatusShipped:    1,
	StatusReceived:   2,
	StatusEvaluating: 3,
	StatusEvaluated:  4,
	StatusConfirmed:  5,
	StatusPaid:       6,
}

// NormalizeStatus maps a raw status name, including legacy aliases, to its
// canonical value. Legacy inputs: approved -> confirmed, deposited -> paid.
func NormalizeStatus(raw string) (RequestStatus, bool) {
	switch raw {
	case "approved":
		return StatusConfirmed, true
	case "deposited":
		return StatusPaid, true
	}
	s := RequestStatus(raw)
	if _, ok := statusRank[s]; ok {
		return s, true
	}
	if s == StatusCancelled {
		return s, true
	}
	return "", false
}

// Terminal reports whether no further transition is accepted.
func (s RequestStatus) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// CanTransitionTo reports whether a single forward step (or cancellation)
// from s to next is defined. Backward moves are never allowed.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to == from+1
}

// GoldItem is one line of a purchase request. Weight is optional metadata;
// pricing is strictly per declared unit count.
type GoldItem struct {
	ID          int64
	RequestID   int64
	Category    GoldCategory
	Quantity    int
	Weight      *float64
	Description string
}

// PurchaseRequest is a customer buy-back request.
type PurchaseRequest struct {
	ID             int64
	Number         string
	UserID         int64
	ContactName    string
	ContactPhone   string
	Address        string
	Items          []GoldItem
	EstimatedPrice int64
	Status         RequestStatus

	// Evaluation outputs, populated by the evaluating -> evaluated transition.
	FinalWeight      *float64
	FinalPrice       *int64
	EvaluationNotes  string
	EvaluationImages []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Evaluated reports whether the request carries a final price.
func (r *PurchaseRequest) Evaluated() bool {
	return r.FinalPrice != nil
}

// StatusChange is one append-only audit entry of the request timeline.
// It is never used to derive current state.
type StatusChange struct {
	ID        int64
	RequestID int64
	ActorID   int64
	From      RequestStatus
	To        RequestStatus
	Note      string
	ChangedAt time.Time
}
