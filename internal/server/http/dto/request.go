package dto

import "time"

// GoldItemBody is one line of a purchase request submission.
type GoldItemBody struct {
	Category    string   `json:"category"`
	Quantity    int      `json:"quantity"`
	Weight      *float64 `json:"weight,omitempty"`
	Description string   `json:"description,omitempty"`
}

// CreateRequestRequest is the customer submission payload.
type CreateRequestRequest struct {
	ContactName  string         `json:"contact_name"`
	ContactPhone string         `json:"contact_phone"`
	Address      string         `json:"address"`
	Items        []GoldItemBody `json:"items"`
}

// RequestResponse describes one purchase request.
type RequestResponse struct {
	ID               int64          `json:"id"`
	Number           string         `json:"number"`
	UserID           int64          `json:"user_id"`
	ContactName      string         `json:"contact_name"`
	ContactPhone     string         `json:"contact_phone"`
	Address          string         `json:"address"`
	Items            []GoldItemBody `json:"items"`
	EstimatedPrice   int64          `json:"estimated_price"`
	Status           string         `json:"status"`
	FinalWeight      *float64       `json:"final_weight,omitempty"`
	FinalPrice       *int64         `json:"final_price,omitempty"`
	EvaluationNotes  string         `json:"evaluation_notes,omitempty"`
	EvaluationImages []string       `json:"evaluation_images,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// QuoteResponse carries the snapshot estimate of a new request.
type QuoteResponse struct {
	EstimatedPrice int64 `json:"estimated_price"`
}

// StatusUpdateRequest moves a request through its lifecycle.
type StatusUpdateRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// EvaluationRequest carries the admin evaluation outputs.
type EvaluationRequest struct {
	FinalWeight float64  `json:"final_weight"`
	FinalPrice  int64    `json:"final_price"`
	Notes       string   `json:"notes,omitempty"`
	Images      []string `json:"images"`
}

// StatusChangeResponse is one audit timeline entry.
type StatusChangeResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ActorID   int64     `json:"actor_id"`
	Note      string    `json:"note,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// UploadResponse returns the public URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}
