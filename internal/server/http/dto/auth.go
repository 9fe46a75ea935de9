package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// ProfileResponse describes the authenticated user.
type ProfileResponse struct {
	ID                int64  `json:"id"`
	Login             string `json:"login"`
	Role              string `json:"role"`
	Name              string `json:"name,omitempty"`
	Phone             string `json:"phone,omitempty"`
	TotalTransactions int64  `json:"total_transactions"`
	TotalAmount       int64  `json:"total_amount"`
}

// ProfileUpdateRequest carries mutable contact fields.
type ProfileUpdateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
