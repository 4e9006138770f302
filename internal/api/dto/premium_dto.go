package dto

// CheckoutRequest selects a token package.
type CheckoutRequest struct {
	PlanID string `json:"planId"`
}

// CheckoutResponse carries the hosted checkout URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// BalanceResponse is returned by the token balance endpoint.
type BalanceResponse struct {
	Success bool   `json:"success"`
	Balance *int64 `json:"balance,omitempty"`
	Error   string `json:"error,omitempty"`
}
