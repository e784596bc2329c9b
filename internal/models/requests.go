package models

// BuyRequest is the POST /buy-stock payload.
type BuyRequest struct {
	UserID   string  `json:"user_id"`
	Symbol   string  `json:"symbol"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

// Validate checks the request before it reaches the ledger.
func (r *BuyRequest) Validate() error {
	if r.UserID == "" {
		return NewValidationError("user_id", "required")
	}
	if r.Symbol == "" {
		return NewValidationError("symbol", "required")
	}
	if r.Quantity <= 0 {
		return NewValidationError("quantity", "must be positive")
	}
	if r.Price <= 0 {
		return NewValidationError("price", "must be positive")
	}
	return nil
}

// SellRequest is the POST /sell-stock payload.
type SellRequest struct {
	UserID   string `json:"user_id"`
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}

// Validate checks the request before it reaches the ledger.
func (r *SellRequest) Validate() error {
	if r.UserID == "" {
		return NewValidationError("user_id", "required")
	}
	if r.Symbol == "" {
		return NewValidationError("symbol", "required")
	}
	if r.Quantity <= 0 {
		return NewValidationError("quantity", "must be positive")
	}
	return nil
}

// BuySuggestionsRequest is the POST /buy-suggestions payload.
type BuySuggestionsRequest struct {
	Amount float64 `json:"amount"`
}

// Validate checks the budget is positive.
func (r *BuySuggestionsRequest) Validate() error {
	if r.Amount <= 0 {
		return NewValidationError("amount", "must be positive")
	}
	return nil
}

// MessageResponse is the standard success envelope for mutations.
type MessageResponse struct {
	Message string `json:"message"`
}
