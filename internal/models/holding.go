// Package models defines data structures for Stockpilot
package models

import "time"

// Holding represents a user's aggregated position in one symbol.
// At most one Holding exists per (user, normalized symbol); raw tickers
// that normalize to the same key merge into it. A holding with quantity
// <= 0 must never be persisted — full liquidation deletes the record.
type Holding struct {
	UserID    string    `json:"user_id"`
	Symbol    string    `json:"symbol"`    // normalized ticker, uppercase, no exchange suffix
	Quantity  int64     `json:"quantity"`  // > 0 while the holding exists
	BuyPrice  float64   `json:"buy_price"` // quantity-weighted average cost basis, > 0
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReferencePrice is the last known market price for a symbol, maintained
// exclusively by the price-updater job. Read-only for the request path.
type ReferencePrice struct {
	Symbol  string    `json:"symbol"`
	Price   float64   `json:"price"`
	Updated time.Time `json:"updated"`
}
