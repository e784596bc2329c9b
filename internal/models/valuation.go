package models

// PositionValue is the derived valuation of a single holding.
type PositionValue struct {
	Symbol        string  `json:"symbol"`
	Quantity      int64   `json:"quantity"`
	BuyPrice      float64 `json:"buy_price"`
	CurrentPrice  float64 `json:"current_price"`
	Invested      float64 `json:"invested"`
	CurrentValue  float64 `json:"current_value"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profit_percent"`
}

// PortfolioValuation aggregates position values for one user.
// Direction is "UP" when aggregate profit >= 0, else "DOWN".
type PortfolioValuation struct {
	TotalInvested float64         `json:"total_invested"`
	CurrentValue  float64         `json:"current_value"`
	Profit        float64         `json:"profit"`
	Direction     string          `json:"direction"`
	Stocks        []PositionValue `json:"stocks"`
}

// DirectionUp and DirectionDown are the two aggregate profit directions.
const (
	DirectionUp   = "UP"
	DirectionDown = "DOWN"
)

// BuySuggestion is an affordable-buy candidate: the cheapest price seen
// for a normalized symbol and how many units the budget affords.
type BuySuggestion struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	AffordableQty int64   `json:"qty"`
}

// SellSuggestion is a recommended-sell candidate, ranked by profit.
// SuggestedSellQty is always the full held quantity — the engine does
// not compute partial-sell optimization.
type SellSuggestion struct {
	Symbol           string  `json:"symbol"`
	Quantity         int64   `json:"quantity"`
	BuyPrice         float64 `json:"buy_price"`
	CurrentPrice     float64 `json:"current_price"`
	Profit           float64 `json:"profit"`
	ProfitPercent    float64 `json:"profit_percent"`
	SuggestedSellQty int64   `json:"suggested_sell_qty"`
}
