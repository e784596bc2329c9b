package interfaces

import (
	"context"

	"github.com/ksharma/stockpilot/internal/models"
)

// LedgerService owns buy/sell mutations against the holding store.
type LedgerService interface {
	Buy(ctx context.Context, req *models.BuyRequest) error
	Sell(ctx context.Context, req *models.SellRequest) error
}

// PriceResolver returns a current price for a normalized symbol,
// falling back to the supplied price when no quote exists.
type PriceResolver interface {
	Resolve(ctx context.Context, sym string, fallback float64) float64
}

// ValuationService computes per-position and aggregate profit/loss.
type ValuationService interface {
	Valuate(ctx context.Context, userID string) (*models.PortfolioValuation, error)
}

// SuggestionService ranks candidate buy and sell actions.
type SuggestionService interface {
	SuggestBuys(ctx context.Context, amount float64) ([]models.BuySuggestion, error)
	SuggestSells(ctx context.Context, userID string) ([]models.SellSuggestion, error)
}
