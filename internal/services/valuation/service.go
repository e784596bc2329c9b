// Package valuation walks a user's ledger and produces per-position and
// aggregate profit/loss against resolved current prices.
package valuation

import (
	"context"
	"fmt"

	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/interfaces"
	"github.com/ksharma/stockpilot/internal/models"
)

// Service implements interfaces.ValuationService.
type Service struct {
	holdings interfaces.HoldingStore
	resolver interfaces.PriceResolver
	logger   *common.Logger
}

// NewService creates a new valuation service.
func NewService(holdings interfaces.HoldingStore, resolver interfaces.PriceResolver, logger *common.Logger) *Service {
	return &Service{
		holdings: holdings,
		resolver: resolver,
		logger:   logger,
	}
}

// Valuate resolves current prices for every live holding of the user and
// aggregates invested capital, current value, and profit. Holdings with
// non-positive quantity or cost basis are skipped with a warning.
// Valuation never writes.
func (s *Service) Valuate(ctx context.Context, userID string) (*models.PortfolioValuation, error) {
	holdings, err := s.holdings.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio for '%s': %w", userID, err)
	}

	result := &models.PortfolioValuation{
		Stocks: make([]models.PositionValue, 0, len(holdings)),
	}

	for _, h := range holdings {
		// Filter on the rounded cost basis: a sub-cent BuyPrice rounds
		// to zero and would divide by zero in profit_percent.
		buyPrice := common.RoundCents(h.BuyPrice)
		if h.Quantity <= 0 || buyPrice <= 0 {
			s.logger.Warn().
				Str("user", userID).
				Str("symbol", h.Symbol).
				Msg("Skipping corrupt holding during valuation")
			continue
		}

		currentPrice := s.resolver.Resolve(ctx, h.Symbol, buyPrice)

		invested := common.RoundCents(buyPrice * float64(h.Quantity))
		current := common.RoundCents(currentPrice * float64(h.Quantity))
		profit := common.RoundCents(current - invested)

		result.Stocks = append(result.Stocks, models.PositionValue{
			Symbol:        h.Symbol,
			Quantity:      h.Quantity,
			BuyPrice:      buyPrice,
			CurrentPrice:  currentPrice,
			Invested:      invested,
			CurrentValue:  current,
			Profit:        profit,
			ProfitPercent: common.RoundCents(profit / invested * 100),
		})

		result.TotalInvested += invested
		result.CurrentValue += current
	}

	result.TotalInvested = common.RoundCents(result.TotalInvested)
	result.CurrentValue = common.RoundCents(result.CurrentValue)
	result.Profit = common.RoundCents(result.CurrentValue - result.TotalInvested)
	if result.Profit >= 0 {
		result.Direction = models.DirectionUp
	} else {
		result.Direction = models.DirectionDown
	}

	return result, nil
}

// Ensure Service implements ValuationService
var _ interfaces.ValuationService = (*Service)(nil)
