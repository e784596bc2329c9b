// Package suggestion ranks candidate buy and sell actions: affordable
// buys from the reference-price snapshot, recommended sells from the
// user's ledger.
package suggestion

import (
	"context"
	"fmt"
	"sort"

	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/interfaces"
	"github.com/ksharma/stockpilot/internal/models"
	"github.com/ksharma/stockpilot/internal/symbol"
)

// MaxBuySuggestions caps the buy-side result set.
const MaxBuySuggestions = 20

// Service implements interfaces.SuggestionService.
type Service struct {
	holdings interfaces.HoldingStore
	prices   interfaces.PriceStore
	resolver interfaces.PriceResolver
	logger   *common.Logger
}

// NewService creates a new suggestion service.
func NewService(holdings interfaces.HoldingStore, prices interfaces.PriceStore, resolver interfaces.PriceResolver, logger *common.Logger) *Service {
	return &Service{
		holdings: holdings,
		prices:   prices,
		resolver: resolver,
		logger:   logger,
	}
}

// SuggestBuys scans the full reference-price snapshot for symbols the
// budget affords. Raw tickers collapsing to the same normalized symbol
// keep the cheapest price seen. Results sort descending by affordable
// quantity (stable) and cap at MaxBuySuggestions.
func (s *Service) SuggestBuys(ctx context.Context, amount float64) ([]models.BuySuggestion, error) {
	req := models.BuySuggestionsRequest{Amount: amount}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := s.prices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference prices: %w", err)
	}

	cheapest := make(map[string]models.BuySuggestion)
	order := make([]string, 0, len(snapshot))

	for _, ref := range snapshot {
		sym := symbol.Normalize(ref.Symbol)
		if sym == "" {
			continue
		}
		price := common.RoundCents(ref.Price)
		if price <= 0 || price > amount {
			continue
		}

		existing, seen := cheapest[sym]
		if seen && existing.Price <= price {
			continue
		}
		if !seen {
			order = append(order, sym)
		}
		cheapest[sym] = models.BuySuggestion{
			Symbol:        sym,
			Price:         price,
			AffordableQty: int64(amount / price),
		}
	}

	results := make([]models.BuySuggestion, 0, len(cheapest))
	for _, sym := range order {
		results = append(results, cheapest[sym])
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AffordableQty > results[j].AffordableQty
	})

	if len(results) > MaxBuySuggestions {
		results = results[:MaxBuySuggestions]
	}
	return results, nil
}

// SuggestSells builds full-liquidation candidates for every live holding,
// ranked descending by profit at the resolved current price. No cap.
func (s *Service) SuggestSells(ctx context.Context, userID string) ([]models.SellSuggestion, error) {
	holdings, err := s.holdings.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio for '%s': %w", userID, err)
	}

	suggestions := make([]models.SellSuggestion, 0, len(holdings))
	for _, h := range holdings {
		buyPrice := common.RoundCents(h.BuyPrice)
		if h.Quantity <= 0 || buyPrice <= 0 {
			continue
		}

		currentPrice := s.resolver.Resolve(ctx, h.Symbol, buyPrice)

		profit := common.RoundCents((currentPrice - buyPrice) * float64(h.Quantity))
		profitPct := common.RoundCents((currentPrice - buyPrice) / buyPrice * 100)

		suggestions = append(suggestions, models.SellSuggestion{
			Symbol:           h.Symbol,
			Quantity:         h.Quantity,
			BuyPrice:         buyPrice,
			CurrentPrice:     currentPrice,
			Profit:           profit,
			ProfitPercent:    profitPct,
			SuggestedSellQty: h.Quantity,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Profit > suggestions[j].Profit
	})

	return suggestions, nil
}

// Ensure Service implements SuggestionService
var _ interfaces.SuggestionService = (*Service)(nil)
