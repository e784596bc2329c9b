// Package ledger owns per-user holdings and applies buy/sell mutations.
package ledger

import (
	"context"
	"time"

	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/interfaces"
	"github.com/ksharma/stockpilot/internal/models"
	"github.com/ksharma/stockpilot/internal/symbol"
)

// Service implements interfaces.LedgerService over a HoldingStore.
type Service struct {
	holdings interfaces.HoldingStore
	logger   *common.Logger
	now      func() time.Time // injectable clock for testing
}

// NewService creates a new ledger service.
func NewService(holdings interfaces.HoldingStore, logger *common.Logger) *Service {
	return &Service{
		holdings: holdings,
		logger:   logger,
		now:      time.Now,
	}
}

// Buy records a purchase. An existing holding merges via quantity-weighted
// average cost, rounded to cents; the merged average always lies between
// the two merged prices. Validation happens before any storage access.
func (s *Service) Buy(ctx context.Context, req *models.BuyRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	sym := symbol.Normalize(req.Symbol)
	if sym == "" {
		return models.NewValidationError("symbol", "required")
	}
	price := common.RoundCents(req.Price)
	if price <= 0 {
		return models.NewValidationError("price", "must be positive")
	}

	err := s.holdings.Apply(ctx, req.UserID, sym, func(current *models.Holding) (*models.Holding, error) {
		now := s.now().UTC()

		if current == nil {
			return &models.Holding{
				UserID:    req.UserID,
				Symbol:    sym,
				Quantity:  req.Quantity,
				BuyPrice:  price,
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		}

		newQty := current.Quantity + req.Quantity
		avgPrice := common.RoundCents(
			(float64(current.Quantity)*current.BuyPrice + float64(req.Quantity)*price) / float64(newQty),
		)

		current.Quantity = newQty
		current.BuyPrice = avgPrice
		current.UpdatedAt = now
		return current, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("user", req.UserID).
		Str("symbol", sym).
		Int64("quantity", req.Quantity).
		Float64("price", price).
		Msg("Buy recorded")
	return nil
}

// Sell reduces or liquidates a holding. Selling quantity >= held quantity
// deletes the record — zero-quantity holdings never persist. A partial
// sell decrements quantity and leaves the cost basis untouched.
func (s *Service) Sell(ctx context.Context, req *models.SellRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	sym := symbol.Normalize(req.Symbol)
	if sym == "" {
		return models.NewValidationError("symbol", "required")
	}

	err := s.holdings.Apply(ctx, req.UserID, sym, func(current *models.Holding) (*models.Holding, error) {
		if current == nil {
			return nil, models.NewNotFoundError("holding", sym)
		}

		if req.Quantity >= current.Quantity {
			return nil, nil // full liquidation
		}

		current.Quantity -= req.Quantity
		current.UpdatedAt = s.now().UTC()
		return current, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("user", req.UserID).
		Str("symbol", sym).
		Int64("quantity", req.Quantity).
		Msg("Sell recorded")
	return nil
}

// Ensure Service implements LedgerService
var _ interfaces.LedgerService = (*Service)(nil)
