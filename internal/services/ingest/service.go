package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/interfaces"
	"github.com/ksharma/stockpilot/internal/models"
	"github.com/ksharma/stockpilot/internal/symbol"
)

// Service refreshes reference prices for a symbol universe. It is the
// only writer of the reference price collection; the request path never
// mutates prices.
type Service struct {
	client interfaces.MarketDataClient
	prices interfaces.PriceStore
	logger *common.Logger
}

// NewService creates a new ingest service.
func NewService(client interfaces.MarketDataClient, prices interfaces.PriceStore, logger *common.Logger) *Service {
	return &Service{
		client: client,
		prices: prices,
		logger: logger,
	}
}

// RunResult summarizes one refresh pass.
type RunResult struct {
	Total   int
	Updated int
	Failed  int
	Elapsed time.Duration
}

// RefreshUniverse polls the provider for every ticker and upserts the
// reference price under the bare normalized symbol. Failures are fatal
// per symbol only: the batch logs and continues, and the provider's
// rate limiter throttles the poll loop. Context cancellation stops the
// batch between symbols.
func (s *Service) RefreshUniverse(ctx context.Context, tickers []string) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{Total: len(tickers)}

	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("refresh aborted: %w", err)
		}

		px, err := s.client.GetLatestClose(ctx, ticker)
		if err != nil {
			result.Failed++
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("No price data, skipping symbol")
			continue
		}

		ref := &models.ReferencePrice{
			Symbol:  symbol.Normalize(ticker),
			Price:   common.RoundCents(px),
			Updated: time.Now().UTC(),
		}
		if err := s.prices.Put(ctx, ref); err != nil {
			result.Failed++
			s.logger.Error().Err(err).Str("ticker", ticker).Msg("Failed to save reference price")
			continue
		}

		result.Updated++
		s.logger.Debug().Str("symbol", ref.Symbol).Float64("price", ref.Price).Msg("Reference price updated")
	}

	result.Elapsed = time.Since(start)
	s.logger.Info().
		Int("total", result.Total).
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Dur("elapsed", result.Elapsed).
		Msg("Price refresh complete")

	return result, nil
}
