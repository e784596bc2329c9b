package app

import (
	"context"
	"time"

	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/interfaces"
	"github.com/ksharma/stockpilot/internal/services/ingest"
	"github.com/ksharma/stockpilot/internal/symbol"
)

// startPriceScheduler re-polls the provider for every symbol already in
// the reference price collection on a fixed interval. The full-universe
// sweep stays with the price-updater job; this loop only keeps known
// symbols fresh.
func startPriceScheduler(ctx context.Context, svc *ingest.Service, prices interfaces.PriceStore, logger *common.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Price scheduler: stopped")
			return
		case <-ticker.C:
			refreshKnownSymbols(ctx, svc, prices, logger)
		}
	}
}

func refreshKnownSymbols(ctx context.Context, svc *ingest.Service, prices interfaces.PriceStore, logger *common.Logger) {
	refs, err := prices.List(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Price scheduler: failed to list reference prices")
		return
	}
	if len(refs) == 0 {
		return
	}

	tickers := make([]string, 0, len(refs))
	for _, ref := range refs {
		tickers = append(tickers, symbol.WithSuffix(ref.Symbol))
	}

	if _, err := svc.RefreshUniverse(ctx, tickers); err != nil {
		logger.Warn().Err(err).Msg("Price scheduler: refresh aborted")
	}
}
