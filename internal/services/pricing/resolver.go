// Package pricing resolves current prices for normalized symbols, either
// by simulating intraday movement over stored reference prices or by
// querying the live market-data feed.
package pricing

import (
	"context"
	"math/rand"
	"sync"

	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/interfaces"
	"github.com/ksharma/stockpilot/internal/models"
	"github.com/ksharma/stockpilot/internal/symbol"
)

// MaxDrift bounds the simulated intraday movement at ±3% of the
// reference price.
const MaxDrift = 0.03

// SimulatedResolver perturbs stored reference prices to model intraday
// movement without a real feed. Randomness is injected so tests can
// seed it for determinism.
type SimulatedResolver struct {
	prices interfaces.PriceStore
	logger *common.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedResolver creates a resolver over the reference price store.
func NewSimulatedResolver(prices interfaces.PriceStore, logger *common.Logger, rng *rand.Rand) *SimulatedResolver {
	return &SimulatedResolver{
		prices: prices,
		logger: logger,
		rng:    rng,
	}
}

// Resolve looks up the reference price for sym, probing the bare key and
// the exchange-suffixed variant, and applies a bounded perturbation.
// When no reference price exists the fallback is returned unchanged, so
// an unpriced position shows zero profit by definition.
func (r *SimulatedResolver) Resolve(ctx context.Context, sym string, fallback float64) float64 {
	ref := r.lookup(ctx, sym)
	if ref == nil {
		return fallback
	}

	base := common.RoundCents(ref.Price)
	if base <= 0 {
		return fallback
	}

	r.mu.Lock()
	drift := (r.rng.Float64()*2 - 1) * MaxDrift
	r.mu.Unlock()

	return common.RoundCents(base * (1 + drift))
}

func (r *SimulatedResolver) lookup(ctx context.Context, sym string) *models.ReferencePrice {
	ref, err := r.prices.Get(ctx, sym)
	if err == nil {
		return ref
	}
	ref, err = r.prices.Get(ctx, symbol.WithSuffix(sym))
	if err == nil {
		return ref
	}
	return nil
}

// LiveResolver queries the external market-data provider for the latest
// close and skips the perturbation step. Provider failures degrade a
// single request to the fallback price — they never propagate.
type LiveResolver struct {
	client interfaces.MarketDataClient
	logger *common.Logger
}

// NewLiveResolver creates a resolver over the market-data client.
func NewLiveResolver(client interfaces.MarketDataClient, logger *common.Logger) *LiveResolver {
	return &LiveResolver{client: client, logger: logger}
}

// Resolve fetches the latest close for the suffixed ticker, falling back
// identically to the simulated resolver when the provider has no data.
func (r *LiveResolver) Resolve(ctx context.Context, sym string, fallback float64) float64 {
	px, err := r.client.GetLatestClose(ctx, symbol.WithSuffix(sym))
	if err != nil {
		r.logger.Warn().Err(err).Str("symbol", sym).Msg("Live quote unavailable, using fallback price")
		return fallback
	}
	return common.RoundCents(px)
}

// Ensure both resolvers implement PriceResolver
var (
	_ interfaces.PriceResolver = (*SimulatedResolver)(nil)
	_ interfaces.PriceResolver = (*LiveResolver)(nil)
)
