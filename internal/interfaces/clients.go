package interfaces

import "context"

// MarketDataClient fetches latest closes from the external provider.
// Implementations rate-limit themselves to respect provider quotas.
type MarketDataClient interface {
	// GetLatestClose returns the most recent closing price for a ticker.
	// Returns an error wrapping models.ErrUpstreamUnavailable when the
	// provider has no data or cannot be reached.
	GetLatestClose(ctx context.Context, ticker string) (float64, error)
}
