// Package interfaces defines service contracts for Stockpilot
package interfaces

import (
	"context"

	"github.com/ksharma/stockpilot/internal/models"
)

// StorageManager coordinates the document store backends.
type StorageManager interface {
	HoldingStore() HoldingStore
	PriceStore() PriceStore
	Close() error
}

// HoldingStore manages per-user holdings, keyed by (user, normalized symbol).
// Mutations must be atomic per key: Apply runs a read-modify-write sequence
// inside a storage transaction so concurrent buys cannot lose updates.
type HoldingStore interface {
	Get(ctx context.Context, userID, sym string) (*models.Holding, error)
	List(ctx context.Context, userID string) ([]*models.Holding, error)

	// Apply atomically loads the holding for (userID, sym) — nil when absent —
	// and applies fn to it. A non-nil returned holding is upserted; a nil
	// return deletes the record. An error from fn aborts without writing.
	Apply(ctx context.Context, userID, sym string, fn func(current *models.Holding) (*models.Holding, error)) error
}

// PriceStore manages reference prices, written only by the ingest job.
type PriceStore interface {
	Get(ctx context.Context, sym string) (*models.ReferencePrice, error)
	Put(ctx context.Context, price *models.ReferencePrice) error
	List(ctx context.Context) ([]*models.ReferencePrice, error)
}
