package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// priceStore implements interfaces.PriceStore backed by BadgerHold.
// Reference prices are keyed by the symbol exactly as written by the
// ingest job — the resolver probes key variants, not this store.
type priceStore struct {
	store  *Store
	logger *common.Logger
}

// NewPriceStore creates a new PriceStore backed by BadgerHold.
func NewPriceStore(store *Store, logger *common.Logger) *priceStore {
	return &priceStore{store: store, logger: logger}
}

func (s *priceStore) Get(_ context.Context, sym string) (*models.ReferencePrice, error) {
	var price models.ReferencePrice
	err := s.store.db.Get("price/"+sym, &price)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.NewNotFoundError("reference price", sym)
		}
		return nil, fmt.Errorf("failed to get reference price '%s': %w", sym, err)
	}
	return &price, nil
}

func (s *priceStore) Put(_ context.Context, price *models.ReferencePrice) error {
	if price.Updated.IsZero() {
		price.Updated = time.Now().UTC()
	}
	if err := s.store.db.Upsert("price/"+price.Symbol, price); err != nil {
		return fmt.Errorf("failed to save reference price '%s': %w", price.Symbol, err)
	}
	s.logger.Debug().Str("symbol", price.Symbol).Float64("price", price.Price).Msg("Reference price saved")
	return nil
}

func (s *priceStore) List(_ context.Context) ([]*models.ReferencePrice, error) {
	var prices []*models.ReferencePrice
	if err := s.store.db.Find(&prices, nil); err != nil {
		return nil, fmt.Errorf("failed to list reference prices: %w", err)
	}
	return prices, nil
}
