// Package storage provides the top-level StorageManager owning the
// document store and its two collections: holdings and reference prices.
package storage

import (
	"fmt"

	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/interfaces"
	"github.com/ksharma/stockpilot/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over a single BadgerHold store.
type Manager struct {
	store    *badger.Store
	holdings interfaces.HoldingStore
	prices   interfaces.PriceStore
	logger   *common.Logger
}

// NewManager opens the document store and wires the collection accessors.
// Lifecycle is owned by the process entry point — no module-level singleton.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}

	logger.Info().Str("path", config.Storage.Path).Msg("Storage manager initialized")

	return &Manager{
		store:    store,
		holdings: badger.NewHoldingStore(store, logger),
		prices:   badger.NewPriceStore(store, logger),
		logger:   logger,
	}, nil
}

func (m *Manager) HoldingStore() interfaces.HoldingStore {
	return m.holdings
}

func (m *Manager) PriceStore() interfaces.PriceStore {
	return m.prices
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
