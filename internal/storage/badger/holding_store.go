package badger

import (
	"context"
	"errors"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// holdingStore implements interfaces.HoldingStore backed by BadgerHold.
// Records are keyed by "userID/symbol", mirroring the per-user
// portfolio sub-collection layout.
type holdingStore struct {
	store  *Store
	logger *common.Logger
}

// NewHoldingStore creates a new HoldingStore backed by BadgerHold.
func NewHoldingStore(store *Store, logger *common.Logger) *holdingStore {
	return &holdingStore{store: store, logger: logger}
}

func holdingKey(userID, sym string) string {
	return userID + "/" + sym
}

func (s *holdingStore) Get(_ context.Context, userID, sym string) (*models.Holding, error) {
	var holding models.Holding
	err := s.store.db.Get(holdingKey(userID, sym), &holding)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.NewNotFoundError("holding", sym)
		}
		return nil, fmt.Errorf("failed to get holding '%s': %w", sym, err)
	}
	return &holding, nil
}

func (s *holdingStore) List(_ context.Context, userID string) ([]*models.Holding, error) {
	var holdings []*models.Holding
	if err := s.store.db.Find(&holdings, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, fmt.Errorf("failed to list holdings for user '%s': %w", userID, err)
	}
	return holdings, nil
}

// Apply runs fn against the current holding inside a single Badger
// transaction. The read, mutation, and write commit atomically, so a
// concurrent buy against the same (user, symbol) either sees the merged
// result or retries at the storage layer. Badger aborts conflicting
// transactions instead of blocking, so conflicts re-run fn against the
// committed state.
func (s *holdingStore) Apply(ctx context.Context, userID, sym string, fn func(current *models.Holding) (*models.Holding, error)) error {
	key := holdingKey(userID, sym)

	var err error
	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.applyOnce(key, fn)
		if !errors.Is(err, badgerdb.ErrConflict) {
			break
		}
	}
	if err != nil {
		return err
	}

	s.logger.Debug().Str("user", userID).Str("symbol", sym).Msg("Holding mutation applied")
	return nil
}

func (s *holdingStore) applyOnce(key string, fn func(current *models.Holding) (*models.Holding, error)) error {
	return s.store.db.Badger().Update(func(tx *badgerdb.Txn) error {
		var current models.Holding
		var existing *models.Holding

		err := s.store.db.TxGet(tx, key, &current)
		switch err {
		case nil:
			existing = &current
		case badgerhold.ErrNotFound:
			existing = nil
		default:
			return fmt.Errorf("failed to read holding '%s': %w", key, err)
		}

		next, err := fn(existing)
		if err != nil {
			return err
		}

		if next == nil {
			if existing == nil {
				return nil
			}
			if err := s.store.db.TxDelete(tx, key, models.Holding{}); err != nil {
				return fmt.Errorf("failed to delete holding '%s': %w", key, err)
			}
			return nil
		}

		if err := s.store.db.TxUpsert(tx, key, next); err != nil {
			return fmt.Errorf("failed to save holding '%s': %w", key, err)
		}
		return nil
	})
}
