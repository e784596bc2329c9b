package ledger

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/models"
)

// fakeHoldingStore is an in-memory HoldingStore honoring the Apply contract.
type fakeHoldingStore struct {
	mu      sync.Mutex
	records map[string]*models.Holding
}

func newFakeHoldingStore() *fakeHoldingStore {
	return &fakeHoldingStore{records: make(map[string]*models.Holding)}
}

func (f *fakeHoldingStore) key(userID, sym string) string { return userID + "/" + sym }

func (f *fakeHoldingStore) Get(_ context.Context, userID, sym string) (*models.Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.records[f.key(userID, sym)]
	if !ok {
		return nil, models.NewNotFoundError("holding", sym)
	}
	cp := *h
	return &cp, nil
}

func (f *fakeHoldingStore) List(_ context.Context, userID string) ([]*models.Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Holding
	for _, h := range f.records {
		if h.UserID == userID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeHoldingStore) Apply(_ context.Context, userID, sym string, fn func(*models.Holding) (*models.Holding, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := f.key(userID, sym)

	var current *models.Holding
	if h, ok := f.records[key]; ok {
		cp := *h
		current = &cp
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		delete(f.records, key)
		return nil
	}
	f.records[key] = next
	return nil
}

func newTestService() (*Service, *fakeHoldingStore) {
	store := newFakeHoldingStore()
	return NewService(store, common.NewSilentLogger()), store
}

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// --- Buy ---

func TestBuy_CreatesHolding(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	err := svc.Buy(ctx, &models.BuyRequest{UserID: "alice", Symbol: "tcs.ns", Quantity: 10, Price: 100})
	if err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	h, err := store.Get(ctx, "alice", "TCS")
	if err != nil {
		t.Fatalf("holding not created: %v", err)
	}
	if h.Quantity != 10 || h.BuyPrice != 100 {
		t.Errorf("got qty=%d price=%v, want 10/100", h.Quantity, h.BuyPrice)
	}
	if h.CreatedAt.IsZero() || h.UpdatedAt.IsZero() {
		t.Error("timestamps must be set on first buy")
	}
}

func TestBuy_WeightedAverageMerge(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	// buy 10 @ 100 then 10 @ 200 -> qty 20 @ 150.00
	if err := svc.Buy(ctx, &models.BuyRequest{UserID: "alice", Symbol: "TCS", Quantity: 10, Price: 100}); err != nil {
		t.Fatalf("first Buy failed: %v", err)
	}
	if err := svc.Buy(ctx, &models.BuyRequest{UserID: "alice", Symbol: "TCS", Quantity: 10, Price: 200}); err != nil {
		t.Fatalf("second Buy failed: %v", err)
	}

	h, err := store.Get(ctx, "alice", "TCS")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if h.Quantity != 20 {
		t.Errorf("quantity = %d, want 20", h.Quantity)
	}
	if !approxEqual(h.BuyPrice, 150.00, 0.001) {
		t.Errorf("buy_price = %v, want 150.00", h.BuyPrice)
	}
}

func TestBuy_RawVariantsMergeToOneHolding(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if err := svc.Buy(ctx, &models.BuyRequest{UserID: "alice", Symbol: "tcs", Quantity: 5, Price: 100}); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if err := svc.Buy(ctx, &models.BuyRequest{UserID: "alice", Symbol: "TCS.NS", Quantity: 5, Price: 100}); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	holdings, err := store.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1 merged", len(holdings))
	}
	if holdings[0].Quantity != 10 {
		t.Errorf("quantity = %d, want 10", holdings[0].Quantity)
	}
}

func TestBuy_AverageMonotonicity(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	prices := []float64{103.37, 55.10, 240.95, 99.99, 55.10, 180.00}
	var totalQty int64
	minPrice, maxPrice := math.MaxFloat64, 0.0

	for i, p := range prices {
		qty := int64(i + 1)
		if err := svc.Buy(ctx, &models.BuyRequest{UserID: "alice", Symbol: "TCS", Quantity: qty, Price: p}); err != nil {
			t.Fatalf("Buy %d failed: %v", i, err)
		}
		totalQty += qty
		minPrice = math.Min(minPrice, p)
		maxPrice = math.Max(maxPrice, p)

		h, err := store.Get(ctx, "alice", "TCS")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		// Average stays within [min, max] of merged prices at every step
		if h.BuyPrice < minPrice-0.01 || h.BuyPrice > maxPrice+0.01 {
			t.Errorf("after buy %d: buy_price %v outside [%v, %v]", i, h.BuyPrice, minPrice, maxPrice)
		}
	}

	h, _ := store.Get(ctx, "alice", "TCS")
	if h.Quantity != totalQty {
		t.Errorf("final quantity = %d, want %d", h.Quantity, totalQty)
	}
}

func TestBuy_Validation(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.BuyRequest
	}{
		{"missing user", models.BuyRequest{Symbol: "TCS", Quantity: 1, Price: 10}},
		{"missing symbol", models.BuyRequest{UserID: "alice", Quantity: 1, Price: 10}},
		{"blank symbol", models.BuyRequest{UserID: "alice", Symbol: "   ", Quantity: 1, Price: 10}},
		{"zero quantity", models.BuyRequest{UserID: "alice", Symbol: "TCS", Price: 10}},
		{"negative quantity", models.BuyRequest{UserID: "alice", Symbol: "TCS", Quantity: -1, Price: 10}},
		{"zero price", models.BuyRequest{UserID: "alice", Symbol: "TCS", Quantity: 1}},
		{"negative price", models.BuyRequest{UserID: "alice", Symbol: "TCS", Quantity: 1, Price: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Buy(ctx, &tt.req)
			if !models.IsValidation(err) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	if n := len(store.records); n != 0 {
		t.Errorf("rejected buys must not touch storage, found %d records", n)
	}
}

// --- Sell ---

func TestSell_PartialKeepsCostBasis(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if err := svc.Buy(ctx, &models.BuyRequest{UserID: "alice", Symbol: "TCS", Quantity: 10, Price: 150}); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if err := svc.Sell(ctx, &models.SellRequest{UserID: "alice", Symbol: "TCS", Quantity: 4}); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	h, err := store.Get(ctx, "alice", "TCS")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if h.Quantity != 6 {
		t.Errorf("quantity = %d, want 6", h.Quantity)
	}
	if h.BuyPrice != 150 {
		t.Errorf("partial sell must not change buy_price, got %v", h.BuyPrice)
	}
}

func TestSell_ExactQuantityLiquidates(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if err := svc.Buy(ctx, &models.BuyRequest{UserID: "alice", Symbol: "TCS", Quantity: 5, Price: 50}); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if err := svc.Sell(ctx, &models.SellRequest{UserID: "alice", Symbol: "TCS", Quantity: 5}); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	if _, err := store.Get(ctx, "alice", "TCS"); !models.IsNotFound(err) {
		t.Fatalf("holding must be deleted on full liquidation, got %v", err)
	}

	// Subsequent sell is NotFound
	err := svc.Sell(ctx, &models.SellRequest{UserID: "alice", Symbol: "TCS", Quantity: 1})
	if !models.IsNotFound(err) {
		t.Fatalf("expected NotFoundError after liquidation, got %v", err)
	}
}

func TestSell_OverHeldQuantityLiquidates(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if err := svc.Buy(ctx, &models.BuyRequest{UserID: "alice", Symbol: "TCS", Quantity: 5, Price: 50}); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if err := svc.Sell(ctx, &models.SellRequest{UserID: "alice", Symbol: "TCS", Quantity: 500}); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	if _, err := store.Get(ctx, "alice", "TCS"); !models.IsNotFound(err) {
		t.Fatalf("over-sell must liquidate, got %v", err)
	}
}

func TestSell_MissingHoldingNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	err := svc.Sell(ctx, &models.SellRequest{UserID: "alice", Symbol: "NOPE", Quantity: 1})
	if !models.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestSell_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.SellRequest
	}{
		{"missing user", models.SellRequest{Symbol: "TCS", Quantity: 1}},
		{"missing symbol", models.SellRequest{UserID: "alice", Quantity: 1}},
		{"zero quantity", models.SellRequest{UserID: "alice", Symbol: "TCS"}},
		{"negative quantity", models.SellRequest{UserID: "alice", Symbol: "TCS", Quantity: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Sell(ctx, &tt.req)
			if !models.IsValidation(err) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestSell_NormalizedSymbolLookup(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if err := svc.Buy(ctx, &models.BuyRequest{UserID: "alice", Symbol: "TCS", Quantity: 10, Price: 100}); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if err := svc.Sell(ctx, &models.SellRequest{UserID: "alice", Symbol: "tcs.ns", Quantity: 10}); err != nil {
		t.Fatalf("Sell via raw variant failed: %v", err)
	}

	if _, err := store.Get(ctx, "alice", "TCS"); !models.IsNotFound(err) {
		t.Fatalf("expected liquidation via normalized lookup, got %v", err)
	}
}
