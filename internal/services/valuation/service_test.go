package valuation

import (
	"context"
	"math"
	"testing"

	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/models"
)

// fakeHoldingStore serves a fixed slice of holdings.
type fakeHoldingStore struct {
	holdings []*models.Holding
}

func (f *fakeHoldingStore) Get(_ context.Context, userID, sym string) (*models.Holding, error) {
	for _, h := range f.holdings {
		if h.UserID == userID && h.Symbol == sym {
			return h, nil
		}
	}
	return nil, models.NewNotFoundError("holding", sym)
}

func (f *fakeHoldingStore) List(_ context.Context, userID string) ([]*models.Holding, error) {
	var out []*models.Holding
	for _, h := range f.holdings {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHoldingStore) Apply(context.Context, string, string, func(*models.Holding) (*models.Holding, error)) error {
	panic("valuation never writes")
}

// fixedResolver returns a mapped price, or the fallback when absent.
type fixedResolver struct {
	prices map[string]float64
}

func (r *fixedResolver) Resolve(_ context.Context, sym string, fallback float64) float64 {
	if px, ok := r.prices[sym]; ok {
		return px
	}
	return fallback
}

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func newTestService(holdings []*models.Holding, prices map[string]float64) *Service {
	return NewService(
		&fakeHoldingStore{holdings: holdings},
		&fixedResolver{prices: prices},
		common.NewSilentLogger(),
	)
}

func TestValuate_SinglePosition(t *testing.T) {
	svc := newTestService(
		[]*models.Holding{{UserID: "alice", Symbol: "TCS", Quantity: 10, BuyPrice: 100}},
		map[string]float64{"TCS": 110},
	)

	v, err := svc.Valuate(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Valuate failed: %v", err)
	}

	if len(v.Stocks) != 1 {
		t.Fatalf("got %d positions, want 1", len(v.Stocks))
	}
	p := v.Stocks[0]
	if !approxEqual(p.Invested, 1000, 0.001) {
		t.Errorf("invested = %v, want 1000", p.Invested)
	}
	if !approxEqual(p.CurrentValue, 1100, 0.001) {
		t.Errorf("current_value = %v, want 1100", p.CurrentValue)
	}
	if !approxEqual(p.Profit, 100, 0.001) {
		t.Errorf("profit = %v, want 100", p.Profit)
	}
	if !approxEqual(p.ProfitPercent, 10.0, 0.001) {
		t.Errorf("profit_percent = %v, want 10.0", p.ProfitPercent)
	}
	if v.Direction != models.DirectionUp {
		t.Errorf("direction = %q, want UP", v.Direction)
	}
}

func TestValuate_AggregateEqualsSumOfPositions(t *testing.T) {
	svc := newTestService(
		[]*models.Holding{
			{UserID: "alice", Symbol: "TCS", Quantity: 10, BuyPrice: 100},
			{UserID: "alice", Symbol: "INFY", Quantity: 5, BuyPrice: 200},
			{UserID: "alice", Symbol: "WIPRO", Quantity: 20, BuyPrice: 40},
		},
		map[string]float64{"TCS": 110, "INFY": 180, "WIPRO": 44.5},
	)

	v, err := svc.Valuate(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Valuate failed: %v", err)
	}

	var sumInvested, sumCurrent, sumProfit float64
	for _, p := range v.Stocks {
		sumInvested += p.Invested
		sumCurrent += p.CurrentValue
		sumProfit += p.Profit
	}

	if !approxEqual(v.TotalInvested, sumInvested, 0.001) {
		t.Errorf("total_invested = %v, want %v", v.TotalInvested, sumInvested)
	}
	if !approxEqual(v.CurrentValue, sumCurrent, 0.001) {
		t.Errorf("current_value = %v, want %v", v.CurrentValue, sumCurrent)
	}
	if !approxEqual(v.Profit, sumProfit, 0.001) {
		t.Errorf("aggregate profit = %v, want sum of per-position %v", v.Profit, sumProfit)
	}
}

func TestValuate_DirectionDownOnLoss(t *testing.T) {
	svc := newTestService(
		[]*models.Holding{{UserID: "alice", Symbol: "TCS", Quantity: 10, BuyPrice: 100}},
		map[string]float64{"TCS": 90},
	)

	v, err := svc.Valuate(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Valuate failed: %v", err)
	}
	if v.Direction != models.DirectionDown {
		t.Errorf("direction = %q, want DOWN", v.Direction)
	}
	if !approxEqual(v.Profit, -100, 0.001) {
		t.Errorf("profit = %v, want -100", v.Profit)
	}
}

func TestValuate_DirectionUpAtZeroProfit(t *testing.T) {
	svc := newTestService(
		[]*models.Holding{{UserID: "alice", Symbol: "TCS", Quantity: 10, BuyPrice: 100}},
		nil, // no quote: resolver falls back to cost basis
	)

	v, err := svc.Valuate(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Valuate failed: %v", err)
	}
	if !approxEqual(v.Profit, 0, 0.001) {
		t.Errorf("unpriced position must show zero profit, got %v", v.Profit)
	}
	if v.Direction != models.DirectionUp {
		t.Errorf("direction at zero profit = %q, want UP", v.Direction)
	}
}

func TestValuate_SkipsCorruptHoldings(t *testing.T) {
	svc := newTestService(
		[]*models.Holding{
			{UserID: "alice", Symbol: "OK", Quantity: 10, BuyPrice: 100},
			{UserID: "alice", Symbol: "ZEROQTY", Quantity: 0, BuyPrice: 100},
			{UserID: "alice", Symbol: "ZEROPRICE", Quantity: 10, BuyPrice: 0},
			// rounds to 0.00: must be skipped, not divided by
			{UserID: "alice", Symbol: "TINYPRICE", Quantity: 3, BuyPrice: 0.004},
		},
		map[string]float64{"OK": 110},
	)

	v, err := svc.Valuate(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Valuate failed: %v", err)
	}
	if len(v.Stocks) != 1 || v.Stocks[0].Symbol != "OK" {
		t.Errorf("corrupt holdings must be skipped, got %+v", v.Stocks)
	}
}

func TestValuate_EmptyPortfolio(t *testing.T) {
	svc := newTestService(nil, nil)

	v, err := svc.Valuate(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Valuate failed: %v", err)
	}
	if len(v.Stocks) != 0 {
		t.Errorf("got %d positions, want 0", len(v.Stocks))
	}
	if v.TotalInvested != 0 || v.CurrentValue != 0 || v.Profit != 0 {
		t.Errorf("empty portfolio totals must be zero, got %+v", v)
	}
	if v.Direction != models.DirectionUp {
		t.Errorf("direction = %q, want UP for empty portfolio", v.Direction)
	}
}

func TestValuate_RoundsEveryStep(t *testing.T) {
	svc := newTestService(
		[]*models.Holding{{UserID: "alice", Symbol: "TCS", Quantity: 3, BuyPrice: 33.335}},
		map[string]float64{"TCS": 33.99},
	)

	v, err := svc.Valuate(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Valuate failed: %v", err)
	}
	p := v.Stocks[0]
	for name, val := range map[string]float64{
		"buy_price":      p.BuyPrice,
		"invested":       p.Invested,
		"current_value":  p.CurrentValue,
		"profit":         p.Profit,
		"profit_percent": p.ProfitPercent,
		"total_invested": v.TotalInvested,
	} {
		if common.RoundCents(val) != val {
			t.Errorf("%s = %v not rounded to cents", name, val)
		}
	}
}
