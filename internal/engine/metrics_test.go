package engine

import (
	"context"
	"errors"
	"testing"

	"wealthtracker/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type mockDataStore struct {
	txs    []types.Transaction
	rates  []types.ExchangeRate
	assets []types.Asset
	err    error
}

func (m *mockDataStore) GetTransactions(_ context.Context, _ uuid.UUID) ([]types.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.txs, nil
}

func (m *mockDataStore) GetTransactionsByBroker(_ context.Context, _ uuid.UUID, brokerId uuid.UUID) ([]types.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []types.Transaction
	for _, tx := range m.txs {
		if tx.BrokerId == brokerId {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *mockDataStore) GetExchangeRates(_ context.Context) ([]types.ExchangeRate, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rates, nil
}

func (m *mockDataStore) GetAssets(_ context.Context) ([]types.Asset, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.assets, nil
}

func testStore() *mockDataStore {
	assets := testAssets()
	return &mockDataStore{
		txs: []types.Transaction{
			newTestTx(equityId, brokerA, types.OperationBuy, "100", "10", types.CurrencyARS, day(1), 1),
			newTestTx(equityId, brokerB, types.OperationBuy, "50", "12", types.CurrencyARS, day(2), 2),
			newTestTx(equityId, brokerA, types.OperationSell, "40", "13", types.CurrencyARS, day(3), 3),
		},
		rates: []types.ExchangeRate{
			{Date: day(1), Rate: decimal.RequireFromString("1000")},
			{Date: day(2), Rate: decimal.RequireFromString("1050")},
			{Date: day(3), Rate: decimal.RequireFromString("1100")},
		},
		assets: []types.Asset{assets[equityId], assets[bondId]},
	}
}

func TestEnginePortfolioMetrics(t *testing.T) {
	eng := NewEngine(testStore())
	portfolioId := uuid.New()

	m, err := eng.PortfolioMetrics(context.Background(), portfolioId)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.PortfolioId != portfolioId {
		t.Fatalf("portfolio id = %s, want %s", m.PortfolioId, portfolioId)
	}
	if m.BrokerId != nil {
		t.Fatalf("broker id = %v, want nil", m.BrokerId)
	}
	if len(m.Holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(m.Holdings))
	}

	h := m.Holdings[0]
	// Broker A keeps 60 after the sell, broker B keeps all 50.
	if !h.Quantity.Equal(decimal.RequireFromString("110")) {
		t.Fatalf("quantity = %s, want 110", h.Quantity)
	}
	if !m.Totals.CostBasisLocal.Equal(decimal.RequireFromString("1200")) {
		t.Fatalf("cost basis = %s, want 1200", m.Totals.CostBasisLocal)
	}
	if !m.Totals.MarketValueLocal.Equal(decimal.RequireFromString("1650")) {
		t.Fatalf("market value = %s, want 1650", m.Totals.MarketValueLocal)
	}
	if !m.Totals.PnlPctLocal.Equal(decimal.RequireFromString("37.5")) {
		t.Fatalf("pnl pct = %s, want 37.5", m.Totals.PnlPctLocal)
	}

	if len(m.Brokers) != 2 {
		t.Fatalf("got %d broker summaries, want 2", len(m.Brokers))
	}
}

func TestEngineBrokerMetrics(t *testing.T) {
	eng := NewEngine(testStore())

	m, err := eng.BrokerMetrics(context.Background(), uuid.New(), brokerA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.BrokerId == nil || *m.BrokerId != brokerA {
		t.Fatalf("broker id = %v, want %s", m.BrokerId, brokerA)
	}
	if len(m.Holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(m.Holdings))
	}
	// The FIFO sell ran against broker A's own lots only.
	if !m.Holdings[0].Quantity.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("quantity = %s, want 60", m.Holdings[0].Quantity)
	}
	if !m.Totals.CostBasisLocal.Equal(decimal.RequireFromString("600")) {
		t.Fatalf("cost basis = %s, want 600", m.Totals.CostBasisLocal)
	}
	if !m.Totals.PnlPctLocal.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("pnl pct = %s, want 50", m.Totals.PnlPctLocal)
	}
}

func TestComputeBrokerFilter(t *testing.T) {
	store := testStore()

	m, err := Compute(store.txs, store.rates, store.assets, uuid.Nil, &brokerB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(m.Holdings))
	}
	if !m.Holdings[0].Quantity.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("quantity = %s, want 50", m.Holdings[0].Quantity)
	}
	if len(m.Brokers) != 1 {
		t.Fatalf("got %d broker summaries, want 1", len(m.Brokers))
	}
}

func TestSummaryCurrencyAccessors(t *testing.T) {
	eng := NewEngine(testStore())

	m, err := eng.PortfolioMetrics(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !m.Totals.MarketValue(types.CurrencyARS).Equal(m.Totals.MarketValueLocal) {
		t.Fatal("ARS accessor did not return the local figure")
	}
	if !m.Totals.MarketValue(types.CurrencyUSD).Equal(m.Totals.MarketValueForeign) {
		t.Fatal("USD accessor did not return the foreign figure")
	}
	// 110 units at the latest foreign quote of 0.015.
	if !m.Totals.MarketValueForeign.Equal(decimal.RequireFromString("1.65")) {
		t.Fatalf("foreign market value = %s, want 1.65", m.Totals.MarketValueForeign)
	}
}

func TestEnginePropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection refused")
	eng := NewEngine(&mockDataStore{err: storeErr})

	_, err := eng.PortfolioMetrics(context.Background(), uuid.New())
	if !errors.Is(err, storeErr) {
		t.Fatalf("got error %v, want %v", err, storeErr)
	}
}

func TestComputeEmptyLedger(t *testing.T) {
	store := testStore()

	m, err := Compute(nil, store.rates, store.assets, uuid.Nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Holdings) != 0 {
		t.Fatalf("got %d holdings, want 0", len(m.Holdings))
	}
	if !m.Totals.PnlPctLocal.IsZero() {
		t.Fatalf("pct = %s, want 0", m.Totals.PnlPctLocal)
	}
}
