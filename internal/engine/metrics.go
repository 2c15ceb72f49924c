package engine

import (
	"context"
	"sort"

	"wealthtracker/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type dataStore interface {
	GetTransactions(ctx context.Context, portfolioId uuid.UUID) ([]types.Transaction, error)
	GetTransactionsByBroker(ctx context.Context, portfolioId, brokerId uuid.UUID) ([]types.Transaction, error)
	GetExchangeRates(ctx context.Context) ([]types.ExchangeRate, error)
	GetAssets(ctx context.Context) ([]types.Asset, error)
}

// BrokerSummary is one broker's slice of the portfolio totals.
type BrokerSummary struct {
	BrokerId uuid.UUID
	Summary
}

// Metrics is the full valuation output for one portfolio, or for one broker
// within it. Every figure is carried in both currencies, so switching the
// display currency is a read, not a recomputation.
type Metrics struct {
	PortfolioId uuid.UUID
	BrokerId    *uuid.UUID
	Holdings    []types.Holding
	Brokers     []BrokerSummary
	Totals      Summary
}

// MarketValue returns the summary's market value in the requested currency.
func (s Summary) MarketValue(c types.Currency) decimal.Decimal {
	if c == types.CurrencyForeign {
		return s.MarketValueForeign
	}
	return s.MarketValueLocal
}

// CostBasis returns the summary's cost basis in the requested currency.
func (s Summary) CostBasis(c types.Currency) decimal.Decimal {
	if c == types.CurrencyForeign {
		return s.CostBasisForeign
	}
	return s.CostBasisLocal
}

// Pnl returns the summary's unrealized P&L in the requested currency.
func (s Summary) Pnl(c types.Currency) decimal.Decimal {
	if c == types.CurrencyForeign {
		return s.PnlForeign
	}
	return s.PnlLocal
}

// PnlPct returns the summary's unrealized P&L percentage as booked in the
// requested currency.
func (s Summary) PnlPct(c types.Currency) decimal.Decimal {
	if c == types.CurrencyForeign {
		return s.PnlPctForeign
	}
	return s.PnlPctLocal
}

// Compute is the whole pipeline as a pure function: match the transactions
// into lots, value the surviving lots at the latest quotes, and roll the
// result up per broker and for the portfolio. Safe to re-run from scratch on
// every data change.
func Compute(txs []types.Transaction, rates []types.ExchangeRate, assets []types.Asset, portfolioId uuid.UUID, brokerId *uuid.UUID) (*Metrics, error) {
	if brokerId != nil {
		var scoped []types.Transaction
		for _, tx := range txs {
			if tx.BrokerId == *brokerId {
				scoped = append(scoped, tx)
			}
		}
		txs = scoped
	}

	assetRefs := make(map[uuid.UUID]types.Asset, len(assets))
	for _, a := range assets {
		assetRefs[a.Id] = a
	}

	lots, err := MatchLots(txs, NewRateTable(rates), assetRefs)
	if err != nil {
		return nil, err
	}

	holdings := Aggregate(lots, assetRefs)
	return &Metrics{
		PortfolioId: portfolioId,
		BrokerId:    brokerId,
		Holdings:    holdings,
		Brokers:     brokerSummaries(lots, assetRefs),
		Totals:      Summarize(holdings),
	}, nil
}

// brokerSummaries rolls the matched lots up per broker. Lot queues never
// cross brokers, so grouping the matched lots is exact here.
func brokerSummaries(lots []types.Lot, assets map[uuid.UUID]types.Asset) []BrokerSummary {
	byBroker := make(map[uuid.UUID][]types.Lot)
	for _, lot := range lots {
		byBroker[lot.BrokerId] = append(byBroker[lot.BrokerId], lot)
	}

	summaries := make([]BrokerSummary, 0, len(byBroker))
	for brokerId, brokerLots := range byBroker {
		summaries = append(summaries, BrokerSummary{
			BrokerId: brokerId,
			Summary:  Summarize(Aggregate(brokerLots, assets)),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].BrokerId.String() < summaries[j].BrokerId.String()
	})
	return summaries
}

// Engine wires the valuation pipeline to a data store. Each computation
// fetches a fresh snapshot; nothing is cached between calls.
type Engine struct {
	db dataStore
}

func NewEngine(db dataStore) *Engine {
	return &Engine{db: db}
}

// PortfolioMetrics computes the full portfolio view.
func (e *Engine) PortfolioMetrics(ctx context.Context, portfolioId uuid.UUID) (*Metrics, error) {
	txs, err := e.db.GetTransactions(ctx, portfolioId)
	if err != nil {
		return nil, err
	}
	return e.compute(ctx, txs, portfolioId, nil)
}

// BrokerMetrics computes the view for a single broker. FIFO consumption is
// partition-sensitive, so this re-runs the matcher over the broker's own
// transactions instead of filtering an already aggregated result.
func (e *Engine) BrokerMetrics(ctx context.Context, portfolioId, brokerId uuid.UUID) (*Metrics, error) {
	txs, err := e.db.GetTransactionsByBroker(ctx, portfolioId, brokerId)
	if err != nil {
		return nil, err
	}
	return e.compute(ctx, txs, portfolioId, &brokerId)
}

func (e *Engine) compute(ctx context.Context, txs []types.Transaction, portfolioId uuid.UUID, brokerId *uuid.UUID) (*Metrics, error) {
	rates, err := e.db.GetExchangeRates(ctx)
	if err != nil {
		return nil, err
	}
	assets, err := e.db.GetAssets(ctx)
	if err != nil {
		return nil, err
	}
	return Compute(txs, rates, assets, portfolioId, brokerId)
}
