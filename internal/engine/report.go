package engine

import (
	"fmt"
	"io"
	"os"

	"wealthtracker/types"
)

// PrintReport renders the metrics to stdout in the requested display
// currency.
func PrintReport(m *Metrics, currency types.Currency) {
	writeReport(os.Stdout, m, currency)
}

func writeReport(w io.Writer, m *Metrics, currency types.Currency) {
	fmt.Fprintf(w, "===== Portfolio Valuation (%s) =====\n", currency)
	fmt.Fprintf(w, "Portfolio:             %s\n", m.PortfolioId)
	if m.BrokerId != nil {
		fmt.Fprintf(w, "Broker:                %s\n", *m.BrokerId)
	}

	fmt.Fprintln(w, "\n-- Holdings --")
	for _, h := range m.Holdings {
		s := holdingSummary(h)
		fmt.Fprintf(w, "%-10s qty %-12s cost %-16s value %-16s pnl %s (%s%%)\n",
			h.Symbol,
			h.Quantity,
			s.CostBasis(currency).StringFixed(2),
			s.MarketValue(currency).StringFixed(2),
			s.Pnl(currency).StringFixed(2),
			s.PnlPct(currency).StringFixed(2),
		)
	}

	if len(m.Brokers) > 1 {
		fmt.Fprintln(w, "\n-- Brokers --")
		for _, b := range m.Brokers {
			fmt.Fprintf(w, "%s  value %-16s pnl %s (%s%%)\n",
				b.BrokerId,
				b.MarketValue(currency).StringFixed(2),
				b.Pnl(currency).StringFixed(2),
				b.PnlPct(currency).StringFixed(2),
			)
		}
	}

	fmt.Fprintln(w, "\n-- Totals --")
	fmt.Fprintf(w, "Cost Basis:            %s\n", m.Totals.CostBasis(currency).StringFixed(2))
	fmt.Fprintf(w, "Market Value:          %s\n", m.Totals.MarketValue(currency).StringFixed(2))
	fmt.Fprintf(w, "Unrealized P&L:        %s\n", m.Totals.Pnl(currency).StringFixed(2))
	fmt.Fprintf(w, "Unrealized P&L %%:      %s\n", m.Totals.PnlPct(currency).StringFixed(2))
	fmt.Fprintln(w, "====================================")
}

func holdingSummary(h types.Holding) Summary {
	return Summary{
		CostBasisLocal:     h.CostBasisLocal,
		CostBasisForeign:   h.CostBasisForeign,
		MarketValueLocal:   h.MarketValueLocal,
		MarketValueForeign: h.MarketValueForeign,
		PnlLocal:           h.PnlLocal,
		PnlForeign:         h.PnlForeign,
		PnlPctLocal:        h.PnlPctLocal,
		PnlPctForeign:      h.PnlPctForeign,
	}
}
