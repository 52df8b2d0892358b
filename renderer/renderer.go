// Package renderer renders a computed portfolio as markdown tables. It only
// reads the portfolio's public accessors and performs no computation beyond
// display arithmetic (allocation ratios for the report).
package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gfreeau/rebalance"
)

// TotalsMarkdown renders the cash, holdings and total value of the portfolio.
func TotalsMarkdown(p *rebalance.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Totals\n\n")
	fmt.Fprintln(&b, "| Investment | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Cash | %s |\n", p.CashValue())
	fmt.Fprintf(&b, "| Holdings | %s |\n", p.HoldingsValue())
	fmt.Fprintf(&b, "| Total | %s |\n", p.TotalValue())
	return b.String()
}

// AssetClassesMarkdown renders each asset class with its target allocation,
// its current allocation of the holdings value, and its current value.
func AssetClassesMarkdown(p *rebalance.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Asset Classes\n\n")
	fmt.Fprintln(&b, "| Asset Class | Target Allocation | Current Allocation | Current Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")

	for _, class := range p.AssetClasses() {
		value := p.AssetClassValue(class)
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			class.Name(),
			class.TargetAllocation(),
			allocationOf(value, p.HoldingsValue()),
			value,
		)
	}
	return b.String()
}

// HoldingsMarkdown renders every holding of every account, grouped by the
// asset class catalog order like the original report.
func HoldingsMarkdown(p *rebalance.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")
	fmt.Fprintln(&b, "| Holding | Asset Class | Quantity | Value | Current Allocation |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")

	holdings := p.AllHoldings()

	// stable sort by the catalog position of the holding's first asset class
	sorted := make([]*rebalance.Holding, len(holdings))
	copy(sorted, holdings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return classRank(p, sorted[i]) < classRank(p, sorted[j])
	})

	for _, h := range sorted {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s |\n",
			h.Name(),
			classCell(h),
			h.Quantity(),
			h.Value(),
			allocationOf(h.Value(), p.HoldingsValue()),
		)
	}
	return b.String()
}

// AccountsMarkdown renders per-account balances, useful to inspect the
// result of a rebalance simulation.
func AccountsMarkdown(p *rebalance.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Accounts\n\n")
	fmt.Fprintln(&b, "| Account | Cash | Holdings | Total |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, a := range p.Accounts() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			a.Name(), a.CashValue(), a.HoldingsValue(), a.AccountValue())
	}
	return b.String()
}

// PricesMarkdown renders a resolved symbol to price table in symbol order.
func PricesMarkdown(symbols []string, prices map[string]rebalance.Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Prices\n\n")
	fmt.Fprintln(&b, "| Symbol | Last Trade Price |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, symbol := range symbols {
		fmt.Fprintf(&b, "| %s | %s |\n", symbol, prices[symbol])
	}
	return b.String()
}

// classRank returns the catalog position of the first class the holding has
// exposure to. Holdings with no classed exposure sort last.
func classRank(p *rebalance.Portfolio, h *rebalance.Holding) int {
	classes := p.AssetClasses()
	for i, class := range classes {
		if h.AssetClassGroup().Has(class) {
			return i
		}
	}
	return len(classes)
}

// classCell formats the asset class column: the bare class name for a fully
// classed holding, otherwise each class with its split percentage.
func classCell(h *rebalance.Holding) string {
	splits := h.AssetClassGroup().Splits()
	if len(splits) == 1 && splits[0].Fraction.Equal(rebalance.P(1)) {
		return splits[0].Class.Name()
	}
	parts := make([]string, 0, len(splits))
	for _, s := range splits {
		parts = append(parts, fmt.Sprintf("%s %s", s.Class.Name(), s.Fraction))
	}
	return strings.Join(parts, ", ")
}

// allocationOf formats part as a percentage of whole, "-" when the whole is
// zero.
func allocationOf(part, whole rebalance.Money) string {
	if whole.IsZero() {
		return "-"
	}
	ratio := part.Decimal().Div(whole.Decimal())
	return rebalance.PercentFromDecimal(ratio).String()
}
