package rebalance

// Portfolio aggregates accounts and asset classes with rolled-up totals.
// It is built once per Process call from fully resolved objects and never
// mutated afterwards.
type Portfolio struct {
	classes  []*AssetClass
	accounts []*Account

	cashValue     Money
	holdingsValue Money
	totalValue    Money
}

// NewPortfolio creates a portfolio from asset classes and accounts, both in
// configuration order.
func NewPortfolio(classes []*AssetClass, accounts []*Account) *Portfolio {
	p := &Portfolio{
		classes:  make([]*AssetClass, len(classes)),
		accounts: make([]*Account, len(accounts)),
	}
	copy(p.classes, classes)
	copy(p.accounts, accounts)
	for _, a := range accounts {
		p.cashValue = p.cashValue.Add(a.CashValue())
		p.holdingsValue = p.holdingsValue.Add(a.HoldingsValue())
		p.totalValue = p.totalValue.Add(a.AccountValue())
	}
	return p
}

// AssetClasses returns the asset classes in configuration order.
func (p *Portfolio) AssetClasses() []*AssetClass {
	out := make([]*AssetClass, len(p.classes))
	copy(out, p.classes)
	return out
}

// Accounts returns the accounts in configuration order.
func (p *Portfolio) Accounts() []*Account {
	out := make([]*Account, len(p.accounts))
	copy(out, p.accounts)
	return out
}

func (p *Portfolio) CashValue() Money     { return p.cashValue }
func (p *Portfolio) HoldingsValue() Money { return p.holdingsValue }
func (p *Portfolio) TotalValue() Money    { return p.totalValue }

// AllHoldings returns every holding of every account, in account order then
// holding insertion order.
func (p *Portfolio) AllHoldings() []*Holding {
	var out []*Holding
	for _, a := range p.accounts {
		out = append(out, a.Holdings()...)
	}
	return out
}

// AssetClassValue returns the current value held in the given class, summed
// across all holdings that have exposure to it.
func (p *Portfolio) AssetClassValue(class *AssetClass) Money {
	var total Money
	for _, h := range p.AllHoldings() {
		total = total.Add(h.AssetClassValue(class))
	}
	return total
}
