package rebalance

// Account is a named cash balance plus a set of holdings keyed by symbol.
// Adding a holding whose symbol is already present merges the position by
// summing quantities. The account keeps the insertion order of first-seen
// symbols so reports are stable. Read-only once constructed.
type Account struct {
	name     string
	cash     Money
	fee      Money
	order    []string
	holdings map[string]*Holding

	// holdingsValue accumulates each added holding's value at the time it
	// was added, not the recomputed value of the merged map. The two only
	// differ if the same symbol is added twice at different prices, which
	// a single construction pass never does.
	holdingsValue Money
}

// NewAccount creates an account from its cash balance, flat trading fee and
// resolved holdings.
func NewAccount(name string, cash, fee Money, holdings []*Holding) (*Account, error) {
	if cash.IsNegative() {
		return nil, invalidConfigf("account %q: cash must not be negative", name)
	}
	if fee.IsNegative() {
		return nil, invalidConfigf("account %q: trading fee must not be negative", name)
	}
	a := &Account{
		name:     name,
		cash:     cash,
		fee:      fee,
		holdings: make(map[string]*Holding, len(holdings)),
	}
	for _, h := range holdings {
		a.addHolding(h)
	}
	return a, nil
}

func (a *Account) addHolding(h *Holding) {
	if existing, ok := a.holdings[h.Symbol()]; ok {
		a.holdings[h.Symbol()] = existing.combine(h)
	} else {
		a.holdings[h.Symbol()] = h
		a.order = append(a.order, h.Symbol())
	}
	a.holdingsValue = a.holdingsValue.Add(h.Value())
}

func (a *Account) Name() string         { return a.name }
func (a *Account) CashValue() Money     { return a.cash }
func (a *Account) TradingFee() Money    { return a.fee }
func (a *Account) HoldingsValue() Money { return a.holdingsValue }

// AccountValue is the cash balance plus the value of all holdings.
func (a *Account) AccountValue() Money { return a.cash.Add(a.holdingsValue) }

// Holdings returns the account's holdings in insertion order.
func (a *Account) Holdings() []*Holding {
	out := make([]*Holding, 0, len(a.order))
	for _, symbol := range a.order {
		out = append(out, a.holdings[symbol])
	}
	return out
}

// Holding returns the holding for a symbol, or nil if the symbol is not held.
func (a *Account) Holding(symbol string) *Holding { return a.holdings[symbol] }
