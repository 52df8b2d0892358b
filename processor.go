package rebalance

import "strings"

// Processor orchestrates validation, the optional rebalance simulation,
// price resolution and object construction. It holds no state between runs;
// every Process call builds a fresh Portfolio.
type Processor struct {
	prices PriceSource
}

// NewProcessor creates a processor backed by the given price source.
func NewProcessor(prices PriceSource) *Processor {
	return &Processor{prices: prices}
}

// Process computes the portfolio described by cfg. When reb is not nil the
// accounts are first adjusted by the rebalance simulation, so the returned
// portfolio shows the state after the proposed trades. When overrides is not
// nil it is used as the price table and the price source is never queried.
//
// Prices are resolved at most once, for the deduplicated union of all
// symbols referenced by the base accounts and the rebalance instructions.
func (p *Processor) Process(cfg *Config, reb *RebalanceConfig, overrides map[string]Money) (*Portfolio, error) {
	classes, classesByName, err := buildAssetClasses(cfg.AssetClasses)
	if err != nil {
		return nil, err
	}

	shareIDs := referencedShareIDs(cfg, reb)
	if missing := missingShareIDs(cfg, shareIDs); len(missing) > 0 {
		return nil, badConfigf("missing data for shares: %s", strings.Join(missing, ", "))
	}

	prices := overrides
	if prices == nil {
		symbols := make([]string, 0, len(shareIDs))
		for _, id := range shareIDs {
			share, _ := cfg.Share(id)
			symbols = append(symbols, share.Symbol)
		}
		prices, err = p.prices.Resolve(symbols)
		if err != nil {
			return nil, &UpstreamPriceError{Err: err}
		}
	}

	accounts := cfg.Accounts
	if reb != nil {
		accounts, err = RebalanceAccounts(cfg, reb, prices)
		if err != nil {
			return nil, err
		}
	}

	built := make([]*Account, 0, len(accounts))
	for _, account := range accounts {
		holdings := make([]*Holding, 0, len(account.Holdings))
		for _, line := range account.Holdings {
			share, _ := cfg.Share(line.ShareID)
			group, err := buildAssetClassGroup(share, classesByName)
			if err != nil {
				return nil, err
			}
			price, err := priceOf(prices, share.Symbol)
			if err != nil {
				return nil, err
			}
			holding, err := NewHolding(group, share.Name, share.Symbol, line.Quantity, price)
			if err != nil {
				return nil, err
			}
			holdings = append(holdings, holding)
		}
		a, err := NewAccount(account.Name, account.Cash, cfg.TradingFee, holdings)
		if err != nil {
			return nil, err
		}
		built = append(built, a)
	}

	return NewPortfolio(classes, built), nil
}

// RebalanceAccounts applies the rebalance instructions to the configured
// accounts and returns the adjusted account structure. The input
// configuration is never modified; every returned account is a fresh copy.
//
// For each instructed account, contributions are added to cash, then sells
// are settled, then buys, so sale proceeds fund purchases within the same
// account. An instruction naming an account that does not exist is a no-op.
// A flat trading fee is charged once per sell line and once per buy line.
func RebalanceAccounts(cfg *Config, reb *RebalanceConfig, prices map[string]Money) ([]AccountConfig, error) {
	accounts := copyAccounts(cfg.Accounts)

	for _, instruction := range reb.Accounts {
		account := findAccount(accounts, instruction.Name)
		if account == nil {
			continue
		}

		cashBalance := account.Cash.Add(instruction.Contribution)

		var cost, fees, sellValue Money

		for _, id := range instruction.SellHoldings {
			held := findHoldingLine(account.Holdings, id)
			if held == nil {
				return nil, badConfigf("%s does not exist in account %s", id, instruction.Name)
			}
			price, err := sharePrice(cfg, prices, id)
			if err != nil {
				return nil, err
			}
			// the whole position is liquidated, partial sells are not supported
			sellValue = sellValue.Add(price.MulQuantity(held.Quantity))
			fees = fees.Add(cfg.TradingFee)
			account.Holdings = removeHoldingLine(account.Holdings, id)
		}
		cashBalance = cashBalance.Add(sellValue)

		for _, buy := range instruction.BuyHoldings {
			price, err := sharePrice(cfg, prices, buy.ShareID)
			if err != nil {
				return nil, err
			}
			cost = cost.Add(price.MulQuantity(buy.Quantity))
			fees = fees.Add(cfg.TradingFee)
		}

		totalCost := cost.Add(fees)
		if totalCost.GreaterThan(cashBalance) {
			return nil, &NotEnoughFundsError{
				Account:   instruction.Name,
				Cost:      totalCost,
				Available: cashBalance,
			}
		}

		account.Cash = cashBalance.Sub(totalCost)

		for _, buy := range instruction.BuyHoldings {
			if held := findHoldingLine(account.Holdings, buy.ShareID); held != nil {
				held.Quantity += buy.Quantity
			} else {
				account.Holdings = append(account.Holdings, buy)
			}
		}
	}

	return accounts, nil
}

func buildAssetClasses(configs []AssetClassConfig) ([]*AssetClass, map[string]*AssetClass, error) {
	classes := make([]*AssetClass, 0, len(configs))
	byName := make(map[string]*AssetClass, len(configs))

	var total Percent
	for _, c := range configs {
		class, err := NewAssetClass(c.Name, c.TargetAllocation)
		if err != nil {
			return nil, nil, err
		}
		if _, ok := byName[c.Name]; ok {
			return nil, nil, invalidConfigf("duplicate asset class %q", c.Name)
		}
		classes = append(classes, class)
		byName[c.Name] = class
		total = total.Add(class.TargetAllocation())
	}
	if total.GreaterThanOne() {
		return nil, nil, invalidConfigf("total allocation is greater than 100%%")
	}
	return classes, byName, nil
}

func buildAssetClassGroup(share ShareConfig, byName map[string]*AssetClass) (*AssetClassGroup, error) {
	splits := make([]AssetClassSplit, 0, len(share.AssetClasses))
	for _, cf := range share.AssetClasses {
		class, ok := byName[cf.Name]
		if !ok {
			return nil, badConfigf("share %q references unknown asset class %q", share.ID, cf.Name)
		}
		splits = append(splits, AssetClassSplit{Class: class, Fraction: cf.Fraction})
	}
	return NewAssetClassGroup(splits)
}

// referencedShareIDs returns the deduplicated ids referenced by the base
// accounts and the rebalance instructions, in first-seen order.
func referencedShareIDs(cfg *Config, reb *RebalanceConfig) []string {
	var ids []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, account := range cfg.Accounts {
		for _, line := range account.Holdings {
			add(line.ShareID)
		}
	}
	if reb != nil {
		for _, instruction := range reb.Accounts {
			for _, buy := range instruction.BuyHoldings {
				add(buy.ShareID)
			}
			for _, id := range instruction.SellHoldings {
				add(id)
			}
		}
	}
	return ids
}

func missingShareIDs(cfg *Config, ids []string) []string {
	var missing []string
	for _, id := range ids {
		if _, ok := cfg.Share(id); !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func sharePrice(cfg *Config, prices map[string]Money, id string) (Money, error) {
	share, ok := cfg.Share(id)
	if !ok {
		return Money{}, badConfigf("missing data for shares: %s", id)
	}
	return priceOf(prices, share.Symbol)
}

func priceOf(prices map[string]Money, symbol string) (Money, error) {
	price, ok := prices[symbol]
	if !ok {
		return Money{}, &UpstreamPriceError{Err: errNoPrice(symbol)}
	}
	return price, nil
}

func copyAccounts(accounts []AccountConfig) []AccountConfig {
	out := make([]AccountConfig, len(accounts))
	copy(out, accounts)
	for i := range out {
		holdings := make([]HoldingConfig, len(out[i].Holdings))
		copy(holdings, out[i].Holdings)
		out[i].Holdings = holdings
	}
	return out
}

func findAccount(accounts []AccountConfig, name string) *AccountConfig {
	for i := range accounts {
		if accounts[i].Name == name {
			return &accounts[i]
		}
	}
	return nil
}

func findHoldingLine(holdings []HoldingConfig, id string) *HoldingConfig {
	for i := range holdings {
		if holdings[i].ShareID == id {
			return &holdings[i]
		}
	}
	return nil
}

func removeHoldingLine(holdings []HoldingConfig, id string) []HoldingConfig {
	out := holdings[:0]
	for _, line := range holdings {
		if line.ShareID != id {
			out = append(out, line)
		}
	}
	return out
}
