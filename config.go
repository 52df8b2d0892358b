package rebalance

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// This file decodes the portfolio and rebalance configuration files.
//
// The engine promises that asset classes, accounts and holdings keep their
// configuration order all the way to the rendered report. encoding/json
// decodes objects into unordered maps, so the decoder below walks the token
// stream instead and keeps every object's key order in slices.

// Config is the parsed portfolio configuration: the asset class catalog, the
// share catalog, the flat trading fee and the accounts.
type Config struct {
	TradingFee   Money
	AssetClasses []AssetClassConfig
	Shares       []ShareConfig
	Accounts     []AccountConfig
}

// AssetClassConfig is one entry of the asset class catalog.
type AssetClassConfig struct {
	Name             string
	TargetAllocation Percent
}

// ShareConfig is one entry of the share catalog. AssetClasses is always the
// general split form; the single-class shorthand of the configuration file
// is expanded at decode time.
type ShareConfig struct {
	ID           string
	Name         string
	Symbol       string
	AssetClasses []ClassFraction
}

// ClassFraction assigns a fraction of a share to one asset class by name.
type ClassFraction struct {
	Name     string
	Fraction Percent
}

// AccountConfig is one account of the portfolio configuration.
type AccountConfig struct {
	Name     string
	Cash     Money
	Holdings []HoldingConfig
}

// HoldingConfig is one holding line: a share catalog id and a quantity.
type HoldingConfig struct {
	ShareID  string
	Quantity int64
}

// Share looks up a share catalog entry by id.
func (c *Config) Share(id string) (ShareConfig, bool) {
	for _, s := range c.Shares {
		if s.ID == id {
			return s, true
		}
	}
	return ShareConfig{}, false
}

// RebalanceConfig is the parsed set of rebalance instructions, one entry per
// account to adjust.
type RebalanceConfig struct {
	Accounts []RebalanceAccountConfig
}

// RebalanceAccountConfig is the proposed transaction for one account:
// an optional cash contribution, positions to liquidate and buy lines.
type RebalanceAccountConfig struct {
	Name         string
	Contribution Money
	BuyHoldings  []HoldingConfig
	SellHoldings []string
}

// DecodeConfig reads a portfolio configuration from JSON, preserving the
// order of asset classes, shares, accounts and holdings.
func DecodeConfig(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	cfg := new(Config)
	err := decodeObject(dec, "config", func(key string) error {
		switch key {
		case "tradingFee":
			fee, err := decodeMoney(dec, "tradingFee")
			if err != nil {
				return err
			}
			if fee.IsNegative() {
				return invalidConfigf("tradingFee must not be negative")
			}
			cfg.TradingFee = fee
			return nil
		case "assetClasses":
			return decodeObject(dec, "assetClasses", func(name string) error {
				target, err := decodePercent(dec, "asset class "+name)
				if err != nil {
					return err
				}
				cfg.AssetClasses = append(cfg.AssetClasses, AssetClassConfig{Name: name, TargetAllocation: target})
				return nil
			})
		case "shares":
			return decodeObject(dec, "shares", func(id string) error {
				share, err := decodeShare(dec, id)
				if err != nil {
					return err
				}
				cfg.Shares = append(cfg.Shares, share)
				return nil
			})
		case "accounts":
			return decodeObject(dec, "accounts", func(name string) error {
				account, err := decodeAccount(dec, name)
				if err != nil {
					return err
				}
				cfg.Accounts = append(cfg.Accounts, account)
				return nil
			})
		default:
			return skipValue(dec)
		}
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodeRebalanceConfig reads rebalance instructions from JSON, preserving
// account and buy line order.
func DecodeRebalanceConfig(r io.Reader) (*RebalanceConfig, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	cfg := new(RebalanceConfig)
	err := decodeObject(dec, "rebalance config", func(key string) error {
		if key != "accounts" {
			return skipValue(dec)
		}
		return decodeObject(dec, "accounts", func(name string) error {
			account := RebalanceAccountConfig{Name: name}
			err := decodeObject(dec, "account "+name, func(field string) error {
				switch field {
				case "contribution":
					contribution, err := decodeMoney(dec, "contribution")
					if err != nil {
						return err
					}
					if contribution.IsNegative() {
						return invalidConfigf("account %q: contribution must not be negative", name)
					}
					account.Contribution = contribution
					return nil
				case "buyHoldings":
					return decodeObject(dec, "buyHoldings", func(id string) error {
						quantity, err := decodeQuantity(dec, "buy of "+id)
						if err != nil {
							return err
						}
						account.BuyHoldings = append(account.BuyHoldings, HoldingConfig{ShareID: id, Quantity: quantity})
						return nil
					})
				case "sellHoldings":
					return decodeStringArray(dec, "sellHoldings", &account.SellHoldings)
				default:
					return skipValue(dec)
				}
			})
			if err != nil {
				return err
			}
			cfg.Accounts = append(cfg.Accounts, account)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodePriceOverrides reads a symbol to price mapping from JSON, typically
// {"prices": {"VCN.TO": 31.50}}. A bare object of prices is also accepted.
func DecodePriceOverrides(r io.Reader) (map[string]Money, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	prices := make(map[string]Money)
	readPrices := func(dec *json.Decoder) error {
		return decodeObject(dec, "prices", func(symbol string) error {
			price, err := decodeMoney(dec, "price of "+symbol)
			if err != nil {
				return err
			}
			if price.IsNegative() {
				return invalidConfigf("price of %q must not be negative", symbol)
			}
			prices[symbol] = price
			return nil
		})
	}

	err := decodeObject(dec, "price overrides", func(key string) error {
		if key != "prices" {
			// a bare {"SYM": price} object: the key is the symbol itself
			price, err := decodeMoney(dec, "price of "+key)
			if err != nil {
				return err
			}
			prices[key] = price
			return nil
		}
		return readPrices(dec)
	})
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func decodeShare(dec *json.Decoder, id string) (ShareConfig, error) {
	share := ShareConfig{ID: id}
	err := decodeObject(dec, "share "+id, func(field string) error {
		switch field {
		case "name":
			return decodeString(dec, "share "+id+" name", &share.Name)
		case "symbol":
			return decodeString(dec, "share "+id+" symbol", &share.Symbol)
		case "assetClass":
			classes, err := decodeAssetClassField(dec, id)
			if err != nil {
				return err
			}
			share.AssetClasses = classes
			return nil
		default:
			return skipValue(dec)
		}
	})
	if err != nil {
		return share, err
	}
	if share.Name == "" || share.Symbol == "" {
		return share, invalidConfigf("share %q: name and symbol are required", id)
	}
	if len(share.AssetClasses) == 0 {
		return share, invalidConfigf("share %q: assetClass is required", id)
	}
	return share, nil
}

// decodeAssetClassField accepts both forms of the share assetClass field:
// a bare class name (sugar for 100% in that class) or a name to fraction
// object. It always returns the general split form.
func decodeAssetClassField(dec *json.Decoder, id string) ([]ClassFraction, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, invalidConfigf("share %q: bad assetClass: %v", id, err)
	}
	switch v := tok.(type) {
	case string:
		return []ClassFraction{{Name: v, Fraction: P(1)}}, nil
	case json.Delim:
		if v != '{' {
			return nil, invalidConfigf("share %q: assetClass must be a class name or an object", id)
		}
		var classes []ClassFraction
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, invalidConfigf("share %q: bad assetClass: %v", id, err)
			}
			name, ok := keyTok.(string)
			if !ok {
				return nil, invalidConfigf("share %q: bad assetClass key", id)
			}
			fraction, err := decodePercent(dec, "share "+id+" class "+name)
			if err != nil {
				return nil, err
			}
			classes = append(classes, ClassFraction{Name: name, Fraction: fraction})
		}
		if _, err := dec.Token(); err != nil { // closing brace
			return nil, invalidConfigf("share %q: bad assetClass: %v", id, err)
		}
		return classes, nil
	default:
		return nil, invalidConfigf("share %q: assetClass must be a class name or an object", id)
	}
}

func decodeAccount(dec *json.Decoder, name string) (AccountConfig, error) {
	account := AccountConfig{Name: name}
	err := decodeObject(dec, "account "+name, func(field string) error {
		switch field {
		case "cash":
			cash, err := decodeMoney(dec, "account "+name+" cash")
			if err != nil {
				return err
			}
			if cash.IsNegative() {
				return invalidConfigf("account %q: cash must not be negative", name)
			}
			account.Cash = cash
			return nil
		case "holdings":
			return decodeObject(dec, "holdings", func(id string) error {
				quantity, err := decodeQuantity(dec, "holding "+id)
				if err != nil {
					return err
				}
				account.Holdings = append(account.Holdings, HoldingConfig{ShareID: id, Quantity: quantity})
				return nil
			})
		default:
			return skipValue(dec)
		}
	})
	return account, err
}

// decodeObject expects an object and calls field for every key. The field
// callback must consume the key's value from the decoder.
func decodeObject(dec *json.Decoder, what string, field func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return invalidConfigf("%s: %v", what, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return invalidConfigf("%s: expected an object", what)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return invalidConfigf("%s: %v", what, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return invalidConfigf("%s: bad object key", what)
		}
		if err := field(key); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return invalidConfigf("%s: %v", what, err)
	}
	return nil
}

func decodeStringArray(dec *json.Decoder, what string, out *[]string) error {
	tok, err := dec.Token()
	if err != nil {
		return invalidConfigf("%s: %v", what, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return invalidConfigf("%s: expected an array", what)
	}
	for dec.More() {
		itemTok, err := dec.Token()
		if err != nil {
			return invalidConfigf("%s: %v", what, err)
		}
		item, ok := itemTok.(string)
		if !ok {
			return invalidConfigf("%s: expected a string entry", what)
		}
		*out = append(*out, item)
	}
	if _, err := dec.Token(); err != nil { // closing bracket
		return invalidConfigf("%s: %v", what, err)
	}
	return nil
}

func decodeString(dec *json.Decoder, what string, out *string) error {
	tok, err := dec.Token()
	if err != nil {
		return invalidConfigf("%s: %v", what, err)
	}
	s, ok := tok.(string)
	if !ok {
		return invalidConfigf("%s: expected a string", what)
	}
	*out = s
	return nil
}

func decodeNumber(dec *json.Decoder, what string) (decimal.Decimal, error) {
	tok, err := dec.Token()
	if err != nil {
		return decimal.Decimal{}, invalidConfigf("%s: %v", what, err)
	}
	num, ok := tok.(json.Number)
	if !ok {
		return decimal.Decimal{}, invalidConfigf("%s: expected a number", what)
	}
	value, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Decimal{}, invalidConfigf("%s: bad number %q", what, num.String())
	}
	return value, nil
}

func decodeMoney(dec *json.Decoder, what string) (Money, error) {
	value, err := decodeNumber(dec, what)
	if err != nil {
		return Money{}, err
	}
	return MoneyFromDecimal(value), nil
}

func decodePercent(dec *json.Decoder, what string) (Percent, error) {
	value, err := decodeNumber(dec, what)
	if err != nil {
		return Percent{}, err
	}
	p := PercentFromDecimal(value)
	if !p.InRange() {
		return Percent{}, invalidConfigf("%s: fraction must be between 0 and 1", what)
	}
	return p, nil
}

func decodeQuantity(dec *json.Decoder, what string) (int64, error) {
	tok, err := dec.Token()
	if err != nil {
		return 0, invalidConfigf("%s: %v", what, err)
	}
	num, ok := tok.(json.Number)
	if !ok {
		return 0, invalidConfigf("%s: expected an integer quantity", what)
	}
	quantity, err := num.Int64()
	if err != nil {
		return 0, invalidConfigf("%s: quantity must be an integer", what)
	}
	if quantity < 0 {
		return 0, invalidConfigf("%s: quantity must not be negative", what)
	}
	return quantity, nil
}

// skipValue consumes and discards one value, whatever its shape.
func skipValue(dec *json.Decoder) error {
	var discard any
	if err := dec.Decode(&discard); err != nil {
		return fmt.Errorf("skipping value: %w", err)
	}
	return nil
}
