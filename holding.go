package rebalance

// Holding is a quantity of one ticker symbol valued at a resolved price,
// optionally split across several asset classes. Holdings are immutable;
// combining two positions produces a new Holding.
type Holding struct {
	group    *AssetClassGroup
	name     string
	symbol   string
	quantity int64
	price    Money
	value    Money
}

// NewHolding creates a holding of quantity shares at the given price.
func NewHolding(group *AssetClassGroup, name, symbol string, quantity int64, price Money) (*Holding, error) {
	if quantity < 0 {
		return nil, invalidConfigf("holding %q: quantity must not be negative", symbol)
	}
	if price.IsNegative() {
		return nil, invalidConfigf("holding %q: price must not be negative", symbol)
	}
	return &Holding{
		group:    group,
		name:     name,
		symbol:   symbol,
		quantity: quantity,
		price:    price,
		value:    price.MulQuantity(quantity),
	}, nil
}

func (h *Holding) AssetClassGroup() *AssetClassGroup { return h.group }
func (h *Holding) Name() string                      { return h.name }
func (h *Holding) Symbol() string                    { return h.symbol }
func (h *Holding) Quantity() int64                   { return h.quantity }
func (h *Holding) Price() Money                      { return h.price }
func (h *Holding) Value() Money                      { return h.value }

// AssetClassValue returns the part of the holding's value apportioned to the
// given class, zero if the holding has no exposure to it.
func (h *Holding) AssetClassValue(class *AssetClass) Money {
	return h.group.Percentage(class).Of(h.value)
}

// combine merges another position of the same symbol into a new Holding with
// the summed quantity. Price and asset class group are kept from the
// receiver; the value is recomputed from the summed quantity.
func (h *Holding) combine(other *Holding) *Holding {
	quantity := h.quantity + other.quantity
	return &Holding{
		group:    h.group,
		name:     h.name,
		symbol:   h.symbol,
		quantity: quantity,
		price:    h.price,
		value:    h.price.MulQuantity(quantity),
	}
}
