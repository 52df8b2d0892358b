package rebalance

import (
	"errors"
	"testing"
)

func TestNewHolding(t *testing.T) {
	equities := mustAssetClass(t, "Equities", 0.6)
	group := singleClass(t, equities)

	h := mustHolding(t, group, "Vanguard All Cap", "VCN.TO", 10, 31.50)

	if !h.Value().Equal(M(315)) {
		t.Errorf("Value() = %v, want $315.00", h.Value())
	}
	if h.Quantity() != 10 {
		t.Errorf("Quantity() = %d, want 10", h.Quantity())
	}
	if !h.Price().Equal(M(31.50)) {
		t.Errorf("Price() = %v, want $31.50", h.Price())
	}
}

func TestNewHolding_rejectsNegatives(t *testing.T) {
	equities := mustAssetClass(t, "Equities", 0.6)
	group := singleClass(t, equities)

	var invalid *InvalidConfigurationError

	_, err := NewHolding(group, "x", "X", -1, M(10))
	if !errors.As(err, &invalid) {
		t.Errorf("negative quantity: error = %v, want InvalidConfigurationError", err)
	}

	_, err = NewHolding(group, "x", "X", 1, M(-10))
	if !errors.As(err, &invalid) {
		t.Errorf("negative price: error = %v, want InvalidConfigurationError", err)
	}
}

func TestHolding_AssetClassValue(t *testing.T) {
	us := mustAssetClass(t, "US Equity", 0.3)
	intl := mustAssetClass(t, "International Equity", 0.3)
	bonds := mustAssetClass(t, "Bonds", 0.4)

	group := mustGroup(t,
		AssetClassSplit{Class: us, Fraction: P(0.6)},
		AssetClassSplit{Class: intl, Fraction: P(0.4)},
	)

	// value 1000 split 60/40
	h := mustHolding(t, group, "World ex Canada", "XAW.TO", 100, 10)

	if got := h.AssetClassValue(us); !got.Equal(M(600)) {
		t.Errorf("AssetClassValue(us) = %v, want $600.00", got)
	}
	if got := h.AssetClassValue(intl); !got.Equal(M(400)) {
		t.Errorf("AssetClassValue(intl) = %v, want $400.00", got)
	}
	if got := h.AssetClassValue(bonds); !got.IsZero() {
		t.Errorf("AssetClassValue(bonds) = %v, want $0.00", got)
	}
}

func TestHolding_combine(t *testing.T) {
	equities := mustAssetClass(t, "Equities", 0.6)
	group := singleClass(t, equities)

	a := mustHolding(t, group, "Vanguard All Cap", "VCN.TO", 10, 31.50)
	b := mustHolding(t, group, "Vanguard All Cap", "VCN.TO", 5, 31.50)

	merged := a.combine(b)
	if merged.Quantity() != 15 {
		t.Errorf("Quantity() = %d, want 15", merged.Quantity())
	}
	if !merged.Price().Equal(M(31.50)) {
		t.Errorf("Price() = %v, want unchanged $31.50", merged.Price())
	}
	if !merged.Value().Equal(M(472.50)) {
		t.Errorf("Value() = %v, want $472.50", merged.Value())
	}
	if a.Quantity() != 10 || b.Quantity() != 5 {
		t.Error("combine() mutated its operands")
	}
}
