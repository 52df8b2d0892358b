package rebalance

import "testing"

// mustAssetClass is a helper for tests to create an asset class from consts.
func mustAssetClass(t *testing.T, name string, target float64) *AssetClass {
	t.Helper()
	class, err := NewAssetClass(name, P(target))
	if err != nil {
		t.Fatalf("NewAssetClass(%q, %v) error = %v", name, target, err)
	}
	return class
}

// mustGroup is a helper for tests to create an asset class group.
func mustGroup(t *testing.T, splits ...AssetClassSplit) *AssetClassGroup {
	t.Helper()
	group, err := NewAssetClassGroup(splits)
	if err != nil {
		t.Fatalf("NewAssetClassGroup() error = %v", err)
	}
	return group
}

// singleClass is a helper for tests to create a group fully in one class.
func singleClass(t *testing.T, class *AssetClass) *AssetClassGroup {
	t.Helper()
	return mustGroup(t, AssetClassSplit{Class: class, Fraction: P(1)})
}

// mustHolding is a helper for tests to create a holding.
func mustHolding(t *testing.T, group *AssetClassGroup, name, symbol string, quantity int64, price float64) *Holding {
	t.Helper()
	h, err := NewHolding(group, name, symbol, quantity, M(price))
	if err != nil {
		t.Fatalf("NewHolding(%q) error = %v", symbol, err)
	}
	return h
}

// mustAccount is a helper for tests to create an account.
func mustAccount(t *testing.T, name string, cash, fee float64, holdings ...*Holding) *Account {
	t.Helper()
	a, err := NewAccount(name, M(cash), M(fee), holdings)
	if err != nil {
		t.Fatalf("NewAccount(%q) error = %v", name, err)
	}
	return a
}
