package rebalance

import (
	"errors"
	"testing"
)

func TestNewAssetClass(t *testing.T) {
	tests := []struct {
		name    string
		target  float64
		wantErr bool
	}{
		{"Equities", 0.6, false},
		{"Bonds", 0, false},
		{"All", 1, false},
		{"Negative", -0.1, true},
		{"Over", 1.01, true},
	}
	for _, tt := range tests {
		class, err := NewAssetClass(tt.name, P(tt.target))
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewAssetClass(%q, %v) expected an error", tt.name, tt.target)
			}
			var invalid *InvalidConfigurationError
			if !errors.As(err, &invalid) {
				t.Errorf("NewAssetClass(%q, %v) error = %T, want InvalidConfigurationError", tt.name, tt.target, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewAssetClass(%q, %v) error = %v", tt.name, tt.target, err)
			continue
		}
		if class.Name() != tt.name {
			t.Errorf("Name() = %q, want %q", class.Name(), tt.name)
		}
		if !class.TargetAllocation().Equal(P(tt.target)) {
			t.Errorf("TargetAllocation() = %v, want %v", class.TargetAllocation(), tt.target)
		}
	}
}

func TestNewAssetClassGroup(t *testing.T) {
	equities := mustAssetClass(t, "Equities", 0.6)
	bonds := mustAssetClass(t, "Bonds", 0.4)

	group := mustGroup(t,
		AssetClassSplit{Class: equities, Fraction: P(0.6)},
		AssetClassSplit{Class: bonds, Fraction: P(0.4)},
	)

	if got := group.Percentage(equities); !got.Equal(P(0.6)) {
		t.Errorf("Percentage(equities) = %v, want 60%%", got)
	}
	if got := group.Percentage(bonds); !got.Equal(P(0.4)) {
		t.Errorf("Percentage(bonds) = %v, want 40%%", got)
	}
	if !group.Has(equities) || !group.Has(bonds) {
		t.Error("Has() = false for a class in the group")
	}

	other := mustAssetClass(t, "Cash", 0)
	if group.Has(other) {
		t.Error("Has(other) = true for a class not in the group")
	}
	if got := group.Percentage(other); !got.IsZero() {
		t.Errorf("Percentage(other) = %v, want 0", got)
	}
}

func TestNewAssetClassGroup_rejectsDuplicates(t *testing.T) {
	equities := mustAssetClass(t, "Equities", 0.6)

	_, err := NewAssetClassGroup([]AssetClassSplit{
		{Class: equities, Fraction: P(0.5)},
		{Class: equities, Fraction: P(0.5)},
	})
	var invalid *InvalidConfigurationError
	if !errors.As(err, &invalid) {
		t.Fatalf("duplicate class: error = %v, want InvalidConfigurationError", err)
	}
}

func TestNewAssetClassGroup_rejectsOverAllocation(t *testing.T) {
	equities := mustAssetClass(t, "Equities", 0.6)
	bonds := mustAssetClass(t, "Bonds", 0.4)

	_, err := NewAssetClassGroup([]AssetClassSplit{
		{Class: equities, Fraction: P(0.7)},
		{Class: bonds, Fraction: P(0.4)},
	})
	if err == nil {
		t.Fatal("sum over 100%: expected an error")
	}

	_, err = NewAssetClassGroup([]AssetClassSplit{
		{Class: equities, Fraction: P(1.5)},
	})
	if err == nil {
		t.Fatal("fraction over 1: expected an error")
	}
}

func TestNewAssetClassGroup_allowsUnderAllocation(t *testing.T) {
	equities := mustAssetClass(t, "Equities", 0.6)

	group := mustGroup(t, AssetClassSplit{Class: equities, Fraction: P(0.8)})
	if got := group.Percentage(equities); !got.Equal(P(0.8)) {
		t.Errorf("Percentage() = %v, want 80%%", got)
	}
}
