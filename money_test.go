package rebalance

import "testing"

func TestMoney_String(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "$0.00"},
		{125, "$125.00"},
		{9.95, "$9.95"},
		{31.5, "$31.50"},
		{1234.567, "$1,234.57"},
		{-8, "-$8.00"},
	}
	for _, tt := range tests {
		if got := M(tt.value).String(); got != tt.want {
			t.Errorf("M(%v).String() = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestMoney_arithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 is exactly 0.3 in decimal arithmetic
	if got := M(0.1).Add(M(0.2)); !got.Equal(M(0.3)) {
		t.Errorf("0.1 + 0.2 = %v, want exactly 0.3", got)
	}
	// a classic float accumulation trap: 3 * 9.95
	if got := M(9.95).MulQuantity(3); !got.Equal(M(29.85)) {
		t.Errorf("3 * 9.95 = %v, want exactly 29.85", got)
	}
}

func TestPercent_String(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0.25, "25.0%"},
		{1, "100.0%"},
		{0.125, "12.5%"},
		{0, "0.0%"},
	}
	for _, tt := range tests {
		if got := P(tt.value).String(); got != tt.want {
			t.Errorf("P(%v).String() = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestPercent_InRange(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1} {
		if !P(v).InRange() {
			t.Errorf("P(%v).InRange() = false, want true", v)
		}
	}
	for _, v := range []float64{-0.01, 1.01} {
		if P(v).InRange() {
			t.Errorf("P(%v).InRange() = true, want false", v)
		}
	}
}

func TestPercent_Of(t *testing.T) {
	if got := P(0.6).Of(M(1000)); !got.Equal(M(600)) {
		t.Errorf("60%% of $1000 = %v, want $600.00", got)
	}
}
