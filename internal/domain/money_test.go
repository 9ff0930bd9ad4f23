package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount int64
		rate   string
		want   int64
	}{
		{"identity rate", 5000, "1", 5000},
		{"rounds up at half", 101, "1.105", 112},
		{"rounds down below half", 100, "1.104", 110},
		{"negative amounts round away from zero", -101, "1.105", -112},
		{"zero amount", 0, "1.23", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := decimal.RequireFromString(tt.rate)
			if got := RoundAmount(tt.amount, rate); got != tt.want {
				t.Errorf("RoundAmount(%d, %s) = %d, want %d", tt.amount, tt.rate, got, tt.want)
			}
		})
	}
}

func TestDivideAmount(t *testing.T) {
	t.Parallel()

	rate := decimal.RequireFromString("1.1")
	if got := DivideAmount(5250, rate); got != 4773 {
		t.Errorf("DivideAmount(5250, 1.1) = %d, want 4773", got)
	}

	if got := DivideAmount(100, decimal.Zero); got != 0 {
		t.Errorf("DivideAmount by zero rate = %d, want 0", got)
	}
}

func TestCalcFee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		amount  int64
		percent string
		want    int64
	}{
		{"two percent", 10000, "2", 200},
		{"fractional percent rounds to nearest", 10000, "2.9", 290},
		{"rounds half away from zero", 150, "5", 8}, // 7.5 cents
		{"zero percent", 10000, "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent := decimal.RequireFromString(tt.percent)
			if got := CalcFee(tt.amount, percent); got != tt.want {
				t.Errorf("CalcFee(%d, %s) = %d, want %d", tt.amount, tt.percent, got, tt.want)
			}
		})
	}
}

func TestFeePolicyApply(t *testing.T) {
	t.Parallel()

	policy := FeePolicy{Percent: decimal.RequireFromString("2"), Fixed: 30}
	if got := policy.Apply(10000); got != 230 {
		t.Errorf("Apply(10000) = %d, want 230", got)
	}
}
