package finance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGrossVariation(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		projected string
		ownership string
		expected  string
	}{
		{"Full ownership gain", "5000000", "5250000", "1", "250000"},
		{"Partial ownership gain", "1000000", "1050000", "0.4", "20000"},
		{"Loss", "2000000", "1900000", "0.5", "-50000"},
		{"No ownership", "1000000", "2000000", "0", "0"},
		{"Unchanged value", "1000000", "1000000", "1", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrossVariation(
				decimal.RequireFromString(tt.current),
				decimal.RequireFromString(tt.projected),
				decimal.RequireFromString(tt.ownership),
			)
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("GrossVariation() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestNetVariation(t *testing.T) {
	tests := []struct {
		name      string
		gross     string
		provision bool
		expected  string
	}{
		{"Flagged gain is provisioned", "100000", true, "75000"},
		{"Flagged loss passes through", "-100000", true, "-100000"},
		{"Flagged zero passes through", "0", true, "0"},
		{"Unflagged gain passes through", "100000", false, "100000"},
		{"Unflagged loss passes through", "-100000", false, "-100000"},
		{"Smallest flagged gain", "0.01", true, "0.0075"},
		{"Revalued building gain", "250000", true, "187500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetVariation(decimal.RequireFromString(tt.gross), tt.provision)
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("NetVariation(%s, %t) = %s, expected %s", tt.gross, tt.provision, got, tt.expected)
			}
		})
	}
}

func TestNetVariationIsStable(t *testing.T) {
	gross := decimal.NewFromInt(100000)
	first := NetVariation(gross, true)
	second := NetVariation(gross, true)
	if !first.Equal(second) {
		t.Errorf("NetVariation() not deterministic: %s vs %s", first, second)
	}
}
