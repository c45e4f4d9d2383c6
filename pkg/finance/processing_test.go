package finance

import (
	"testing"
	"time"

	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Mock implementations for testing
type mockAsset struct {
	name      string
	variation decimal.Decimal
}

func (m mockAsset) GetName() string {
	return m.name
}

func (m mockAsset) GetNetVariation() decimal.Decimal {
	return m.variation
}

type mockImpact struct {
	name   string
	amount decimal.Decimal
}

func (m mockImpact) GetName() string {
	return m.name
}

func (m mockImpact) GetAmount() decimal.Decimal {
	return m.amount
}

type mockDatedImpact struct {
	name     string
	schedule map[string]decimal.Decimal
}

func (m mockDatedImpact) GetName() string {
	return m.name
}

func (m mockDatedImpact) GetAmountForDate(date time.Time) (decimal.Decimal, bool) {
	amount, present := m.schedule[datetime.FormatDate(date)]
	return amount, present
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAssetProcessor_ProcessAssetsForPeriod(t *testing.T) {
	processor := NewAssetProcessor(zap.NewNop())

	assets := []AssetWithVariation{
		mockAsset{name: "Immeuble A", variation: amt("187500")},
		nil,
		mockAsset{name: "Immeuble B", variation: amt("-20000")},
	}

	tests := []struct {
		name          string
		index         int
		expectedTotal string
	}{
		{"Anchor period", 0, "0"},
		{"First forward period", 1, "167500"},
		{"Second forward period", 2, "0"},
		{"Late period", 7, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contributions := processor.ProcessAssetsForPeriod(tt.index, assets)
			if len(contributions) != 2 {
				t.Fatalf("expected 2 contributions (nil skipped), got %d", len(contributions))
			}
			if contributions[0].Label != "Immeuble A" || contributions[1].Label != "Immeuble B" {
				t.Errorf("unexpected labels %v", contributions)
			}
			total := sumContributions(contributions)
			if !total.Equal(amt(tt.expectedTotal)) {
				t.Errorf("total = %s, expected %s", total, tt.expectedTotal)
			}
		})
	}
}

func TestImpactProcessor_ProcessImpactsForPeriod(t *testing.T) {
	processor := NewImpactProcessor(zap.NewNop())

	impacts := []ImpactWithAmount{
		mockImpact{name: "Frais corporate", amount: amt("-50000")},
		mockImpact{name: "Honoraires NIV", amount: amt("-30000")},
	}

	anchor := processor.ProcessImpactsForPeriod(0, impacts)
	for _, c := range anchor {
		if !c.Amount.IsZero() {
			t.Errorf("anchor period should carry no recurring impact, got %s for %s", c.Amount, c.Label)
		}
	}

	for _, index := range []int{1, 2, 10} {
		total := sumContributions(processor.ProcessImpactsForPeriod(index, impacts))
		if !total.Equal(amt("-80000")) {
			t.Errorf("period %d total = %s, expected -80000", index, total)
		}
	}
}

func TestImpactProcessor_ProcessDatedImpactsForDate(t *testing.T) {
	processor := NewImpactProcessor(zap.NewNop())

	impacts := []ImpactWithOccurrences{
		mockDatedImpact{name: "Cession", schedule: map[string]decimal.Decimal{
			"31/12/2024": amt("10000"),
			"30/06/2025": amt("500000"),
		}},
		mockDatedImpact{name: "Distribution", schedule: map[string]decimal.Decimal{
			"30/06/2025": amt("-200000"),
		}},
	}

	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{"Anchor date", datetime.Date(2024, time.December, 31), "10000"},
		{"Both impacts", datetime.Date(2025, time.June, 30), "300000"},
		{"No occurrence", datetime.Date(2025, time.December, 31), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contributions := processor.ProcessDatedImpactsForDate(tt.date, impacts)
			if len(contributions) != len(impacts) {
				t.Fatalf("expected %d contributions, got %d", len(impacts), len(contributions))
			}
			if total := sumContributions(contributions); !total.Equal(amt(tt.expected)) {
				t.Errorf("total = %s, expected %s", total, tt.expected)
			}
		})
	}
}

func TestProjectionEngine_ProcessPeriod(t *testing.T) {
	engine := NewProjectionEngine(nil)

	assets := []AssetWithVariation{mockAsset{name: "Immeuble A", variation: amt("187500")}}
	impacts := []ImpactWithAmount{mockImpact{name: "Frais", amount: amt("-50000")}}
	dated := []ImpactWithOccurrences{mockDatedImpact{name: "Cession", schedule: map[string]decimal.Decimal{
		"30/06/2025": amt("1000"),
	}}}

	changes, err := engine.ProcessPeriod(1, datetime.Date(2025, time.June, 30), assets, impacts, dated)
	if err != nil {
		t.Fatalf("ProcessPeriod() error = %v", err)
	}
	if !changes.AssetTotal().Equal(amt("187500")) {
		t.Errorf("AssetTotal() = %s", changes.AssetTotal())
	}
	if !changes.ImpactTotal().Equal(amt("-50000")) {
		t.Errorf("ImpactTotal() = %s", changes.ImpactTotal())
	}
	if !changes.DatedImpactTotal().Equal(amt("1000")) {
		t.Errorf("DatedImpactTotal() = %s", changes.DatedImpactTotal())
	}
	if changes.Index != 1 {
		t.Errorf("Index = %d", changes.Index)
	}
}

func TestProjectionEngine_ProcessPeriodErrors(t *testing.T) {
	engine := NewProjectionEngine(zap.NewNop())

	if _, err := engine.ProcessPeriod(-1, datetime.Date(2025, time.June, 30), nil, nil, nil); err == nil {
		t.Error("expected error for negative index")
	}
	if _, err := engine.ProcessPeriod(0, time.Time{}, nil, nil, nil); err == nil {
		t.Error("expected error for missing date")
	}

	var uninitialized ProjectionEngine
	if _, err := uninitialized.ProcessPeriod(0, datetime.Date(2025, time.June, 30), nil, nil, nil); err == nil {
		t.Error("expected error for uninitialized engine")
	}
}

func TestProcessorsWithNilLogger(t *testing.T) {
	assets := NewAssetProcessor(nil).ProcessAssetsForPeriod(1, []AssetWithVariation{mockAsset{name: "A", variation: amt("1")}})
	if len(assets) != 1 {
		t.Fatalf("expected one contribution, got %d", len(assets))
	}
	impacts := NewImpactProcessor(nil).ProcessImpactsForPeriod(1, nil)
	if len(impacts) != 0 {
		t.Fatalf("expected no contributions, got %d", len(impacts))
	}
}
