package adapters

import (
	"testing"
	"time"

	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/shopspring/decimal"
)

func TestConfigAssetAdapter(t *testing.T) {
	asset := config.Asset{
		Name:           "Immeuble A",
		Ownership:      decimal.RequireFromString("0.5"),
		CurrentValue:   decimal.NewFromInt(1_000_000),
		ProjectedValue: decimal.NewFromInt(1_500_000),
		TaxProvision:   true,
	}

	adapter := ConfigAssetAdapter{Asset: asset}

	if adapter.GetName() != "Immeuble A" {
		t.Errorf("GetName() = %s, expected 'Immeuble A'", adapter.GetName())
	}
	if !adapter.GetNetVariation().Equal(decimal.NewFromInt(187_500)) {
		t.Errorf("GetNetVariation() = %s, expected 187500", adapter.GetNetVariation())
	}
}

func TestConfigImpactAdapter(t *testing.T) {
	adapter := ConfigImpactAdapter{Impact: config.RecurringImpact{Label: "Frais corporate", Amount: decimal.NewFromInt(-50_000)}}

	if adapter.GetName() != "Frais corporate" {
		t.Errorf("GetName() = %s, expected 'Frais corporate'", adapter.GetName())
	}
	if !adapter.GetAmount().Equal(decimal.NewFromInt(-50_000)) {
		t.Errorf("GetAmount() = %s, expected -50000", adapter.GetAmount())
	}
}

func TestConfigDatedImpactAdapter(t *testing.T) {
	june := datetime.Date(2025, time.June, 30)
	adapter := ConfigDatedImpactAdapter{Impact: config.DatedImpact{
		Label:       "Distribution",
		Occurrences: []config.Occurrence{{Date: june, Amount: decimal.NewFromInt(-1000)}},
	}}

	amount, ok := adapter.GetAmountForDate(june)
	if !ok || !amount.Equal(decimal.NewFromInt(-1000)) {
		t.Errorf("GetAmountForDate(%v) = %s, %v", june, amount, ok)
	}
	if _, ok := adapter.GetAmountForDate(datetime.Date(2025, time.December, 31)); ok {
		t.Errorf("GetAmountForDate() matched a date without occurrence")
	}
}

func TestSliceConversions(t *testing.T) {
	if AssetsToFinanceAssets(nil) != nil {
		t.Errorf("AssetsToFinanceAssets(nil) should return nil")
	}
	if ImpactsToFinanceImpacts(nil) != nil {
		t.Errorf("ImpactsToFinanceImpacts(nil) should return nil")
	}
	if DatedImpactsToFinanceImpacts(nil) != nil {
		t.Errorf("DatedImpactsToFinanceImpacts(nil) should return nil")
	}

	assets := AssetsToFinanceAssets([]config.Asset{{Name: "A"}, {Name: "B"}})
	if len(assets) != 2 || assets[1].GetName() != "B" {
		t.Errorf("AssetsToFinanceAssets() = %v", assets)
	}
	impacts := ImpactsToFinanceImpacts([]config.RecurringImpact{{Label: "X"}})
	if len(impacts) != 1 || impacts[0].GetName() != "X" {
		t.Errorf("ImpactsToFinanceImpacts() = %v", impacts)
	}
	dated := DatedImpactsToFinanceImpacts([]config.DatedImpact{{Label: "Y"}})
	if len(dated) != 1 || dated[0].GetName() != "Y" {
		t.Errorf("DatedImpactsToFinanceImpacts() = %v", dated)
	}
}
