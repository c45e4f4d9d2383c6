// Package adapters provides adapter implementations between different package interfaces.
package adapters

import (
	"time"

	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/iwvelando/nav-landing/pkg/finance"
	"github.com/shopspring/decimal"
)

// ConfigAssetAdapter wraps config.Asset to implement finance.AssetWithVariation
type ConfigAssetAdapter struct {
	Asset config.Asset
}

// GetName returns the asset name
func (w ConfigAssetAdapter) GetName() string {
	return w.Asset.Name
}

// GetNetVariation returns the asset's post-tax variation
func (w ConfigAssetAdapter) GetNetVariation() decimal.Decimal {
	return w.Asset.NetVariation()
}

// AssetsToFinanceAssets converts config.Asset slices to finance.AssetWithVariation slices
func AssetsToFinanceAssets(assets []config.Asset) []finance.AssetWithVariation {
	if assets == nil {
		return nil
	}

	financeAssets := make([]finance.AssetWithVariation, 0, len(assets))
	for _, asset := range assets {
		financeAssets = append(financeAssets, ConfigAssetAdapter{Asset: asset})
	}
	return financeAssets
}

// ConfigImpactAdapter wraps config.RecurringImpact to implement finance.ImpactWithAmount
type ConfigImpactAdapter struct {
	Impact config.RecurringImpact
}

// GetName returns the impact label
func (w ConfigImpactAdapter) GetName() string {
	return w.Impact.Label
}

// GetAmount returns the per-period amount
func (w ConfigImpactAdapter) GetAmount() decimal.Decimal {
	return w.Impact.Amount
}

// ImpactsToFinanceImpacts converts config.RecurringImpact slices to finance.ImpactWithAmount slices
func ImpactsToFinanceImpacts(impacts []config.RecurringImpact) []finance.ImpactWithAmount {
	if impacts == nil {
		return nil
	}

	financeImpacts := make([]finance.ImpactWithAmount, 0, len(impacts))
	for _, impact := range impacts {
		financeImpacts = append(financeImpacts, ConfigImpactAdapter{Impact: impact})
	}
	return financeImpacts
}

// ConfigDatedImpactAdapter wraps config.DatedImpact to implement finance.ImpactWithOccurrences
type ConfigDatedImpactAdapter struct {
	Impact config.DatedImpact
}

// GetName returns the impact label
func (w ConfigDatedImpactAdapter) GetName() string {
	return w.Impact.Label
}

// GetAmountForDate returns the impact amount for a given date
func (w ConfigDatedImpactAdapter) GetAmountForDate(date time.Time) (decimal.Decimal, bool) {
	return w.Impact.AmountOn(date)
}

// DatedImpactsToFinanceImpacts converts config.DatedImpact slices to finance.ImpactWithOccurrences slices
func DatedImpactsToFinanceImpacts(impacts []config.DatedImpact) []finance.ImpactWithOccurrences {
	if impacts == nil {
		return nil
	}

	financeImpacts := make([]finance.ImpactWithOccurrences, 0, len(impacts))
	for _, impact := range impacts {
		financeImpacts = append(financeImpacts, ConfigDatedImpactAdapter{Impact: impact})
	}
	return financeImpacts
}
