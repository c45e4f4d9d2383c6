// Package finance provides the semi-annual period generator, the tax
// provisioning rule and the per-period contribution engine.
package finance

import (
	"fmt"
	"time"

	"github.com/iwvelando/nav-landing/pkg/constants"
	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/iwvelando/nav-landing/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Contribution is the amount one asset or impact adds to a period.
type Contribution struct {
	Label  string
	Amount decimal.Decimal
}

// AssetWithVariation interface for assets that carry a net variation
type AssetWithVariation interface {
	GetName() string
	GetNetVariation() decimal.Decimal
}

// ImpactWithAmount interface for impacts applied at every forward period
type ImpactWithAmount interface {
	GetName() string
	GetAmount() decimal.Decimal
}

// ImpactWithOccurrences interface for impacts applied on specific dates
type ImpactWithOccurrences interface {
	GetName() string
	GetAmountForDate(date time.Time) (decimal.Decimal, bool)
}

// AssetProcessor handles asset variation processing
type AssetProcessor struct {
	logger *zap.Logger
}

// NewAssetProcessor creates a new asset processor with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewAssetProcessor(logger *zap.Logger) *AssetProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetProcessor{logger: logger}
}

// ProcessAssetsForPeriod returns one contribution per asset. Variations only
// apply at the first forward period; every other period carries zero.
func (ap *AssetProcessor) ProcessAssetsForPeriod(index int, assets []AssetWithVariation) []Contribution {
	contributions := make([]Contribution, 0, len(assets))
	for _, asset := range assets {
		if asset == nil {
			ap.logger.Warn("Skipping nil asset")
			continue
		}

		amount := decimal.Zero
		if index == constants.AssetPeriodIndex {
			amount = asset.GetNetVariation()
			ap.logger.Debug("Asset variation active",
				zap.Int("period", index),
				zap.String("asset", asset.GetName()),
				zap.String("amount", amount.String()),
			)
		}
		contributions = append(contributions, Contribution{Label: asset.GetName(), Amount: amount})
	}
	return contributions
}

// ImpactProcessor handles recurring impact processing
type ImpactProcessor struct {
	logger *zap.Logger
}

// NewImpactProcessor creates a new impact processor with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewImpactProcessor(logger *zap.Logger) *ImpactProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImpactProcessor{logger: logger}
}

// ProcessImpactsForPeriod returns one contribution per recurring impact.
// The anchor period is already known, so it carries none.
func (ip *ImpactProcessor) ProcessImpactsForPeriod(index int, impacts []ImpactWithAmount) []Contribution {
	contributions := make([]Contribution, 0, len(impacts))
	for _, impact := range impacts {
		if impact == nil {
			ip.logger.Warn("Skipping nil impact")
			continue
		}

		amount := decimal.Zero
		if index > 0 {
			amount = impact.GetAmount()
			ip.logger.Debug("Impact active",
				zap.Int("period", index),
				zap.String("impact", impact.GetName()),
				zap.String("amount", amount.String()),
			)
		}
		contributions = append(contributions, Contribution{Label: impact.GetName(), Amount: amount})
	}
	return contributions
}

// ProcessDatedImpactsForDate returns one contribution per dated impact,
// summing the occurrences that fall exactly on date. Unlike recurring
// impacts these apply at any period, the anchor included.
func (ip *ImpactProcessor) ProcessDatedImpactsForDate(date time.Time, impacts []ImpactWithOccurrences) []Contribution {
	contributions := make([]Contribution, 0, len(impacts))
	for _, impact := range impacts {
		if impact == nil {
			ip.logger.Warn("Skipping nil dated impact")
			continue
		}

		amount, present := impact.GetAmountForDate(date)
		if !present {
			amount = decimal.Zero
		} else {
			ip.logger.Debug("Dated impact active",
				zap.String("date", datetime.FormatDate(date)),
				zap.String("impact", impact.GetName()),
				zap.String("amount", amount.String()),
			)
		}
		contributions = append(contributions, Contribution{Label: impact.GetName(), Amount: amount})
	}
	return contributions
}

// PeriodChanges holds every contribution computed for one period.
type PeriodChanges struct {
	Index        int
	Date         time.Time
	Assets       []Contribution
	Impacts      []Contribution
	DatedImpacts []Contribution
}

// AssetTotal sums the asset contributions.
func (pc PeriodChanges) AssetTotal() decimal.Decimal {
	return sumContributions(pc.Assets)
}

// ImpactTotal sums the recurring impact contributions.
func (pc PeriodChanges) ImpactTotal() decimal.Decimal {
	return sumContributions(pc.Impacts)
}

// DatedImpactTotal sums the dated impact contributions.
func (pc PeriodChanges) DatedImpactTotal() decimal.Decimal {
	return sumContributions(pc.DatedImpacts)
}

func sumContributions(contributions []Contribution) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(contributions))
	for i, c := range contributions {
		amounts[i] = c.Amount
	}
	return mathutil.Sum(amounts...)
}

// ProjectionEngine coordinates the per-period contribution processing
type ProjectionEngine struct {
	assetProcessor  *AssetProcessor
	impactProcessor *ImpactProcessor
	logger          *zap.Logger
}

// NewProjectionEngine creates a new projection engine
func NewProjectionEngine(logger *zap.Logger) *ProjectionEngine {
	if logger == nil {
		// Create a no-op logger if none provided
		logger = zap.NewNop()
	}

	return &ProjectionEngine{
		assetProcessor:  NewAssetProcessor(logger),
		impactProcessor: NewImpactProcessor(logger),
		logger:          logger,
	}
}

// ProcessPeriod computes the contributions of every asset and impact for the
// period at index, dated date.
func (pe *ProjectionEngine) ProcessPeriod(index int, date time.Time, assets []AssetWithVariation, impacts []ImpactWithAmount, datedImpacts []ImpactWithOccurrences) (PeriodChanges, error) {
	if pe.assetProcessor == nil || pe.impactProcessor == nil {
		return PeriodChanges{}, fmt.Errorf("projection engine not properly initialized")
	}
	if index < 0 {
		return PeriodChanges{}, fmt.Errorf("period index cannot be negative: %d", index)
	}
	if date.IsZero() {
		return PeriodChanges{}, fmt.Errorf("period %d has no date", index)
	}

	return PeriodChanges{
		Index:        index,
		Date:         date,
		Assets:       pe.assetProcessor.ProcessAssetsForPeriod(index, assets),
		Impacts:      pe.impactProcessor.ProcessImpactsForPeriod(index, impacts),
		DatedImpacts: pe.impactProcessor.ProcessDatedImpactsForDate(date, datedImpacts),
	}, nil
}
